package roster

import (
	"errors"
	"fmt"
)

// Params bound the denom range a deployment accepts.
type Params struct {
	MinDenom uint8
	MaxDenom uint8
}

// DefaultParams returns the standard 4..20 denom range.
func DefaultParams() Params {
	return Params{MinDenom: 4, MaxDenom: 20}
}

// MaxDenomLimit bounds configurable denom ranges; partition counts beyond
// this are out of scope for the engine.
const MaxDenomLimit = 64

// Validate checks the denom bounds.
func (p Params) Validate() error {
	if p.MinDenom == 0 || p.MinDenom > p.MaxDenom || p.MaxDenom > MaxDenomLimit {
		return fmt.Errorf("%w: min %d, max %d", ErrInvalidDenom, p.MinDenom, p.MaxDenom)
	}
	return nil
}

// RegisterEntry appends one weighted entry for owner into the windowID
// roster inside the caller's transaction. The sub-bucket is chosen
// round-robin from the bucket's running entry count, which keeps sub-bucket
// sizes near-uniform in arrival order. Updates the sub-bucket aggregates,
// the owner index, and the window's entry count, then persists the window
// record. Constant work per call.
//
// The caller owns the lifecycle check: w must be an Open window loaded in
// the same transaction.
func RegisterEntry(tx Tx, p Params, w *Window, owner Address, weight uint64, denom uint8) (EntryRef, error) {
	if weight == 0 {
		return EntryRef{}, ErrInvalidWeight
	}
	if denom < p.MinDenom || denom > p.MaxDenom {
		return EntryRef{}, fmt.Errorf("%w: denom %d not in [%d, %d]",
			ErrInvalidDenom, denom, p.MinDenom, p.MaxDenom)
	}
	if _, err := tx.OwnerRef(owner, w.ID); err == nil {
		return EntryRef{}, ErrDuplicateEntry
	} else if !errors.Is(err, ErrOwnerNotFound) {
		return EntryRef{}, err
	}

	bucket, err := tx.Bucket(w.ID, denom)
	if err != nil {
		return EntryRef{}, err
	}
	sub := uint8(bucket.EntryCount % uint32(denom))

	stats, err := tx.SubBucket(w.ID, denom, sub)
	if err != nil {
		return EntryRef{}, err
	}

	e := &Entry{
		Owner:     owner,
		Weight:    weight,
		WindowID:  w.ID,
		Denom:     denom,
		SubBucket: sub,
		Index:     stats.Count,
	}
	if err := tx.PutEntry(e); err != nil {
		return EntryRef{}, err
	}

	stats.Count++
	stats.WeightSum += weight
	if weight > stats.TopWeight {
		stats.TopOwner = owner
		stats.TopWeight = weight
	}
	if err := tx.PutSubBucket(w.ID, denom, sub, stats); err != nil {
		return EntryRef{}, err
	}

	bucket.EntryCount++
	if err := tx.PutBucket(w.ID, denom, bucket); err != nil {
		return EntryRef{}, err
	}

	ref := &OwnerRef{Denom: denom, SubBucket: sub, Index: e.Index}
	if err := tx.PutOwnerRef(owner, w.ID, ref); err != nil {
		return EntryRef{}, err
	}

	w.EntryCount++
	if err := tx.PutWindow(w); err != nil {
		return EntryRef{}, err
	}

	return EntryRef{WindowID: w.ID, Denom: denom, SubBucket: sub, Index: e.Index}, nil
}
