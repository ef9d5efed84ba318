// Package settle drives settlement windows through their lifecycle:
//
//	Open -> Selecting -> Settling -> Closed
//
// All progress happens synchronously inside externally triggered calls.
// A call never processes more than its caller-supplied budget; instead of
// suspending, the engine persists cursors and the next invocation resumes
// exactly where the previous one stopped. Budget exhaustion is reported as
// finished=false, never as an error.
package settle

import (
	"fmt"

	"github.com/purgegame/go-settlement/draw"
	"github.com/purgegame/go-settlement/payout"
	"github.com/purgegame/go-settlement/roster"
)

// Engine owns all mutable settlement state and mutates it only through the
// operations below. External collaborators read published snapshots or call
// the documented entry points; fund transfers themselves stay outside.
type Engine struct {
	store  roster.Store
	params roster.Params
}

// New creates an engine over a store. params bound the accepted denoms.
func New(store roster.Store, params roster.Params) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Engine{store: store, params: params}, nil
}

// Close closes the underlying store.
func (e *Engine) Close() error { return e.store.Close() }

// OpenWindow creates a new settlement window accepting registrations.
func (e *Engine) OpenWindow(windowID uint32) error {
	return e.store.Update(func(tx roster.Tx) error {
		return tx.CreateWindow(&roster.Window{ID: windowID, State: roster.StateOpen})
	})
}

// FundPool adds amount to the window's reward pool. The pool is snapshotted
// into the claim round when selection completes; funding after that point is
// rejected.
func (e *Engine) FundPool(windowID uint32, amount uint64) error {
	return e.store.Update(func(tx roster.Tx) error {
		w, err := tx.Window(windowID)
		if err != nil {
			return err
		}
		if w.State != roster.StateOpen {
			return fmt.Errorf("%w: window %d is %s", ErrWindowNotOpen, windowID, w.State)
		}
		w.PoolAmount += amount
		return tx.PutWindow(w)
	})
}

// Register appends a weighted entry for owner into the window's bucket of
// the given denom. O(1); rejected outside the Open state.
func (e *Engine) Register(owner roster.Address, weight uint64, windowID uint32, denom uint8) (roster.EntryRef, error) {
	var ref roster.EntryRef
	err := e.store.Update(func(tx roster.Tx) error {
		w, err := tx.Window(windowID)
		if err != nil {
			return err
		}
		if w.State != roster.StateOpen {
			return fmt.Errorf("%w: window %d is %s", ErrWindowNotOpen, windowID, w.State)
		}
		ref, err = roster.RegisterEntry(tx, e.params, w, owner, weight, denom)
		return err
	})
	if err != nil {
		return roster.EntryRef{}, err
	}
	return ref, nil
}

// BeginSelection closes the window to registrations and records the
// delivered random seed. Called once per window by the collaborator that
// owns window closing and seed delivery.
func (e *Engine) BeginSelection(windowID uint32, seed draw.Seed) error {
	return e.store.Update(func(tx roster.Tx) error {
		w, err := tx.Window(windowID)
		if err != nil {
			return err
		}
		if w.State != roster.StateOpen {
			return fmt.Errorf("%w: window %d is %s", ErrWindowNotOpen, windowID, w.State)
		}
		w.State = roster.StateSelecting
		w.Seed = seed
		w.SelectCursor = e.params.MinDenom
		return tx.PutWindow(w)
	})
}

// AdvanceSelection resolves winning sub-buckets for up to opsBudget buckets,
// in ascending denom order from the persisted cursor. When the last bucket
// is processed the claim round is finalized and the window moves to
// Settling. Returns finished=false while work remains; a zero budget is a
// no-op reporting finished=false.
func (e *Engine) AdvanceSelection(windowID uint32, opsBudget uint64) (bool, error) {
	finished := false
	err := e.store.Update(func(tx roster.Tx) error {
		w, err := tx.Window(windowID)
		if err != nil {
			return err
		}
		if w.State != roster.StateSelecting {
			return fmt.Errorf("%w: window %d is %s", ErrWindowNotSelecting, windowID, w.State)
		}

		var ops uint64
		for ops < opsBudget && w.SelectCursor <= e.params.MaxDenom {
			denom := w.SelectCursor

			winning, err := draw.WinningSubBucket(w.ID, denom, w.Seed)
			if err != nil {
				return err
			}

			bucket, err := tx.Bucket(w.ID, denom)
			if err != nil {
				return err
			}
			bucket.WinningSub = winning
			bucket.WinnerSet = true
			if err := tx.PutBucket(w.ID, denom, bucket); err != nil {
				return err
			}

			stats, err := tx.SubBucket(w.ID, denom, winning)
			if err != nil {
				return err
			}
			w.WinningWeight += stats.WeightSum

			w.SelectCursor++
			ops++
		}

		if w.SelectCursor > e.params.MaxDenom {
			w.Round = &roster.ClaimRound{
				PoolAmount:         w.PoolAmount,
				TotalWinningWeight: w.WinningWeight,
			}
			w.RemainingPool = w.PoolAmount
			w.RemainingWeight = w.WinningWeight
			w.State = roster.StateSettling
			w.SettleDenom = e.params.MinDenom
			w.SettleMember = 0
			finished = true
		}

		return tx.PutWindow(w)
	})
	if err != nil {
		return false, err
	}
	return finished, nil
}

// SettleResult reports one AdvanceSettlement invocation: the winners paid
// during this call only, plus the unallocated remainder on the call that
// finishes the window.
type SettleResult struct {
	Finished  bool
	Winners   []roster.Address
	Amounts   []uint64
	Remainder uint64
}

// AdvanceSettlement eagerly pays members of winning sub-buckets in
// (denom, member) order from the persisted cursor. Each payment counts
// toward both selectionCap and opsLimit; each already-claimed member
// scanned counts toward opsLimit only. The call stops before exceeding
// either cap and persists a consistent cursor, so no member is ever paid
// twice and partial progress is never rolled back. When the cursor passes
// the last bucket the window closes and the remainder is reported.
//
// Eager settlement is optional: a window left in Settling is serviced
// entirely by per-owner claims.
func (e *Engine) AdvanceSettlement(windowID uint32, selectionCap, opsLimit uint64) (*SettleResult, error) {
	res := &SettleResult{}
	err := e.store.Update(func(tx roster.Tx) error {
		w, err := tx.Window(windowID)
		if err != nil {
			return err
		}
		if w.State != roster.StateSettling {
			return fmt.Errorf("%w: window %d is %s", ErrWindowNotSettling, windowID, w.State)
		}
		if selectionCap == 0 || opsLimit == 0 {
			return nil // no budget this cycle; not finished, not an error
		}

		stream := payout.ResumeStream(w.RemainingPool, w.RemainingWeight)
		var ops, paid uint64

		for w.SettleDenom <= e.params.MaxDenom {
			bucket, err := tx.Bucket(w.ID, w.SettleDenom)
			if err != nil {
				return err
			}
			stats, err := tx.SubBucket(w.ID, w.SettleDenom, bucket.WinningSub)
			if err != nil {
				return err
			}

			for w.SettleMember < stats.Count {
				if ops >= opsLimit || paid >= selectionCap {
					// Budget exhausted: commit cursor and stream state.
					w.RemainingPool = stream.Remainder()
					w.RemainingWeight = stream.RemainingWeight()
					return tx.PutWindow(w)
				}

				entry, err := tx.Entry(w.ID, w.SettleDenom, bucket.WinningSub, w.SettleMember)
				if err != nil {
					return err
				}
				ref, err := tx.OwnerRef(entry.Owner, w.ID)
				if err != nil {
					return err
				}

				if ref.Claimed || entry.Weight == 0 {
					// Nothing payable here; scanned work still counts.
					ops++
					w.SettleMember++
					continue
				}

				amount, err := stream.Pay(entry.Weight)
				if err != nil {
					return err
				}
				ref.Claimed = true
				if err := tx.PutOwnerRef(entry.Owner, w.ID, ref); err != nil {
					return err
				}

				res.Winners = append(res.Winners, entry.Owner)
				res.Amounts = append(res.Amounts, amount)
				ops++
				paid++
				w.SettleMember++
			}

			w.SettleDenom++
			w.SettleMember = 0
		}

		// Every winning member has been paid or scanned; close the window
		// and hand the unallocated remainder back to the caller.
		res.Finished = true
		res.Remainder = stream.Remainder()
		w.RemainingPool = 0
		w.RemainingWeight = stream.RemainingWeight()
		w.State = roster.StateClosed
		return tx.PutWindow(w)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
