package settle

import (
	"errors"
	"fmt"

	"github.com/purgegame/go-settlement/payout"
	"github.com/purgegame/go-settlement/roster"
)

// Claim authorizes the lazy payout for owner's entry in the window and
// marks it consumed. The amount is snapshot division over the immutable
// claim round, so a claim costs O(1) regardless of roster size. The actual
// fund transfer is the caller's responsibility; a second claim for the same
// entry always fails with ErrAlreadyClaimed and never double-pays.
func (e *Engine) Claim(owner roster.Address, windowID uint32) (uint64, error) {
	var amount uint64
	err := e.store.Update(func(tx roster.Tx) error {
		w, err := tx.Window(windowID)
		if err != nil {
			return err
		}
		if w.State != roster.StateSettling && w.State != roster.StateClosed {
			return fmt.Errorf("%w: window %d is %s", ErrWindowNotClaimable, windowID, w.State)
		}

		ref, err := tx.OwnerRef(owner, windowID)
		if errors.Is(err, roster.ErrOwnerNotFound) {
			return ErrNotWinner
		}
		if err != nil {
			return err
		}

		bucket, err := tx.Bucket(windowID, ref.Denom)
		if err != nil {
			return err
		}
		if !bucket.WinnerSet || bucket.WinningSub != ref.SubBucket {
			return ErrNotWinner
		}
		if ref.Claimed {
			return ErrAlreadyClaimed
		}

		entry, err := tx.Entry(windowID, ref.Denom, ref.SubBucket, ref.Index)
		if err != nil {
			return err
		}

		amount, err = payout.SnapshotShare(w.Round.PoolAmount, entry.Weight, w.Round.TotalWinningWeight)
		if err != nil {
			return err
		}

		ref.Claimed = true
		if err := tx.PutOwnerRef(owner, windowID, ref); err != nil {
			return err
		}

		if w.State == roster.StateSettling {
			// Keep the eager stream consistent: this claim consumed pool
			// and weight the stream would otherwise allocate.
			stream := payout.ResumeStream(w.RemainingPool, w.RemainingWeight)
			if err := stream.Deduct(amount, entry.Weight); err != nil {
				return err
			}
			w.RemainingPool = stream.Remainder()
			w.RemainingWeight = stream.RemainingWeight()
			if err := tx.PutWindow(w); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return amount, nil
}
