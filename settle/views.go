package settle

import (
	"github.com/purgegame/go-settlement/roster"
)

// Status is the published read view of one window.
type Status struct {
	State      roster.WindowState
	EntryCount uint64
	PoolAmount uint64
	Round      *roster.ClaimRound // nil until selection completes
}

// WindowStatus reports the window's lifecycle state and counters.
func (e *Engine) WindowStatus(windowID uint32) (*Status, error) {
	var st *Status
	err := e.store.View(func(tx roster.Tx) error {
		w, err := tx.Window(windowID)
		if err != nil {
			return err
		}
		st = &Status{
			State:      w.State,
			EntryCount: w.EntryCount,
			PoolAmount: w.PoolAmount,
			Round:      w.Round,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// ClaimRound returns the immutable (pool, totalWinningWeight) snapshot, or
// ErrRoundNotFinal while selection is still in progress.
func (e *Engine) ClaimRound(windowID uint32) (*roster.ClaimRound, error) {
	var round *roster.ClaimRound
	err := e.store.View(func(tx roster.Tx) error {
		w, err := tx.Window(windowID)
		if err != nil {
			return err
		}
		if w.Round == nil {
			return ErrRoundNotFinal
		}
		round = w.Round
		return nil
	})
	if err != nil {
		return nil, err
	}
	return round, nil
}

// IsWinningSubBucket reports whether the sub-bucket won its bucket's draw.
// Returns ErrWinnerPending until the Selecting phase has processed the
// bucket.
func (e *Engine) IsWinningSubBucket(windowID uint32, denom, sub uint8) (bool, error) {
	var winning bool
	err := e.store.View(func(tx roster.Tx) error {
		if _, err := tx.Window(windowID); err != nil {
			return err
		}
		bucket, err := tx.Bucket(windowID, denom)
		if err != nil {
			return err
		}
		if !bucket.WinnerSet {
			return ErrWinnerPending
		}
		winning = bucket.WinningSub == sub
		return nil
	})
	if err != nil {
		return false, err
	}
	return winning, nil
}

// SubBucketStats returns a sub-bucket's aggregates, including the top entry
// used for tie-break and bonus reporting.
func (e *Engine) SubBucketStats(windowID uint32, denom, sub uint8) (*roster.SubBucketStats, error) {
	var stats *roster.SubBucketStats
	err := e.store.View(func(tx roster.Tx) error {
		if _, err := tx.Window(windowID); err != nil {
			return err
		}
		var err error
		stats, err = tx.SubBucket(windowID, denom, sub)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
