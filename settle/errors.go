package settle

import "errors"

var (
	// ErrWindowNotOpen indicates a registration, funding, or selection start
	// against a window that is not accepting them.
	ErrWindowNotOpen = errors.New("settle: window not open")

	// ErrWindowNotSelecting indicates a selection step on a window outside
	// the Selecting state.
	ErrWindowNotSelecting = errors.New("settle: window not selecting")

	// ErrWindowNotSettling indicates an eager settlement step on a window
	// outside the Settling state.
	ErrWindowNotSettling = errors.New("settle: window not settling")

	// ErrWindowNotClaimable indicates a claim before the claim round was
	// finalized.
	ErrWindowNotClaimable = errors.New("settle: window not claimable yet")

	// ErrNotWinner indicates a claim from an entry outside the winning
	// sub-bucket of its bucket.
	ErrNotWinner = errors.New("settle: entry is not in a winning sub-bucket")

	// ErrAlreadyClaimed indicates a second claim for the same entry.
	ErrAlreadyClaimed = errors.New("settle: entry already claimed")

	// ErrWinnerPending indicates the bucket has not been processed by the
	// Selecting phase yet.
	ErrWinnerPending = errors.New("settle: winning sub-bucket not determined yet")

	// ErrRoundNotFinal indicates the claim round snapshot does not exist yet.
	ErrRoundNotFinal = errors.New("settle: claim round not finalized")
)
