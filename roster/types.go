// Package roster stores weighted entries in partitioned, append-only
// sub-buckets and keeps the per-window aggregates the settlement engine
// reads in O(1).
//
// A bucket is identified by its denom: the number of sub-buckets it is
// split into. Entries are assigned to sub-buckets round-robin in arrival
// order, so sub-bucket sizes stay near-uniform without knowing the final
// entry count in advance.
package roster

import "github.com/purgegame/go-settlement/draw"

// Address identifies an entry owner (20-byte account hash).
type Address [20]byte

// WindowState is the lifecycle position of one settlement window.
type WindowState uint8

const (
	// StateOpen accepts registrations.
	StateOpen WindowState = iota
	// StateSelecting is resolving winning sub-buckets bucket by bucket.
	StateSelecting
	// StateSettling has a finalized claim round; lazy claims are live and
	// eager payout may be driven to completion.
	StateSettling
	// StateClosed is terminal; only claims remain.
	StateClosed
)

// String returns a human-readable representation of the window state.
func (s WindowState) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateSelecting:
		return "SELECTING"
	case StateSettling:
		return "SETTLING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Entry is one weighted registration. Immutable once appended; the claimed
// flag lives on the owner's OwnerRef, not here.
type Entry struct {
	Owner     Address
	Weight    uint64
	WindowID  uint32
	Denom     uint8
	SubBucket uint8
	Index     uint32 // position within the sub-bucket
}

// EntryRef locates an entry without scanning.
type EntryRef struct {
	WindowID  uint32
	Denom     uint8
	SubBucket uint8
	Index     uint32
}

// SubBucketStats are the running aggregates of one sub-bucket.
type SubBucketStats struct {
	Count     uint32
	WeightSum uint64
	TopOwner  Address // highest single entry, for tie-break/bonus reporting
	TopWeight uint64
}

// BucketState is the per-(window, denom) record: the round-robin counter
// and, once selection has processed the bucket, its winning sub-bucket.
type BucketState struct {
	EntryCount uint32
	WinningSub uint8
	WinnerSet  bool
}

// OwnerRef is the per-(owner, window) index entry enabling O(1) claim
// lookup, plus the anti-double-claim flag.
type OwnerRef struct {
	Denom     uint8
	SubBucket uint8
	Index     uint32
	Claimed   bool
}

// ClaimRound is the immutable snapshot written when selection completes.
// It is the only data a lazy claim needs.
type ClaimRound struct {
	PoolAmount         uint64
	TotalWinningWeight uint64
}

// Window is the persisted per-window record: lifecycle state, the delivered
// seed, the prize pool, and the cursors that make selection and settlement
// resumable across invocations.
type Window struct {
	ID         uint32
	State      WindowState
	Seed       draw.Seed
	PoolAmount uint64
	EntryCount uint64

	// SelectCursor is the next denom the Selecting phase will process.
	SelectCursor uint8

	// Settling cursor: next (denom, member) to pay or scan.
	SettleDenom  uint8
	SettleMember uint32

	// WinningWeight accumulates winning sub-bucket weight during Selecting.
	WinningWeight uint64

	// Stream state for eager payout, initialized from the claim round.
	RemainingPool   uint64
	RemainingWeight uint64

	// Round is nil until Selecting completes, immutable afterwards.
	Round *ClaimRound
}
