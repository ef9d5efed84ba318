// Package payout divides a fixed reward pool among weighted winners.
//
// Two strategies are provided. Streaming division pays winners in sequence
// and closes out integer-division dust exactly: the amounts plus the final
// remainder always sum to the original pool. Snapshot division computes each
// payout independently from an immutable (pool, totalWeight) pair, which
// keeps claims order-free at the cost of up to one unit of dust per winner
// left in the pool.
package payout

import (
	"fmt"
	"math/bits"
)

// Stream tracks the unallocated portion of a pool during sequential payout.
type Stream struct {
	remainingPool   uint64
	remainingWeight uint64
}

// NewStream starts a payout stream over a full pool.
func NewStream(pool, totalWeight uint64) *Stream {
	return &Stream{remainingPool: pool, remainingWeight: totalWeight}
}

// ResumeStream reconstructs a stream from persisted remainders, so a payout
// interrupted between invocations continues exactly where it stopped.
func ResumeStream(remainingPool, remainingWeight uint64) *Stream {
	return &Stream{remainingPool: remainingPool, remainingWeight: remainingWeight}
}

// Pay allocates the next winner's amount and advances the stream.
// A winner holding all remaining weight receives the entire remaining pool,
// so the final payment absorbs every unit of rounding dust.
func (s *Stream) Pay(weight uint64) (uint64, error) {
	if weight == 0 {
		return 0, ErrZeroWeight
	}
	if weight > s.remainingWeight {
		return 0, fmt.Errorf("%w: weight %d exceeds remaining %d",
			ErrWeightExceeded, weight, s.remainingWeight)
	}

	var amount uint64
	if weight == s.remainingWeight {
		amount = s.remainingPool
	} else {
		amount = floorShare(s.remainingPool, weight, s.remainingWeight)
	}

	s.remainingPool -= amount
	s.remainingWeight -= weight
	return amount, nil
}

// Deduct removes an externally settled payment from the stream. Used when a
// winner claims lazily while eager settlement is still in progress: the claim
// consumed part of the pool the stream would otherwise allocate.
func (s *Stream) Deduct(amount, weight uint64) error {
	if amount > s.remainingPool {
		return fmt.Errorf("%w: amount %d exceeds remaining pool %d",
			ErrPoolExceeded, amount, s.remainingPool)
	}
	if weight > s.remainingWeight {
		return fmt.Errorf("%w: weight %d exceeds remaining %d",
			ErrWeightExceeded, weight, s.remainingWeight)
	}
	s.remainingPool -= amount
	s.remainingWeight -= weight
	return nil
}

// Remainder returns the unallocated pool balance.
func (s *Stream) Remainder() uint64 { return s.remainingPool }

// RemainingWeight returns the weight not yet paid or deducted.
func (s *Stream) RemainingWeight() uint64 { return s.remainingWeight }

// SnapshotShare computes one winner's payout from an immutable claim-round
// snapshot: floor(pool * weight / totalWeight).
func SnapshotShare(pool, weight, totalWeight uint64) (uint64, error) {
	if totalWeight == 0 {
		return 0, ErrZeroTotalWeight
	}
	if weight > totalWeight {
		return 0, fmt.Errorf("%w: weight %d exceeds total %d",
			ErrWeightExceeded, weight, totalWeight)
	}
	return floorShare(pool, weight, totalWeight), nil
}

// floorShare computes floor(pool * weight / totalWeight) with a 128-bit
// intermediate product. Requires weight <= totalWeight, which bounds the
// quotient by pool.
func floorShare(pool, weight, totalWeight uint64) uint64 {
	hi, lo := bits.Mul64(pool, weight)
	q, _ := bits.Div64(hi, lo, totalWeight)
	return q
}
