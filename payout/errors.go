package payout

import "errors"

var (
	// ErrZeroWeight indicates a payout for a zero-weight winner.
	ErrZeroWeight = errors.New("payout: zero winner weight")

	// ErrZeroTotalWeight indicates a snapshot with no winning weight.
	ErrZeroTotalWeight = errors.New("payout: zero total winning weight")

	// ErrWeightExceeded indicates a winner weight larger than the weight
	// still unaccounted for.
	ErrWeightExceeded = errors.New("payout: weight exceeds remaining weight")

	// ErrPoolExceeded indicates a deduction larger than the remaining pool.
	ErrPoolExceeded = errors.New("payout: amount exceeds remaining pool")

	// ErrConservationViolation indicates paid amounts plus remainder do not
	// equal the original pool.
	ErrConservationViolation = errors.New("payout: pool conservation violated")
)
