package payout

import "fmt"

// ValidateConservation checks that the amounts paid out plus the reported
// remainder exactly reconstruct the original pool.
func ValidateConservation(amounts []uint64, remainder, pool uint64) error {
	var paid uint64
	for _, a := range amounts {
		paid += a
	}
	if paid+remainder != pool {
		return fmt.Errorf("%w: paid=%d remainder=%d pool=%d",
			ErrConservationViolation, paid, remainder, pool)
	}
	return nil
}
