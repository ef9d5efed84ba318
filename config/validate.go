package config

import (
	"fmt"

	"github.com/purgegame/go-settlement/roster"
)

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.PayoutMode != PayoutModeEager && cfg.PayoutMode != PayoutModeLazy {
		return fmt.Errorf("%w: %q", ErrInvalidPayoutMode, cfg.PayoutMode)
	}

	params := roster.Params{MinDenom: cfg.MinDenom, MaxDenom: cfg.MaxDenom}
	if err := params.Validate(); err != nil {
		return err
	}

	if cfg.OpsBudget == 0 || cfg.SelectionCap == 0 || cfg.OpsLimit == 0 {
		return ErrZeroBudget
	}

	return nil
}
