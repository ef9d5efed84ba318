package config

import "errors"

var (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")

	// ErrInvalidValue indicates a config value fails to parse.
	ErrInvalidValue = errors.New("config: invalid value")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidPayoutMode indicates the payout mode is not recognized.
	ErrInvalidPayoutMode = errors.New("config: invalid payout mode (must be \"eager\" or \"lazy\")")

	// ErrZeroBudget indicates a per-invocation budget of zero.
	ErrZeroBudget = errors.New("config: per-invocation budgets must be positive")
)
