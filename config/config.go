// Package config holds deployment settings for the settlement engine: where
// persisted state lives, the accepted denom range, the payout strategy a
// deployment commits to, and default per-invocation budgets.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PayoutMode names the conservation guarantee a deployment relies on.
const (
	// PayoutModeEager settles windows via AdvanceSettlement; paid amounts
	// plus the reported remainder equal the pool exactly.
	PayoutModeEager = "eager"

	// PayoutModeLazy leaves windows in Settling and services them through
	// per-owner claims; up to one unit of dust per winner stays unallocated.
	PayoutModeLazy = "lazy"
)

// Config holds all engine deployment settings.
type Config struct {
	// DataDir is the directory holding the bbolt database.
	DataDir string

	// PayoutMode selects the settlement strategy: "eager" or "lazy".
	PayoutMode string

	// MinDenom and MaxDenom bound the accepted bucket denoms.
	MinDenom uint8
	MaxDenom uint8

	// OpsBudget is the default bucket budget per AdvanceSelection call.
	OpsBudget uint64

	// SelectionCap is the default winners-paid cap per AdvanceSettlement call.
	SelectionCap uint64

	// OpsLimit is the default total-operations cap per AdvanceSettlement call.
	OpsLimit uint64
}

// DefaultConfig returns the standard settings.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:      filepath.Join(home, ".settlement"),
		PayoutMode:   PayoutModeLazy,
		MinDenom:     4,
		MaxDenom:     20,
		OpsBudget:    32,
		SelectionCap: 64,
		OpsLimit:     5000,
	}
}

// LoadConfig reads a flat "key = value" configuration file. Blank lines and
// lines starting with '#' are ignored. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		if err := cfg.set(key, value); err != nil {
			return cfg, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read: %w", err)
	}

	return cfg, nil
}

// set applies one key/value pair to the config.
func (c *Config) set(key, value string) error {
	switch key {
	case "datadir":
		c.DataDir = value
	case "payoutmode":
		c.PayoutMode = strings.ToLower(value)
	case "mindenom":
		v, err := parseUint(key, value, 8)
		if err != nil {
			return err
		}
		c.MinDenom = uint8(v)
	case "maxdenom":
		v, err := parseUint(key, value, 8)
		if err != nil {
			return err
		}
		c.MaxDenom = uint8(v)
	case "opsbudget":
		v, err := parseUint(key, value, 64)
		if err != nil {
			return err
		}
		c.OpsBudget = v
	case "selectioncap":
		v, err := parseUint(key, value, 64)
		if err != nil {
			return err
		}
		c.SelectionCap = v
	case "opslimit":
		v, err := parseUint(key, value, 64)
		if err != nil {
			return err
		}
		c.OpsLimit = v
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidConfigLine, key)
	}
	return nil
}

func parseUint(key, value string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(value, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
	}
	return v, nil
}

// SaveConfig writes the configuration to path, creating parent directories
// as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Settlement engine configuration\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "payoutmode = %s\n", cfg.PayoutMode)
	fmt.Fprintf(&b, "mindenom = %d\n", cfg.MinDenom)
	fmt.Fprintf(&b, "maxdenom = %d\n", cfg.MaxDenom)
	fmt.Fprintf(&b, "opsbudget = %d\n", cfg.OpsBudget)
	fmt.Fprintf(&b, "selectioncap = %d\n", cfg.SelectionCap)
	fmt.Fprintf(&b, "opslimit = %d\n", cfg.OpsLimit)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}
