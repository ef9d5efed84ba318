package settle

import (
	"path/filepath"

	"github.com/purgegame/go-settlement/config"
	"github.com/purgegame/go-settlement/roster"
)

// engineDBName is the bbolt file name inside the data directory.
const engineDBName = "settlement.db"

// FromConfig validates cfg, opens the persistent store under cfg.DataDir,
// and returns an engine bound to it. Close the engine to release the
// database.
func FromConfig(cfg config.Config) (*Engine, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	store, err := roster.OpenBoltStore(filepath.Join(cfg.DataDir, engineDBName))
	if err != nil {
		return nil, err
	}

	eng, err := New(store, roster.Params{MinDenom: cfg.MinDenom, MaxDenom: cfg.MaxDenom})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return eng, nil
}
