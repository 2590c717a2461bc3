package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rubiojr/parems/pkg/config"
	"github.com/rubiojr/parems/pkg/log"
	"github.com/rubiojr/parems/pkg/storage"
)

// openStore loads the configuration and opens the catalog it points at.
// Unless create is set, a missing database is an error.
func openStore(configPath string, create bool) (*config.Config, *storage.Store, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if !create {
		if _, err := os.Stat(cfg.Database); os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("catalog %s not found, run 'parems install --data <file>' first", cfg.Database)
		}
	} else if err := os.MkdirAll(filepath.Dir(cfg.Database), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating database directory: %w", err)
	}

	store, err := storage.NewStore(cfg.Database, cfg.Cache.CountTTL())
	if err != nil {
		return nil, nil, fmt.Errorf("opening catalog: %w", err)
	}
	return cfg, store, nil
}

func closeStore(store *storage.Store) {
	if err := store.Close(); err != nil {
		log.ForService("cmd").Warnf("failed to close catalog: %v", err)
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
