// Package storeconfig persists the file search store hand-off between the
// ingestion tool and the chat service.
package storeconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tnega/gosearch/internal/entity"
)

// Save writes the store configuration as indented JSON.
func Save(path string, cfg entity.StoreConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write store config %s: %w", path, err)
	}

	return nil
}

// Load reads the store configuration written by the ingestion tool. A missing
// file maps to entity.ErrStoreConfigMissing so callers can tell the user to
// run ingestion first.
func Load(path string) (entity.StoreConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return entity.StoreConfig{}, fmt.Errorf("%w: %s (run the ingestion tool first to create the store)", entity.ErrStoreConfigMissing, path)
		}
		return entity.StoreConfig{}, fmt.Errorf("read store config %s: %w", path, err)
	}

	var cfg entity.StoreConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return entity.StoreConfig{}, fmt.Errorf("parse store config %s: %w", path, err)
	}

	if cfg.StoreName == "" {
		return entity.StoreConfig{}, fmt.Errorf("store config %s has an empty store_name", path)
	}

	return cfg, nil
}
