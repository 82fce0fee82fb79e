package store

import (
	"fmt"

	"github.com/dgallion1/docoutline/internal/config"
)

// Open returns the backend selected by cfg.StoreBackend, or nil when none
// is configured.
func Open(cfg config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.StoreNone:
		return nil, nil
	case config.StoreSQLite:
		s, err := NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StorePathstore:
		return NewPathstore(cfg.PathstoreURL, cfg.PathstoreAPIKey), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
