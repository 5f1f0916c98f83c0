package audit

import (
	"fmt"

	coreaudit "github.com/freightops/loadmatch/core/audit"
)

// Config selects the audit persistence backend.
type Config struct {
	// Backend is "jsonl" or "sqlite". Empty disables persistence.
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

// Validate checks backend and path consistency.
func (c Config) Validate() error {
	switch c.Backend {
	case "", "jsonl", "sqlite":
	default:
		return fmt.Errorf("unknown audit backend %q", c.Backend)
	}
	if c.Backend != "" && c.Path == "" {
		return fmt.Errorf("audit backend %q requires a path", c.Backend)
	}
	return nil
}

// NewStore builds the configured audit store, or nil when persistence is
// disabled.
func NewStore(cfg Config) (coreaudit.Store, error) {
	switch cfg.Backend {
	case "jsonl":
		return NewJSONLStore(cfg.Path)
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown audit backend %q", cfg.Backend)
	}
}
