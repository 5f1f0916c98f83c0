package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/freightops/loadmatch/core/matching"
	"github.com/freightops/loadmatch/core/metrics"
	"github.com/freightops/loadmatch/core/outreach"
	"github.com/freightops/loadmatch/infra/audit"
	"github.com/freightops/loadmatch/infra/transport"
)

type Config struct {
	Server    ServerConfig     `json:"server"`
	Store     StoreConfig      `json:"store"`
	Matching  matching.Scorer  `json:"matching"`
	Outreach  outreach.Config  `json:"outreach"`
	Audit     audit.Config     `json:"audit"`
	Metrics   metrics.Config   `json:"metrics"`
	Transport transport.Config `json:"transport"`
}

// ServerConfig configures the HTTP API listener.
type ServerConfig struct {
	Port string `json:"port"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
}

// StoreConfig selects the primary storage backend.
type StoreConfig struct {
	// Backend is "sqlite" or "memory".
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *StoreConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "sqlite"
	}
	if c.Backend == "sqlite" && c.Path == "" {
		c.Path = "loadmatch.db"
	}
}

// Validate checks mandatory fields.
func (c StoreConfig) Validate() error {
	switch c.Backend {
	case "sqlite":
		if c.Path == "" {
			return fmt.Errorf("sqlite backend requires a path")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown store backend %q", c.Backend)
	}
	return nil
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("LM_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "lm_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	cfg.Matching = matching.NewScorer()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Store.SetDefaults()
	c.Outreach.SetDefaults()
	c.Metrics.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Outreach.Validate(); err != nil {
		return fmt.Errorf("outreach: %w", err)
	}
	if err := c.Audit.Validate(); err != nil {
		return fmt.Errorf("audit: %w", err)
	}
	if err := c.Transport.Validate(); err != nil {
		return fmt.Errorf("transport: %w", err)
	}
	return nil
}
