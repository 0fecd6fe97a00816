package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/adfharrison1/hashsync/pkg/logutil"
)

// Config is the server configuration, read from a TOML file
type Config struct {
	Server  ServerConfig      `toml:"server"`
	Storage StorageConfig     `toml:"storage"`
	Log     logutil.LogConfig `toml:"log"`
}

type ServerConfig struct {
	Port            string        `toml:"port"`
	ShutdownTimeout time.Duration `toml:"shutdown-timeout"`
}

type StorageConfig struct {
	InitialCapacity int                `toml:"initial-capacity"`
	MaxPageSize     int                `toml:"max-page-size"`
	Collections     []CollectionConfig `toml:"collections"`
}

// CollectionConfig declares a collection and its field indexes to create at startup
type CollectionConfig struct {
	Name    string   `toml:"name"`
	Indexes []string `toml:"indexes"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ShutdownTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			MaxPageSize: 1000,
		},
		Log: logutil.DefaultLogConfig(),
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges and collection declarations
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("server.shutdown-timeout must be positive")
	}
	if c.Storage.InitialCapacity < 0 {
		return errors.New("storage.initial-capacity cannot be negative")
	}
	if c.Storage.MaxPageSize <= 0 {
		return errors.New("storage.max-page-size must be positive")
	}

	seen := make(map[string]bool)
	for _, coll := range c.Storage.Collections {
		if coll.Name == "" {
			return errors.New("storage.collections: name is required")
		}
		if seen[coll.Name] {
			return fmt.Errorf("storage.collections: duplicate collection %s", coll.Name)
		}
		seen[coll.Name] = true
		for _, field := range coll.Indexes {
			if field == "" {
				return fmt.Errorf("storage.collections: empty index field in %s", coll.Name)
			}
		}
	}
	return nil
}
