// Package config loads the server configuration and builds the configured
// state store backend.
package config

import (
	"fmt"
	"os"
	"time"

	backend "github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"flightdesk/internal/adapters/file"
	"flightdesk/internal/adapters/redis"
	"flightdesk/internal/adapters/sqlite"
	"flightdesk/pkg/adapters/memory"
	redislock "flightdesk/pkg/adapters/redis"
	"flightdesk/pkg/ports"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config is the server configuration.
type Config struct {
	Addr  string      `yaml:"addr"`
	Store StoreConfig `yaml:"store"`
}

// StoreConfig selects and parameterizes the state store backend.
type StoreConfig struct {
	Backend string `yaml:"backend"`

	// File backend.
	Path string `yaml:"path,omitempty"`

	// Redis backend.
	Address  string        `yaml:"address,omitempty"`
	Password string        `yaml:"password,omitempty"`
	DB       int           `yaml:"db,omitempty"`
	TTL      time.Duration `yaml:"ttl,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr: ":8080",
		Store: StoreConfig{
			Backend: BackendMemory,
		},
	}
}

// Load reads a YAML configuration file. Fields missing from the file keep
// their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// BuildStore creates the configured store backend. The returned cleanup
// closes whatever the backend holds open; the locker is non-nil only for
// backends that support cross-replica locking.
func (c StoreConfig) BuildStore() (ports.StateStore, ports.ConversationLocker, func() error, error) {
	noop := func() error { return nil }

	switch c.Backend {
	case "", BackendMemory:
		return memory.NewStore(), nil, noop, nil

	case BackendFile:
		return file.New(c.Path), nil, noop, nil

	case BackendSQLite:
		path := c.Path
		if path == "" {
			path = "flightdesk.db"
		}
		store, err := sqlite.New(path)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, nil, store.Close, nil

	case BackendRedis:
		client := backend.NewClient(&backend.Options{
			Addr:     c.Address,
			Password: c.Password,
			DB:       c.DB,
		})
		store := redis.NewFromClient(client, redis.WithTTL(c.TTL))
		locker := redislock.NewLocker(client, "flightdesk:")
		return store, locker, store.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", c.Backend)
	}
}
