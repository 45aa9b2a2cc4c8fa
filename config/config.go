// Package config provides YAML configuration for catalog building.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/eak1mov/go-tilecatalog/catalog"
	"github.com/eak1mov/go-tilecatalog/compression"
	"github.com/eak1mov/go-tilecatalog/tilehash"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("tilecatalog: invalid config")

// Config represents the catalog settings loaded from YAML.
type Config struct {
	Catalog struct {
		// TileSize is the side length of a tile in pixels.
		TileSize int `yaml:"tileSize"`

		// Hasher names the structural hash: md5, sha256 or fnv128a.
		Hasher string `yaml:"hasher"`

		// Workers is the number of goroutines hashing tiles.
		Workers int `yaml:"workers"`

		// CollisionCheck verifies that tiles sharing an identifier have equal content.
		CollisionCheck bool `yaml:"collisionCheck"`
	} `yaml:"catalog"`

	Store struct {
		// Compression is the codec for stored tile data: none, gzip or zstd.
		Compression string `yaml:"compression"`
	} `yaml:"store"`

	Log struct {
		// Level is one of debug, info, warn, error.
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.Catalog.TileSize = 2
	cfg.Catalog.Hasher = "md5"
	cfg.Catalog.Workers = runtime.NumCPU()
	cfg.Catalog.CollisionCheck = false
	cfg.Store.Compression = "zstd"
	cfg.Log.Level = "info"
	return cfg
}

// Load reads configuration from a YAML file on top of the defaults.
// If the file doesn't exist, it returns the default configuration.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func (cfg *Config) Validate() error {
	if cfg.Catalog.TileSize <= 0 {
		return fmt.Errorf("%w: tileSize must be positive, got %d", ErrInvalidConfig, cfg.Catalog.TileSize)
	}
	if _, err := tilehash.ByName(cfg.Catalog.Hasher); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := compression.Parse(cfg.Store.Compression); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := cfg.LogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (cfg *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(cfg.Log.Level))
	return level, err
}

// CatalogOptions translates the catalog section into catalog.Build options.
func (cfg *Config) CatalogOptions(logger *slog.Logger) ([]catalog.Option, error) {
	hasher, err := tilehash.ByName(cfg.Catalog.Hasher)
	if err != nil {
		return nil, err
	}
	return []catalog.Option{
		catalog.WithHasher(hasher),
		catalog.WithWorkers(cfg.Catalog.Workers),
		catalog.WithCollisionCheck(cfg.Catalog.CollisionCheck),
		catalog.WithLogger(logger),
	}, nil
}

func (cfg *Config) Compression() (compression.Compression, error) {
	return compression.Parse(cfg.Store.Compression)
}
