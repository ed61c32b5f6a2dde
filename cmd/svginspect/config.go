package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/benoitkugler/svgaudit/svginspect"
	"github.com/benoitkugler/svgaudit/svgraster"
	"github.com/benoitkugler/svgaudit/svgtree"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the command.
// They are read, by increasing priority, from the YAML config file,
// SVGINSPECT_XXX environment variables and the command line flags.
type Config struct {
	Builder  string `yaml:"builder"`   // xml or lex
	MaxDepth int    `yaml:"max_depth"` // nesting limit of the walk
	Format   string `yaml:"format"`    // json or yaml
	Jobs     int    `yaml:"jobs"`      // files inspected in parallel

	Palette    bool `yaml:"palette"`     // add the fill summary to the reports
	Raster     bool `yaml:"raster"`      // add the painted ratio to the reports
	RasterSize int  `yaml:"raster_size"` // longest side of the raster mask, in pixels

	LogLevel string `yaml:"log_level"` // debug, info, warn or error
}

// DefaultConfig returns the settings used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		Builder:    "xml",
		MaxDepth:   svginspect.DefaultMaxDepth,
		Format:     "json",
		Jobs:       4,
		RasterSize: svgraster.DefaultMaxSide,
		LogLevel:   "warn",
	}
}

// LoadConfig starts from DefaultConfig, then applies the file at `path`
// (if not empty) and the environment given by `getenv`.
func LoadConfig(path string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv(getenv func(string) string) error {
	for _, v := range []struct {
		key string
		s   *string
	}{
		{"SVGINSPECT_BUILDER", &cfg.Builder},
		{"SVGINSPECT_FORMAT", &cfg.Format},
		{"SVGINSPECT_LOG_LEVEL", &cfg.LogLevel},
	} {
		if val := getenv(v.key); val != "" {
			*v.s = val
		}
	}
	for _, v := range []struct {
		key string
		i   *int
	}{
		{"SVGINSPECT_MAX_DEPTH", &cfg.MaxDepth},
		{"SVGINSPECT_JOBS", &cfg.Jobs},
		{"SVGINSPECT_RASTER_SIZE", &cfg.RasterSize},
	} {
		if val := getenv(v.key); val != "" {
			n, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", v.key, err)
			}
			*v.i = n
		}
	}
	for _, v := range []struct {
		key string
		b   *bool
	}{
		{"SVGINSPECT_PALETTE", &cfg.Palette},
		{"SVGINSPECT_RASTER", &cfg.Raster},
	} {
		if val := getenv(v.key); val != "" {
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", v.key, err)
			}
			*v.b = b
		}
	}
	return nil
}

// Validate checks the names and limits.
func (cfg Config) Validate() error {
	if _, ok := svgtree.ByName(cfg.Builder); !ok {
		return fmt.Errorf("unknown builder %q (expected xml or lex)", cfg.Builder)
	}
	if cfg.Format != "json" && cfg.Format != "yaml" {
		return fmt.Errorf("unknown format %q (expected json or yaml)", cfg.Format)
	}
	if cfg.MaxDepth <= 0 {
		return fmt.Errorf("invalid max depth %d", cfg.MaxDepth)
	}
	if cfg.Jobs <= 0 {
		return fmt.Errorf("invalid jobs %d", cfg.Jobs)
	}
	if cfg.RasterSize <= 0 {
		return fmt.Errorf("invalid raster size %d", cfg.RasterSize)
	}
	if _, err := cfg.level(); err != nil {
		return err
	}
	return nil
}

func (cfg Config) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	return lvl, nil
}
