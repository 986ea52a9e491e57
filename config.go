package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"LeafTools/leafpack"
	"LeafTools/lf2"

	"github.com/BurntSushi/toml"
	"github.com/apex/log"
)

// Config holds the persisted defaults, {HOME}/.leaftools/config.toml
type Config struct {
	OutputDir     string `toml:"output_dir"`
	Workers       int    `toml:"workers"`
	FileCounts    []int  `toml:"file_counts"`    // accepted LEAFPACK file counts, empty accepts any
	RowOrder      string `toml:"row_order"`      // "legacy" or "exact"
	LogLevel      string `toml:"log_level"`      // debug, info, warn, error
	ConvertImages bool   `toml:"convert_images"` // write .png next to extracted .LF2 entries
}

func defaultConfig() *Config {
	return &Config{
		OutputDir:  "out",
		Workers:    runtime.NumCPU(),
		FileCounts: append([]int(nil), leafpack.DefaultFileCounts...),
		RowOrder:   lf2.RowOrderLegacy.String(),
		LogLevel:   "info",
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".leaftools", "config.toml")
	}
	return filepath.Join(home, ".leaftools", "config.toml")
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		log.WithField("keys", strings.Join(keys, ",")).Warn("unknown config keys")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}

func saveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	return f.Close()
}

func (c *Config) variant() leafpack.VariantFunc {
	if len(c.FileCounts) == 0 {
		return leafpack.AnyFileCount
	}
	return leafpack.KnownFileCounts(c.FileCounts...)
}

func (c *Config) rowOrder() lf2.RowOrder {
	return lf2.ParseRowOrder(c.RowOrder)
}
