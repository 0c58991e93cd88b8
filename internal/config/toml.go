// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Minesweeper MinesweeperConfig `toml:"minesweeper"`
	UI          UIConfig          `toml:"ui"`
	Log         LogConfig         `toml:"log"`
}

// MinesweeperConfig maps board settings.
type MinesweeperConfig struct {
	Rows  *int   `toml:"rows"`
	Cols  *int   `toml:"cols"`
	Mines *int   `toml:"mines"`
	Seed  *int64 `toml:"seed"`
}

// UIConfig maps terminal UI settings.
type UIConfig struct {
	TickMs *int  `toml:"tick-ms"`
	ASCII  *bool `toml:"ascii"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
