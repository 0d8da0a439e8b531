// Package config provides configuration helpers and TOML parsing.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/verte-zerg/keystrike/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Typing   TypingConfig   `toml:"typing"`
	Arena    ArenaConfig    `toml:"arena"`
	Log      LogConfig      `toml:"log"`
}

// PracticeConfig maps word generation settings.
type PracticeConfig struct {
	Lang       *string  `toml:"lang"`
	Words      *int     `toml:"words"`
	CapsPct    *float64 `toml:"caps"`
	PunctPct   *float64 `toml:"punct"`
	PunctSet   *string  `toml:"punct-set"`
	FocusWeak  *bool    `toml:"focus-weak"`
	WeakTop    *int     `toml:"weak-top"`
	WeakFactor *float64 `toml:"weak-factor"`
	WeakWindow *int     `toml:"weak-window"`
}

// TypingConfig maps engine tuning.
type TypingConfig struct {
	DamagePerStroke *float64 `toml:"damage-per-stroke"`
	Seed            *int64   `toml:"seed"`
}

// ArenaConfig maps encounter selection.
type ArenaConfig struct {
	Enemy    *string `toml:"enemy"`
	Context  *string `toml:"context"`
	RunType  *string `toml:"run-type"`
	Preset   *string `toml:"preset"`
	PlayerHP *int    `toml:"player-hp"`
	Catalog  *string `toml:"catalog"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// Defaults returns the built-in encounter configuration.
func Defaults() model.Config {
	return model.Config{
		Lang:            "en",
		Words:           25,
		CapsPct:         0,
		PunctPct:        0,
		PunctSet:        ".,?!;:",
		WeakTop:         5,
		WeakFactor:      2,
		WeakWindow:      10,
		Enemy:           "typo-gremlin",
		Context:         "combat",
		RunType:         "standard",
		DamagePerStroke: 1,
		PlayerHP:        100,
	}
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, errors.New("config path is empty")
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

// Validate checks ranges the engine relies on.
func Validate(cfg model.Config) error {
	switch {
	case cfg.Words <= 0:
		return fmt.Errorf("words must be positive, got %d", cfg.Words)
	case cfg.CapsPct < 0 || cfg.CapsPct > 1:
		return fmt.Errorf("caps must be within [0,1], got %v", cfg.CapsPct)
	case cfg.PunctPct < 0 || cfg.PunctPct > 1:
		return fmt.Errorf("punct must be within [0,1], got %v", cfg.PunctPct)
	case cfg.WeakFactor < 1:
		return fmt.Errorf("weak-factor must be at least 1, got %v", cfg.WeakFactor)
	case cfg.DamagePerStroke <= 0:
		return fmt.Errorf("damage-per-stroke must be positive, got %v", cfg.DamagePerStroke)
	case cfg.PlayerHP <= 0:
		return fmt.Errorf("player-hp must be positive, got %d", cfg.PlayerHP)
	}
	return nil
}
