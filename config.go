package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const defaultConfigName = ".dcrc.toml"

// Config holds the settings a session starts with, as read from a TOML file:
//
//	ibase = 10
//	obase = 16
//	scale = 4
//	prompt = "> "
//	history = "~/.dc_history"
//	markup = false
//	restore-operands = false
//	array-limit = 65536
type Config struct {
	IBase           int    `toml:"ibase"`
	OBase           int    `toml:"obase"`
	Scale           int    `toml:"scale"`
	Prompt          string `toml:"prompt"`
	History         string `toml:"history"`
	Markup          bool   `toml:"markup"`
	RestoreOperands bool   `toml:"restore-operands"`
	ArrayLimit      uint   `toml:"array-limit"`
}

func defaultConfig() Config {
	return Config{
		IBase: defaultBase,
		OBase: defaultBase,
	}
}

// loadConfig reads the config file at path; an empty path means the default
// file in the home directory, which need not exist.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	optional := path == ""
	if optional {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, defaultConfigName)
	}

	data, err := os.ReadFile(path)
	if optional && errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("unable to read config: %w", err)
	}

	if err := cfg.decode(string(data)); err != nil {
		return cfg, fmt.Errorf("invalid config %v: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) decode(data string) error {
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return err
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return fmt.Errorf("unknown key %q", keys[0].String())
	}
	cfg.History = expandHome(cfg.History)
	return cfg.validate()
}

// validate applies the same ranges as the i, o and k operators.
func (cfg Config) validate() error {
	switch {
	case cfg.IBase < 2 || cfg.IBase > 16:
		return fmt.Errorf("ibase %v: %w", cfg.IBase, errInputBase)
	case cfg.OBase < 2 || cfg.OBase > 36:
		return fmt.Errorf("obase %v: %w", cfg.OBase, errOutputBase)
	case cfg.Scale < 0:
		return fmt.Errorf("scale %v: %w", cfg.Scale, errNegativeScale)
	case cfg.Scale > maxScale:
		return fmt.Errorf("scale %v: %w", cfg.Scale, errHugeScale)
	}
	return nil
}

func (cfg Config) options() Option {
	return Options(
		WithInputBase(cfg.IBase),
		WithOutputBase(cfg.OBase),
		WithScale(cfg.Scale),
		WithRestoreOperands(cfg.RestoreOperands),
		WithArrayLimit(cfg.ArrayLimit),
	)
}

func expandHome(path string) string {
	if rest := strings.TrimPrefix(path, "~/"); rest != path {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}
