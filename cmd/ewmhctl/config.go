package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type fileConfig struct {
	Display   string `toml:"display"`
	Screen    int    `toml:"screen"`
	Unchecked bool   `toml:"unchecked"`
	LogLevel  string `toml:"log_level"`
}

// config is what a command runs with: defaults, then the config file, then
// flags.
type config struct {
	Display   string
	Screen    int
	Unchecked bool
	LogLevel  logrus.Level
}

func defaultConfig() config {
	return config{LogLevel: logrus.WarnLevel}
}

// defaultConfigPath is $XDG_CONFIG_HOME/ewmhctl/config.toml.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ewmhctl", "config.toml")
}

// loadConfig applies the keys set in the file at path to cfg. A missing
// file is not an error unless mustExist is set.
func loadConfig(path string, mustExist bool, cfg *config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return nil
		}
		return errors.Wrap(err, "load ewmhctl config")
	}

	if meta.IsDefined("display") {
		cfg.Display = strings.TrimSpace(raw.Display)
	}
	if meta.IsDefined("screen") {
		if raw.Screen < 0 {
			return errors.Errorf("%s: screen must not be negative", path)
		}
		cfg.Screen = raw.Screen
	}
	if meta.IsDefined("unchecked") {
		cfg.Unchecked = raw.Unchecked
	}
	if meta.IsDefined("log_level") {
		lvl, err := logrus.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return errors.Wrapf(err, "%s: parse log_level", path)
		}
		cfg.LogLevel = lvl
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logrus.WithField("keys", undecoded).Warn("ignoring unknown config keys")
	}
	return nil
}
