package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
display = " :1 "
unchecked = true
log_level = "debug"
`)
	cfg := defaultConfig()
	cfg.Screen = 3
	require.NoError(t, loadConfig(path, true, &cfg))
	assert.Equal(t, config{
		Display:   ":1",
		Screen:    3,
		Unchecked: true,
		LogLevel:  logrus.DebugLevel,
	}, cfg)
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	cfg := defaultConfig()
	assert.NoError(t, loadConfig(path, false, &cfg))
	assert.Equal(t, defaultConfig(), cfg)
	assert.Error(t, loadConfig(path, true, &cfg))
}

func TestLoadConfigInvalid(t *testing.T) {
	for _, body := range []string{
		`log_level = "loud"`,
		`screen = -1`,
		`display = [`,
	} {
		cfg := defaultConfig()
		assert.Error(t, loadConfig(writeConfig(t, body), true, &cfg), body)
	}
}

func TestParseWindow(t *testing.T) {
	w, err := parseWindow("0x1a00003")
	require.NoError(t, err)
	assert.EqualValues(t, 0x1a00003, w)

	w, err = parseWindow("")
	require.NoError(t, err)
	assert.Zero(t, w)

	_, err = parseWindow("frame")
	assert.Error(t, err)
}
