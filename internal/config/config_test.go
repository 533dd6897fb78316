package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AutoCookies/sonarlock/internal/core"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, core.DefaultConfig().Audio, cfg.Audio)
	assert.Equal(t, core.ModeSoft, cfg.Actions.Mode)
}

func TestLoadOverlaysYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sonarlock.yaml")
	contents := "audio:\n  f0_hz: 18500\nactions:\n  mode: lock\n"
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 18500.0, cfg.Audio.F0Hz)
	assert.Equal(t, core.ModeLock, cfg.Actions.Mode)
	// Unspecified fields keep their defaults.
	assert.Equal(t, 48000.0, cfg.Audio.SampleRateHz)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("audio:\n  frames_per_buffer: 0\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownActionMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad-mode.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("actions:\n  mode: disco\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
