// Package audio defines the audio-backend collaborator contract of
// spec.md §6 and its two implementations: a deterministic fake used by
// tests and the "analyze"/"run --backend=fake" commands, and a real
// PortAudio-backed stream for actual hardware.
package audio

import (
	"github.com/AutoCookies/sonarlock/internal/core"
)

// DeviceInfo mirrors the backend-supplied device description of spec.md §6.
type DeviceInfo struct {
	ID                 int
	Name               string
	MaxInputChannels   int
	MaxOutputChannels  int
	DefaultSampleRate  float64
}

// Backend is the audio-device collaborator the core pipeline is driven
// through. It guarantees mono float samples in [-1, 1] and in-order buffer
// delivery, calling pipeline.Process exactly once per buffer.
type Backend interface {
	EnumerateDevices() ([]DeviceInfo, error)
	RunSession(cfg core.Config, pipeline *core.Pipeline, shouldStop func() bool) error
}
