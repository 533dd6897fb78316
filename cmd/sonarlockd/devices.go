package main

import (
	"fmt"

	"github.com/AutoCookies/sonarlock/internal/audio"
	"github.com/AutoCookies/sonarlock/internal/core"
	"github.com/AutoCookies/sonarlock/internal/logging"
)

func runDevices(log *logging.Logger, flags *sessionFlags) error {
	backend, err := flags.buildBackend()
	if err != nil {
		return err
	}

	devices, err := backend.EnumerateDevices()
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		log.Warn("no audio devices available")
		return fmt.Errorf("no audio devices available (code %d)", core.ErrAudioDeviceUnavailable)
	}

	for _, d := range devices {
		fmt.Printf("%d: %s (in=%d out=%d rate=%.0f)\n", d.ID, d.Name, d.MaxInputChannels, d.MaxOutputChannels, d.DefaultSampleRate)
	}
	return nil
}
