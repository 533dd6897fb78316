package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/AutoCookies/sonarlock/internal/audio"
	"github.com/AutoCookies/sonarlock/internal/config"
	"github.com/AutoCookies/sonarlock/internal/core"
)

// sessionFlags is the pflag surface shared by run and analyze, mirroring
// original_source/src/app/cli_parser.cpp's option set.
type sessionFlags struct {
	configPath string
	backend    string
	scenario   string
	seed       int64
	csvPath    string

	duration    float64
	f0          float64
	sampleRate  float64
	frames      int
	lpCutoff    float64
	bandLow     float64
	bandHigh    float64
	triggerTh   float64
	releaseTh   float64
	debounceMs  int
	cooldownMs  int

	gpioChip    string
	buzzerPin   int
	ledPin      int
}

func registerSessionFlags() *sessionFlags {
	f := &sessionFlags{}
	pflag.StringVarP(&f.configPath, "config", "c", "", "Path to a YAML config file.")
	pflag.StringVar(&f.backend, "backend", "fake", "Audio backend: real or fake.")
	pflag.StringVar(&f.scenario, "scenario", "static", "Fake-backend scenario: static, human, pet, vibration.")
	pflag.Int64Var(&f.seed, "seed", 1, "Fake-backend RNG seed.")
	pflag.StringVar(&f.csvPath, "csv", "", "Path to write a per-buffer CSV analysis report (analyze only).")

	pflag.Float64Var(&f.duration, "duration", 0, "Session duration in seconds. 0 uses the fake backend's 60s default / runs the real backend until stopped.")
	pflag.Float64Var(&f.f0, "freq", 0, "Carrier frequency override, Hz.")
	pflag.Float64Var(&f.sampleRate, "samplerate", 0, "Sample rate override, Hz.")
	pflag.IntVar(&f.frames, "frames", 0, "Frames-per-buffer override.")
	pflag.Float64Var(&f.lpCutoff, "lp-cutoff", 0, "Low-pass cutoff override, Hz.")
	pflag.Float64Var(&f.bandLow, "band-low", 0, "Doppler band low edge override, Hz.")
	pflag.Float64Var(&f.bandHigh, "band-high", 0, "Doppler band high edge override, Hz.")
	pflag.Float64Var(&f.triggerTh, "trigger-th", 0, "Trigger threshold override.")
	pflag.Float64Var(&f.releaseTh, "release-th", 0, "Release threshold override.")
	pflag.IntVar(&f.debounceMs, "debounce-ms", 0, "Debounce override, ms.")
	pflag.IntVar(&f.cooldownMs, "cooldown-ms", 0, "Cooldown override, ms.")

	pflag.StringVar(&f.gpioChip, "gpio-chip", "", "gpiochip device to drive a buzzer/LED indicator on (e.g. gpiochip0). Empty disables GPIO output.")
	pflag.IntVar(&f.buzzerPin, "gpio-buzzer-pin", 17, "GPIO line offset for the buzzer output.")
	pflag.IntVar(&f.ledPin, "gpio-led-pin", 27, "GPIO line offset for the status LED output.")
	return f
}

// buildConfig loads the config file (if any) then overlays any explicitly
// set CLI flags on top of it, matching cli_parser.cpp's option precedence:
// the command line always wins.
func (f *sessionFlags) buildConfig() (core.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return core.Config{}, err
	}

	if f.duration != 0 {
		cfg.Audio.DurationSeconds = f.duration
	}
	if f.f0 != 0 {
		cfg.Audio.F0Hz = f.f0
	}
	if f.sampleRate != 0 {
		cfg.Audio.SampleRateHz = f.sampleRate
	}
	if f.frames != 0 {
		cfg.Audio.FramesPerBuffer = uint(f.frames)
	}
	if f.lpCutoff != 0 {
		cfg.DSP.LPCutoffHz = f.lpCutoff
	}
	if f.bandLow != 0 {
		cfg.DSP.DopplerBandLowHz = f.bandLow
	}
	if f.bandHigh != 0 {
		cfg.DSP.DopplerBandHighHz = f.bandHigh
	}
	if f.triggerTh != 0 {
		cfg.Detection.TriggerThreshold = f.triggerTh
	}
	if f.releaseTh != 0 {
		cfg.Detection.ReleaseThreshold = f.releaseTh
	}
	if f.debounceMs != 0 {
		cfg.Detection.DebounceMs = uint32(f.debounceMs)
	}
	if f.cooldownMs != 0 {
		cfg.Detection.CooldownMs = uint32(f.cooldownMs)
	}

	if err := cfg.Validate(); err != nil {
		return core.Config{}, err
	}
	return cfg, nil
}

func (f *sessionFlags) buildBackend() (audio.Backend, error) {
	switch f.backend {
	case "real":
		return audio.NewPortAudioBackend(), nil
	case "fake":
		scenario, err := audio.ParseFakeScenario(f.scenario)
		if err != nil {
			return nil, err
		}
		return audio.NewFakeBackend(scenario, f.seed), nil
	default:
		return nil, fmt.Errorf("invalid backend %q: want real or fake", f.backend)
	}
}
