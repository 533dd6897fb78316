package audio

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/AutoCookies/sonarlock/internal/core"
)

// FakeScenario selects one of the canned signal generators used both for
// tests and for manual exploration from the CLI (SPEC_FULL.md's
// "supplemented features").
type FakeScenario int

const (
	ScenarioStatic FakeScenario = iota
	ScenarioHuman
	ScenarioPet
	ScenarioVibration
)

func ParseFakeScenario(s string) (FakeScenario, error) {
	switch s {
	case "static", "":
		return ScenarioStatic, nil
	case "human":
		return ScenarioHuman, nil
	case "pet":
		return ScenarioPet, nil
	case "vibration":
		return ScenarioVibration, nil
	default:
		return ScenarioStatic, fmt.Errorf("unknown fake scenario %q", s)
	}
}

// FakeBackend is the deterministic, seeded backend described in
// original_source/src/audio/fake_audio_backend.cpp. It never touches real
// hardware; enumerate_devices reports a single synthetic loopback device.
type FakeBackend struct {
	Scenario FakeScenario
	Seed     int64
}

func NewFakeBackend(scenario FakeScenario, seed int64) *FakeBackend {
	return &FakeBackend{Scenario: scenario, Seed: seed}
}

func (b *FakeBackend) EnumerateDevices() ([]DeviceInfo, error) {
	return []DeviceInfo{{ID: 0, Name: "Fake Loopback Device", MaxInputChannels: 1, MaxOutputChannels: 1, DefaultSampleRate: 48000}}, nil
}

const twoPi = 2 * math.Pi

func (b *FakeBackend) RunSession(cfg core.Config, pipeline *core.Pipeline, shouldStop func() bool) error {
	return b.RunSessionWithCallback(cfg, pipeline, shouldStop, nil)
}

// RunSessionWithCallback is RunSession plus an optional afterBuffer hook
// invoked once per buffer after Process returns — the seam the "analyze"
// command uses to record a Record per buffer instead of only the session's
// final metrics snapshot.
func (b *FakeBackend) RunSessionWithCallback(cfg core.Config, pipeline *core.Pipeline, shouldStop func() bool, afterBuffer func()) error {
	if err := pipeline.BeginSession(cfg); err != nil {
		return err
	}

	runSeconds := cfg.Audio.DurationSeconds
	if runSeconds <= 0 {
		runSeconds = 60
	}
	totalFrames := uint64(cfg.Audio.SampleRateHz * runSeconds)

	framesPerBuffer := int(cfg.Audio.FramesPerBuffer)
	input := make([]float64, framesPerBuffer)
	output := make([]float64, framesPerBuffer)

	rng := rand.New(rand.NewSource(b.Seed))
	phase := 0.0

	var offset uint64
	for offset < totalFrames && (shouldStop == nil || !shouldStop()) {
		frames := framesPerBuffer
		if remaining := totalFrames - offset; remaining < uint64(frames) {
			frames = int(remaining)
		}

		for i := 0; i < frames; i++ {
			t := float64(offset+uint64(i)) / cfg.Audio.SampleRateHz
			amp := 0.25
			extra := 0.0

			switch b.Scenario {
			case ScenarioHuman:
				amp = 0.24
				gate := 0.0
				if t > 0.80*runSeconds && t < 0.98*runSeconds {
					gate = 1.0
				}
				extra = gate * 0.45 * math.Sin(twoPi*(cfg.Audio.F0Hz+120)*t)
			case ScenarioPet:
				amp = 0.08 + 0.02*math.Sin(twoPi*7*t)
				jitter := rng.Float64()*2 - 1
				extra = 0.04 * math.Sin(twoPi*(cfg.Audio.F0Hz+25+jitter)*t)
			case ScenarioVibration:
				amp = 0.28 * (1 + 0.35*math.Sin(twoPi*8*t))
			}

			phase += twoPi * cfg.Audio.F0Hz / cfg.Audio.SampleRateHz
			if phase >= twoPi {
				phase -= twoPi
			}
			noise := (rng.Float64()*2 - 1) * 0.01
			input[i] = amp*math.Sin(phase) + extra + noise
		}

		pipeline.Process(input[:frames], output[:frames], offset)
		if afterBuffer != nil {
			afterBuffer()
		}
		offset += uint64(frames)
	}

	return nil
}
