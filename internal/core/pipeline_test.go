package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	scenarioFs = 48000.0
	scenarioF0 = 19000.0
)

func scenarioConfig(durationSeconds float64, calibrationEnabled bool) Config {
	cfg := DefaultConfig()
	cfg.Audio.SampleRateHz = scenarioFs
	cfg.Audio.F0Hz = scenarioF0
	cfg.Audio.DurationSeconds = durationSeconds
	cfg.Audio.FramesPerBuffer = 256
	cfg.Calibration.Enabled = calibrationEnabled
	return cfg
}

// runScenario feeds genSample(absoluteFrame) through the pipeline one
// buffer at a time and returns the final metrics snapshot plus every event
// observed along the way.
func runScenario(t *testing.T, cfg Config, totalFrames uint64, genSample func(n uint64) float64) ([]MotionEvent, RuntimeMetrics) {
	t.Helper()
	p := NewPipeline(nil)
	assert.NoError(t, p.BeginSession(cfg))

	buf := int(cfg.Audio.FramesPerBuffer)
	var events []MotionEvent
	for offset := uint64(0); offset < totalFrames; offset += uint64(buf) {
		n := buf
		if remaining := totalFrames - offset; remaining < uint64(buf) {
			n = int(remaining)
		}
		input := make([]float64, n)
		output := make([]float64, n)
		for i := 0; i < n; i++ {
			input[i] = genSample(offset + uint64(i))
		}
		p.Process(input, output, offset)
		events = append(events, p.Metrics().LatestEvent)
	}
	return events, p.Metrics()
}

func uniformNoise(rng *rand.Rand, amp float64) float64 {
	return (rng.Float64()*2 - 1) * amp
}

// Scenario 1 (spec.md §8): static room. No triggers; small Doppler energy.
func TestScenarioStaticRoom(t *testing.T) {
	cfg := scenarioConfig(2.0, false)
	total := uint64(cfg.Audio.DurationSeconds * cfg.Audio.SampleRateHz)
	rng := rand.New(rand.NewSource(7))

	_, metrics := runScenario(t, cfg, total, func(n uint64) float64 {
		tone := 0.25 * math.Sin(twoPi*scenarioF0*float64(n)/scenarioFs)
		return tone + uniformNoise(rng, 0.01)
	})

	assert.EqualValues(t, 0, metrics.TriggeredCount)
	assert.Less(t, metrics.LatestFeatures.DopplerBandEnergy, 0.02)
}

// Scenario 2 (spec.md §8): human-scale motion. At least one Triggered
// transition followed by a Cooldown.
func TestScenarioHumanMotion(t *testing.T) {
	cfg := scenarioConfig(2.0, false)
	total := uint64(cfg.Audio.DurationSeconds * cfg.Audio.SampleRateHz)
	rng := rand.New(rand.NewSource(7))

	onStart := 0.80 * float64(total) / scenarioFs
	onEnd := 0.98 * float64(total) / scenarioFs

	events, _ := runScenario(t, cfg, total, func(n uint64) float64 {
		tSec := float64(n) / scenarioFs
		sample := 0.25*math.Sin(twoPi*scenarioF0*float64(n)/scenarioFs) + uniformNoise(rng, 0.01)
		if tSec >= onStart && tSec <= onEnd {
			sample += 0.45 * math.Sin(twoPi*(scenarioF0+120)*float64(n)/scenarioFs)
		}
		return sample
	})

	sawTriggered, sawCooldownAfter := false, false
	for _, e := range events {
		if e.DetectionState == StateTriggered {
			sawTriggered = true
		}
		if sawTriggered && e.DetectionState == StateCooldown {
			sawCooldownAfter = true
		}
	}
	assert.True(t, sawTriggered, "expected at least one Triggered transition")
	assert.True(t, sawCooldownAfter, "expected Cooldown to follow Triggered")
}

// Scenario 3 (spec.md §8): pet-scale motion. Never triggers.
func TestScenarioPetMotion(t *testing.T) {
	cfg := scenarioConfig(2.0, false)
	total := uint64(cfg.Audio.DurationSeconds * cfg.Audio.SampleRateHz)
	rng := rand.New(rand.NewSource(7))

	_, metrics := runScenario(t, cfg, total, func(n uint64) float64 {
		tSec := float64(n) / scenarioFs
		jitter := 1 + 0.3*math.Sin(twoPi*0.5*tSec)
		sample := 0.25*math.Sin(twoPi*scenarioF0*float64(n)/scenarioFs) + uniformNoise(rng, 0.01)
		sample += 0.04 * jitter * math.Sin(twoPi*(scenarioF0+25)*float64(n)/scenarioFs)
		return sample
	})

	assert.EqualValues(t, 0, metrics.TriggeredCount)
}

// Scenario 4 (spec.md §8): calibration convergence under mild noise.
func TestScenarioCalibrationConvergence(t *testing.T) {
	cfg := scenarioConfig(0, true)
	cfg.Calibration.WarmupSeconds = 0.2
	cfg.Calibration.CalibrateSeconds = 0.4
	// 100 buffers of 512 frames span ~1.07 s: enough for warmup+calibrate
	// (0.6 s) and for the 64 calibration samples collected after warmup.
	cfg.Audio.FramesPerBuffer = 512

	p := NewPipeline(nil)
	assert.NoError(t, p.BeginSession(cfg))

	rng := rand.New(rand.NewSource(7))
	buf := int(cfg.Audio.FramesPerBuffer)
	for i := 0; i < 100; i++ {
		input := make([]float64, buf)
		output := make([]float64, buf)
		for j := range input {
			input[j] = 0.02 + (rng.Float64()-0.5)*0.001
		}
		p.Process(input, output, uint64(i*buf))
	}

	ev := p.Metrics().LatestEvent
	assert.Equal(t, CalArmed, ev.CalibrationState)
	assert.GreaterOrEqual(t, p.cfg.Detection.TriggerThreshold, cfg.Calibration.MinThreshold)
	assert.LessOrEqual(t, p.cfg.Detection.TriggerThreshold, cfg.Calibration.MaxThreshold)
}

// Scenario 6 (spec.md §8): cooldown behaviour. High Doppler then silence;
// expect a Cooldown, and no further Triggered within the cooldown window.
func TestScenarioCooldownBehaviour(t *testing.T) {
	cfg := scenarioConfig(2.5, false)
	cfg.Detection.CooldownMs = 500
	total := uint64(cfg.Audio.DurationSeconds * cfg.Audio.SampleRateHz)
	rng := rand.New(rand.NewSource(7))

	highUntil := 0.8

	events, _ := runScenario(t, cfg, total, func(n uint64) float64 {
		tSec := float64(n) / scenarioFs
		sample := 0.25*math.Sin(twoPi*scenarioF0*float64(n)/scenarioFs) + uniformNoise(rng, 0.01)
		if tSec < highUntil {
			sample += 0.45 * math.Sin(twoPi*(scenarioF0+120)*float64(n)/scenarioFs)
		}
		return sample
	})

	var cooldownAt = -1.0
	sawTriggered := false
	for _, e := range events {
		if e.DetectionState == StateTriggered {
			sawTriggered = true
		}
		if e.DetectionState == StateCooldown && cooldownAt < 0 {
			cooldownAt = e.TimestampSec
		}
	}
	assert.True(t, sawTriggered)
	assert.GreaterOrEqual(t, cooldownAt, 0.0)

	for _, e := range events {
		if cooldownAt >= 0 && e.TimestampSec > cooldownAt && e.TimestampSec < cooldownAt+float64(cfg.Detection.CooldownMs)/1000.0 {
			assert.NotEqual(t, StateTriggered, e.DetectionState)
		}
	}
}

func TestProcessNoOpOnMismatchedLengths(t *testing.T) {
	p := NewPipeline(nil)
	assert.NoError(t, p.BeginSession(scenarioConfig(1, false)))
	before := p.Metrics()
	p.Process(make([]float64, 10), make([]float64, 5), 0)
	assert.Equal(t, before, p.Metrics())
}
