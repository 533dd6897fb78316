package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalibrationConvergesAndOrdersThresholds(t *testing.T) {
	cal := CalibrationSection{
		Enabled: true, WarmupSeconds: 0.2, CalibrateSeconds: 0.4,
		TriggerK: 6, ReleaseK: 4, MinThreshold: 0.20, MaxThreshold: 0.95,
	}
	det := DetectionSection{TriggerThreshold: 0.52, ReleaseThreshold: 0.38}

	ctrl := newCalibrationController(cal, det)
	rng := rand.New(rand.NewSource(7))

	const bufferSeconds = 256.0 / 48000.0
	for i := 0; i < 100; i++ {
		t := float64(i+1) * bufferSeconds * 30 // spread buffers out so warmup+calibrate elapse within 100 calls
		rel := 0.02 + (rng.Float64()-0.5)*0.002
		ctrl.update(t, rel, &det)
	}

	assert.Equal(t, CalArmed, ctrl.state)
	assert.GreaterOrEqual(t, det.TriggerThreshold, cal.MinThreshold)
	assert.LessOrEqual(t, det.TriggerThreshold, cal.MaxThreshold)
	assert.Less(t, det.ReleaseThreshold, det.TriggerThreshold)
}

func TestCalibrationDisabledJumpsStraightToArmed(t *testing.T) {
	cal := CalibrationSection{Enabled: false}
	det := DetectionSection{TriggerThreshold: 0.52, ReleaseThreshold: 0.38}
	ctrl := newCalibrationController(cal, det)

	ctrl.update(0, 0, &det)
	assert.Equal(t, CalArmed, ctrl.state)
}

func TestCalibrationNeverRegresses(t *testing.T) {
	cal := CalibrationSection{
		Enabled: true, WarmupSeconds: 0.1, CalibrateSeconds: 0.1,
		TriggerK: 6, ReleaseK: 4, MinThreshold: 0.2, MaxThreshold: 0.95,
	}
	det := DetectionSection{TriggerThreshold: 0.52, ReleaseThreshold: 0.38}
	ctrl := newCalibrationController(cal, det)

	var prevStates []CalibrationState
	for i := 0; i < 200; i++ {
		tSec := float64(i) * 0.01
		ctrl.update(tSec, 0.02, &det)
		prevStates = append(prevStates, ctrl.state)
	}
	for i := 1; i < len(prevStates); i++ {
		assert.GreaterOrEqual(t, int(prevStates[i]), int(prevStates[i-1]))
	}
}
