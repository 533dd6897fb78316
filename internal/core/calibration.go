package core

import (
	"math"
	"sort"
)

// autoTuner collects relative_motion samples during the Calibrating window
// and derives trigger/release thresholds from their median + MAD, per
// spec.md §4.6. MAD-robust statistics tolerate occasional large spikes
// during calibration without inflating the thresholds.
type autoTuner struct {
	cfg     CalibrationSection
	samples []float64
}

func newAutoTuner(cfg CalibrationSection) *autoTuner {
	return &autoTuner{cfg: cfg}
}

func (t *autoTuner) reset() {
	t.samples = t.samples[:0]
}

func (t *autoTuner) addSample(relativeMotion float64) {
	t.samples = append(t.samples, relativeMotion)
}

func (t *autoTuner) ready(minSamples int) bool {
	return len(t.samples) >= minSamples
}

// apply computes median + MAD over the collected samples and writes the
// resulting trigger/release thresholds into det.
func (t *autoTuner) apply(det *DetectionSection) {
	if len(t.samples) == 0 {
		return
	}
	sorted := append([]float64(nil), t.samples...)
	sort.Float64s(sorted)
	median := sorted[len(sorted)/2]

	dev := make([]float64, len(sorted))
	for i, v := range sorted {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad := dev[len(dev)/2] + 1e-6

	trigger := clamp(median+t.cfg.TriggerK*mad, t.cfg.MinThreshold, t.cfg.MaxThreshold)
	release := clamp(median+t.cfg.ReleaseK*mad, t.cfg.MinThreshold*0.5, trigger*0.95)

	det.TriggerThreshold = trigger
	det.ReleaseThreshold = release
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// calibrationController drives CalibrationState through
// Init -> Warmup -> Calibrating -> Armed, rewriting the live detection
// config in place once it has enough samples. It never regresses within a
// session (spec.md §3, §9 open question (c)): re-calibration requires a new
// session.
type calibrationController struct {
	cfg        CalibrationSection
	defaultDet DetectionSection
	state      CalibrationState
	tuner      *autoTuner
}

func newCalibrationController(cal CalibrationSection, det DetectionSection) *calibrationController {
	return &calibrationController{cfg: cal, defaultDet: det, tuner: newAutoTuner(cal)}
}

const minCalibrationSamples = 64

// update advances the controller's state for the current buffer and, once
// Armed, rewrites det's thresholds.
func (c *calibrationController) update(timestampSec, relativeMotion float64, det *DetectionSection) {
	if !c.cfg.Enabled {
		c.state = CalArmed
		return
	}

	if c.state == CalInit {
		c.state = CalWarmup
	}
	if c.state == CalWarmup && timestampSec >= c.cfg.WarmupSeconds {
		c.state = CalCalibrating
	}
	if c.state == CalCalibrating {
		c.tuner.addSample(relativeMotion)
		if timestampSec >= c.cfg.WarmupSeconds+c.cfg.CalibrateSeconds && c.tuner.ready(minCalibrationSamples) {
			*det = c.defaultDet
			c.tuner.apply(det)
			c.state = CalArmed
		}
	}
}
