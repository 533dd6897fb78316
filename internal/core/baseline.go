package core

import "math"

// baselineTracker is the two-rate EMA of spec.md §4.4: a fast alpha while
// idle, and a slower "motion-frozen" alpha while the detector considers
// itself actively watching or triggered, so a sustained disturbance doesn't
// get absorbed into the baseline while it's happening.
type baselineTracker struct {
	alphaFast   float64
	alphaFrozen float64
	energy      float64
	seeded      bool
}

func newBaselineTracker(dsp DSPSection) *baselineTracker {
	return &baselineTracker{alphaFast: dsp.BaselineAlpha, alphaFrozen: dsp.BaselineMotionAlpha}
}

// update advances the baseline by one buffer's Doppler-band energy and
// returns the (monotone-smoothed) baseline and the relative motion. prevState
// is the detection FSM's state *before* this buffer's evaluation. The first
// update seeds the baseline with that buffer's energy, so the session's
// steady carrier is not read as motion while the average climbs from zero.
func (b *baselineTracker) update(dopplerBandEnergy float64, prevState DetectionState) (baselineEnergy, relativeMotion float64) {
	alpha := b.alphaFast
	if prevState == StateObserving || prevState == StateTriggered {
		alpha = b.alphaFrozen
	}
	if !b.seeded {
		b.seeded = true
		b.energy = dopplerBandEnergy
	}
	b.energy = (1-alpha)*b.energy + alpha*dopplerBandEnergy
	return b.energy, math.Max(0, dopplerBandEnergy-b.energy)
}
