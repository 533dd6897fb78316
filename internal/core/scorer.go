package core

import "math"

// MotionScorer is the polymorphic seam of spec.md §9: any value offering
// Score is interchangeable, which lets tests inject a deterministic fake
// instead of the weighted combination below.
type MotionScorer interface {
	Score(f MotionFeatures) float64
}

// DefaultMotionScorer implements the weighted combination of spec.md §4.5.
type DefaultMotionScorer struct{}

func (DefaultMotionScorer) Score(f MotionFeatures) float64 {
	e := math.Min(1, f.RelativeMotion*120)
	ratio := math.Min(1, f.DopplerBandEnergy/(f.BasebandEnergy+1e-6))
	pv := math.Min(1, math.Abs(f.PhaseVelocity)/120)
	snr := math.Min(1, math.Max(0, f.SNREstimateDB)/24)
	return 0.70*e + 0.15*ratio + 0.10*pv + 0.05*snr
}
