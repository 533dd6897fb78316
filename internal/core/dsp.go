package core

import "math"

const twoPi = 2 * math.Pi

// nco is a quadrature numerically-controlled oscillator. Each call to next
// returns (cos phi, sin phi) for the current phase, then advances phi by
// 2*pi*frequency/sampleRate, wrapped to [0, 2*pi) to keep bounded precision.
type nco struct {
	sampleRateHz float64
	frequencyHz  float64
	phase        float64
}

func newNCO(sampleRateHz, frequencyHz float64) *nco {
	return &nco{sampleRateHz: sampleRateHz, frequencyHz: frequencyHz}
}

func (n *nco) next() (cos, sin float64) {
	cos = math.Cos(n.phase)
	sin = math.Sin(n.phase)
	n.phase += twoPi * n.frequencyHz / n.sampleRateHz
	if n.phase >= twoPi {
		n.phase -= twoPi
	}
	return cos, sin
}

// iirLowPass is a single-pole IIR low-pass filter. alpha = dt/(RC+dt) with
// RC = 1/(2*pi*fc), dt = 1/fs. State starts at zero.
type iirLowPass struct {
	alpha float64
	y     float64
}

func newIIRLowPass(sampleRateHz, cutoffHz float64) *iirLowPass {
	rc := 1.0 / (twoPi * cutoffHz)
	dt := 1.0 / sampleRateHz
	return &iirLowPass{alpha: dt / (rc + dt)}
}

func (f *iirLowPass) process(x float64) float64 {
	f.y += f.alpha * (x - f.y)
	return f.y
}

// phaseTracker unwraps the wrapped atan2(q, i) phase into a continuous
// accumulator. The first call seeds the accumulator with the wrapped value
// and returns it unchanged.
type phaseTracker struct {
	lastWrapped float64
	unwrapped   float64
	initialized bool
}

func (p *phaseTracker) unwrap(i, q float64) float64 {
	wrapped := math.Atan2(q, i)
	if !p.initialized {
		p.initialized = true
		p.lastWrapped = wrapped
		p.unwrapped = wrapped
		return p.unwrapped
	}
	d := wrapped - p.lastWrapped
	if d > math.Pi {
		d -= twoPi
	}
	if d < -math.Pi {
		d += twoPi
	}
	p.unwrapped += d
	p.lastWrapped = wrapped
	return p.unwrapped
}
