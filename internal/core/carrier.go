package core

import "math"

// carrierGenerator produces the outbound tone, with a linear fade-in at
// session start and fade-out at session end (spec.md §4.1). Unbounded
// sessions (totalFrames == 0) never fade out.
type carrierGenerator struct {
	sampleRateHz float64
	frequencyHz  float64
	phase        float64
	fadeSamples  uint64
}

func newCarrierGenerator(sampleRateHz, frequencyHz float64) *carrierGenerator {
	return &carrierGenerator{
		sampleRateHz: sampleRateHz,
		frequencyHz:  frequencyHz,
		fadeSamples:  uint64(math.Round(0.020 * sampleRateHz)),
	}
}

// generate fills out[0:len(out)] with the carrier for absolute frames
// [frameOffset, frameOffset+len(out)). totalFrames == 0 means unbounded;
// no end fade is ever applied in that case.
func (g *carrierGenerator) generate(out []float64, totalFrames, frameOffset uint64) {
	phaseInc := twoPi * g.frequencyHz / g.sampleRateHz
	for i := range out {
		absoluteFrame := frameOffset + uint64(i)
		env := 1.0
		if g.fadeSamples > 0 {
			if absoluteFrame < g.fadeSamples {
				env = float64(absoluteFrame) / float64(g.fadeSamples)
			}
			if totalFrames > 0 {
				var remaining uint64
				if totalFrames > absoluteFrame {
					remaining = totalFrames - absoluteFrame
				}
				if remaining < g.fadeSamples {
					env = math.Min(env, float64(remaining)/float64(g.fadeSamples))
				}
			}
		}

		out[i] = math.Sin(g.phase) * env
		g.phase += phaseInc
		if g.phase >= twoPi {
			g.phase -= twoPi
		}
	}
}
