package core

import "math"

// featureExtractor implements the coherent-demodulation front end of
// spec.md §4.3: downmix to baseband I/Q, then two cascaded low-passes
// giving a wideband baseband envelope and a narrow Doppler-band envelope,
// plus phase velocity and SNR. All filter state persists across buffers;
// only the per-buffer sums reset on each call to extract.
type featureExtractor struct {
	sampleRateHz float64

	osc *nco

	iLP, qLP         *iirLowPass // cutoff = lp_cutoff_hz
	iBandDC, qBandDC *iirLowPass // DC-removal stage, cutoff = doppler_band_low_hz
	iBandSmooth      *iirLowPass // smoothing stage, cutoff = doppler_band_high_hz
	qBandSmooth      *iirLowPass

	phase   phaseTracker
	havePhi bool
	lastPhi float64

	phaseVelocityEMA float64
	signalEMA        float64
	noiseEMA         float64

	havePrevSample bool
	prevSample     float64
}

func newFeatureExtractor(cfg Config) *featureExtractor {
	fs := cfg.Audio.SampleRateHz
	return &featureExtractor{
		sampleRateHz: fs,
		osc:          newNCO(fs, cfg.Audio.F0Hz),
		iLP:          newIIRLowPass(fs, cfg.DSP.LPCutoffHz),
		qLP:          newIIRLowPass(fs, cfg.DSP.LPCutoffHz),
		iBandDC:      newIIRLowPass(fs, cfg.DSP.DopplerBandLowHz),
		qBandDC:      newIIRLowPass(fs, cfg.DSP.DopplerBandLowHz),
		iBandSmooth:  newIIRLowPass(fs, cfg.DSP.DopplerBandHighHz),
		qBandSmooth:  newIIRLowPass(fs, cfg.DSP.DopplerBandHighHz),
	}
}

// bufferStats are the raw-sample statistics used only for RuntimeMetrics,
// not part of MotionFeatures.
type bufferStats struct {
	peak     float64
	rms      float64
	dcOffset float64
}

func (e *featureExtractor) extract(input []float64) (MotionFeatures, bufferStats) {
	var sum, sumSq, peak float64
	var bbSumSq, dopplerSumSq, pvSum float64

	for _, x := range input {
		mag := math.Abs(x)
		if mag > peak {
			peak = mag
		}
		sumSq += x * x
		sum += x

		c, s := e.osc.next()
		iRaw := x * c
		qRaw := -x * s
		i := e.iLP.process(iRaw)
		q := e.qLP.process(qRaw)

		m := math.Sqrt(i*i + q*q)
		bbSumSq += m * m

		iHighPass := i - e.iBandDC.process(i)
		qHighPass := q - e.qBandDC.process(q)
		iBand := e.iBandSmooth.process(iHighPass)
		qBand := e.qBandSmooth.process(qHighPass)
		bandMag := math.Sqrt(iBand*iBand + qBand*qBand)

		if !e.havePrevSample {
			e.havePrevSample = true
			e.prevSample = x
		}
		edge := math.Abs(x - e.prevSample)
		e.prevSample = x

		combined := bandMag + 0.05*edge
		dopplerSumSq += combined * combined

		phi := e.phase.unwrap(i, q)
		if e.havePhi {
			v := (phi - e.lastPhi) * e.sampleRateHz
			e.phaseVelocityEMA = 0.95*e.phaseVelocityEMA + 0.05*v
		} else {
			e.havePhi = true
		}
		e.lastPhi = phi
		pvSum += math.Abs(e.phaseVelocityEMA)

		e.signalEMA = 0.995*e.signalEMA + 0.005*m
		if bandMag < 0.01 {
			e.noiseEMA = 0.995*e.noiseEMA + 0.005*m
		}
	}

	var features MotionFeatures
	var stats bufferStats
	n := len(input)
	if n > 0 {
		nf := float64(n)
		features.BasebandEnergy = math.Sqrt(bbSumSq / nf)
		features.DopplerBandEnergy = math.Sqrt(dopplerSumSq / nf)
		stats.peak = peak
		stats.rms = math.Sqrt(sumSq / nf)
		stats.dcOffset = sum / nf
	}
	if n > 1 {
		features.PhaseVelocity = pvSum / float64(n)
	}
	features.SNREstimateDB = 20 * math.Log10((e.signalEMA+1e-6)/(e.noiseEMA+1e-6))

	return features, stats
}
