package core

// Validate rejects a config before begin_session so the core never has to
// handle a degenerate sample rate or buffer size mid-stream (spec.md §4.10,
// §7). It is the only place invalid-argument errors originate.
func (c Config) Validate() error {
	if c.Audio.SampleRateHz <= 0 {
		return newConfigError("audio.sample_rate_hz", "must be positive")
	}
	if c.Audio.FramesPerBuffer == 0 {
		return newConfigError("audio.frames_per_buffer", "must be non-zero")
	}
	if c.Audio.F0Hz <= 0 {
		return newConfigError("audio.f0_hz", "must be positive")
	}
	if c.DSP.LPCutoffHz <= 0 {
		return newConfigError("dsp.lp_cutoff_hz", "must be positive")
	}
	if c.DSP.DopplerBandLowHz <= 0 || c.DSP.DopplerBandHighHz <= c.DSP.DopplerBandLowHz {
		return newConfigError("dsp.doppler_band_low_hz/high_hz", "band must satisfy 0 < low < high")
	}
	if c.Calibration.MinThreshold <= 0 || c.Calibration.MaxThreshold <= c.Calibration.MinThreshold {
		return newConfigError("calibration.min_threshold/max_threshold", "must satisfy 0 < min < max")
	}
	if c.Detection.ReleaseThreshold >= c.Detection.TriggerThreshold {
		return newConfigError("detection.release_threshold", "must be less than trigger_threshold")
	}
	return nil
}
