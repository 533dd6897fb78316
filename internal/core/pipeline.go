package core

// Pipeline is the strictly sequential per-buffer core described in
// SPEC_FULL.md §2: it owns every stateful filter, the calibration
// controller, the detector, the safety gate and the event journal. The host
// constructs one from an immutable config snapshot via BeginSession and
// calls Process once per buffer, in strict frame-offset order with no
// overlap (spec.md §5).
type Pipeline struct {
	cfg         Config
	totalFrames uint64

	carrier     *carrierGenerator
	extractor   *featureExtractor
	baseline    *baselineTracker
	calibration *calibrationController
	detector    *motionDetector
	policy      ActionPolicy
	gate        *actionSafetyGate
	journal     *eventJournal

	scratch []float64

	metrics RuntimeMetrics

	// scorer is carried across BeginSession calls so a test-injected fake
	// survives re-use of the same Pipeline value across sessions.
	scorer MotionScorer
}

// NewPipeline constructs a pipeline. scorer may be nil to use
// DefaultMotionScorer; supplying a fake is the seam spec.md §9 describes for
// testing the detector independently of the weighted-combination formula.
func NewPipeline(scorer MotionScorer) *Pipeline {
	return &Pipeline{
		policy: DefaultActionPolicy{},
		scorer: scorer,
	}
}

// BeginSession resets all state from cfg. It is the only place a
// Configuration error (spec.md §7) can be raised.
func (p *Pipeline) BeginSession(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	p.cfg = cfg
	p.totalFrames = 0
	if cfg.Audio.DurationSeconds > 0 {
		p.totalFrames = uint64(cfg.Audio.DurationSeconds * cfg.Audio.SampleRateHz)
	}

	p.carrier = newCarrierGenerator(cfg.Audio.SampleRateHz, cfg.Audio.F0Hz)
	p.extractor = newFeatureExtractor(cfg)
	p.baseline = newBaselineTracker(cfg.DSP)
	p.calibration = newCalibrationController(cfg.Calibration, cfg.Detection)
	p.detector = newMotionDetector(cfg.Detection, p.scorer)
	p.gate = newActionSafetyGate(cfg.Detection)
	p.journal = newEventJournal(defaultJournalCapacity)
	p.scratch = make([]float64, cfg.Audio.FramesPerBuffer)

	p.metrics = RuntimeMetrics{SampleRateHz: cfg.Audio.SampleRateHz}
	return nil
}

// Process fills output with the outbound carrier and derives one buffer's
// worth of motion features, event and (possibly gated) action request from
// input. Preconditions: len(input) == len(output). If violated, Process is
// a no-op — the same defensive behaviour as the reference implementation.
func (p *Pipeline) Process(input, output []float64, frameOffset uint64) {
	if len(input) != len(output) || p.carrier == nil {
		return
	}

	if len(p.scratch) != len(output) {
		p.scratch = make([]float64, len(output))
	}
	p.carrier.generate(p.scratch, p.totalFrames, frameOffset)
	copy(output, p.scratch)

	features, stats := p.extractor.extract(input)

	timestampSec := float64(frameOffset+uint64(len(input))) / p.cfg.Audio.SampleRateHz

	prevDetectionState := p.detector.fsm.prevState()
	baselineEnergy, relativeMotion := p.baseline.update(features.DopplerBandEnergy, prevDetectionState)
	features.BaselineEnergy = baselineEnergy
	features.RelativeMotion = relativeMotion

	p.calibration.update(timestampSec, relativeMotion, &p.cfg.Detection)
	p.detector.setDetectionConfig(p.cfg.Detection)
	p.gate.setDetectionConfig(p.cfg.Detection)

	event := p.detector.evaluate(features, timestampSec, p.calibration.state)

	action := p.policy.Map(event, p.cfg.Actions.Mode)
	if !p.gate.allow(action, p.cfg.Actions.ManualDisable, timestampSec) {
		action = ActionRequest{Type: ActionNone, TimestampSec: timestampSec}
	}

	// Triggered lasts exactly one buffer (spec.md §9, open question (a)), so
	// counting every Triggered buffer and counting Idle->...->Triggered
	// transitions coincide; we do the former.
	if event.DetectionState == StateTriggered {
		p.metrics.TriggeredCount++
	}

	p.journal.push(event, relativeMotion, action)

	if stats.peak > p.metrics.PeakLevel {
		p.metrics.PeakLevel = stats.peak
	}
	p.metrics.RMSLevel = stats.rms
	p.metrics.DCOffset = stats.dcOffset
	p.metrics.FramesProcessed += uint64(len(input))
	p.metrics.LatestFeatures = features
	p.metrics.LatestEvent = event
	p.metrics.LatestAction = action
}

// Metrics returns a read-only snapshot consistent with the most recently
// completed buffer.
func (p *Pipeline) Metrics() RuntimeMetrics {
	return p.metrics
}

// DumpEvents returns the last n journal entries as a JSON array, in
// chronological order.
func (p *Pipeline) DumpEvents(n int) string {
	if p.journal == nil {
		return "[]"
	}
	return p.journal.dump(n)
}
