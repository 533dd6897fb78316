package core

import "math"

// detectionStateMachine implements the four-state automaton of spec.md
// §4.7: Idle -> Observing -> Triggered -> Cooldown, with debounce and
// hysteresis. Triggered always transitions to Cooldown on the following
// update, so it is never observed across two consecutive events.
type detectionStateMachine struct {
	cfg             DetectionSection
	state           DetectionState
	observeSinceSec float64
	cooldownUntil   float64
}

func newDetectionStateMachine(cfg DetectionSection) *detectionStateMachine {
	return &detectionStateMachine{cfg: cfg, observeSinceSec: -1}
}

func (m *detectionStateMachine) setConfig(cfg DetectionSection) {
	m.cfg = cfg
}

func (m *detectionStateMachine) prevState() DetectionState {
	return m.state
}

func (m *detectionStateMachine) update(score, confidence, timestampSec float64, calState CalibrationState) MotionEvent {
	if calState != CalArmed {
		m.state = StateIdle
		return MotionEvent{m.state, calState, score, confidence, timestampSec}
	}

	if m.state == StateCooldown && timestampSec >= m.cooldownUntil {
		m.state = StateIdle
	}

	switch m.state {
	case StateIdle:
		if score >= m.cfg.ReleaseThreshold {
			m.state = StateObserving
			m.observeSinceSec = timestampSec
		}
	case StateObserving:
		if score < m.cfg.ReleaseThreshold {
			m.state = StateIdle
			m.observeSinceSec = -1
		} else if score >= m.cfg.TriggerThreshold &&
			(timestampSec-m.observeSinceSec)*1000.0 >= float64(m.cfg.DebounceMs) {
			m.state = StateTriggered
		}
	case StateTriggered:
		m.state = StateCooldown
		m.cooldownUntil = timestampSec + float64(m.cfg.CooldownMs)/1000.0
	}

	return MotionEvent{m.state, calState, score, confidence, timestampSec}
}

// motionDetector pairs a pluggable MotionScorer with the FSM above,
// per spec.md §9's polymorphic-seam design note.
type motionDetector struct {
	scorer MotionScorer
	fsm    *detectionStateMachine
}

func newMotionDetector(cfg DetectionSection, scorer MotionScorer) *motionDetector {
	if scorer == nil {
		scorer = DefaultMotionScorer{}
	}
	return &motionDetector{scorer: scorer, fsm: newDetectionStateMachine(cfg)}
}

func (d *motionDetector) evaluate(features MotionFeatures, timestampSec float64, calState CalibrationState) MotionEvent {
	score := d.scorer.Score(features)
	confidence := math.Max(0, math.Min(1, score))
	return d.fsm.update(score, confidence, timestampSec, calState)
}

func (d *motionDetector) setDetectionConfig(cfg DetectionSection) {
	d.fsm.setConfig(cfg)
}
