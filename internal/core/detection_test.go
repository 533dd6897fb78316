package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseDetectionConfig() DetectionSection {
	return DetectionSection{
		TriggerThreshold: 0.6, ReleaseThreshold: 0.4,
		DebounceMs: 100, CooldownMs: 500,
	}
}

func TestDetectionForcesIdleOutsideArmed(t *testing.T) {
	fsm := newDetectionStateMachine(baseDetectionConfig())
	ev := fsm.update(0.99, 0.99, 1.0, CalCalibrating)
	assert.Equal(t, StateIdle, ev.DetectionState)
}

func TestDetectionDebounceAndTriggeredIsSingleBuffer(t *testing.T) {
	fsm := newDetectionStateMachine(baseDetectionConfig())

	ev := fsm.update(0.5, 0.5, 0.0, CalArmed) // >= release -> Observing
	assert.Equal(t, StateObserving, ev.DetectionState)

	// Below debounce window: trigger-worthy score too early must not fire.
	ev = fsm.update(0.9, 0.9, 0.05, CalArmed)
	assert.Equal(t, StateObserving, ev.DetectionState)

	// After debounce has elapsed, should trigger.
	ev = fsm.update(0.9, 0.9, 0.2, CalArmed)
	assert.Equal(t, StateTriggered, ev.DetectionState)

	// Triggered lasts exactly one buffer: next call moves straight to Cooldown.
	ev = fsm.update(0.9, 0.9, 0.2001, CalArmed)
	assert.Equal(t, StateCooldown, ev.DetectionState)
}

func TestDetectionCooldownReturnsToIdleOnlyAfterDeadline(t *testing.T) {
	cfg := baseDetectionConfig()
	fsm := newDetectionStateMachine(cfg)
	fsm.state = StateCooldown
	fsm.cooldownUntil = 5.0

	ev := fsm.update(0.0, 0.0, 4.9, CalArmed)
	assert.Equal(t, StateCooldown, ev.DetectionState)

	ev = fsm.update(0.0, 0.0, 5.0, CalArmed)
	assert.Equal(t, StateIdle, ev.DetectionState)
}

func TestDetectionReleaseDropsObservingBackToIdle(t *testing.T) {
	fsm := newDetectionStateMachine(baseDetectionConfig())
	fsm.update(0.5, 0.5, 0.0, CalArmed)
	ev := fsm.update(0.1, 0.1, 0.01, CalArmed)
	assert.Equal(t, StateIdle, ev.DetectionState)
}
