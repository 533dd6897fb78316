// Package core implements the real-time DSP, motion-detection, calibration
// and action-safety pipeline described in SPEC_FULL.md. It is driven one
// buffer at a time by a host loop; it never blocks, allocates on the
// steady-state path, or spawns goroutines.
package core

import "fmt"

// AudioSection holds the fields that describe the audio stream itself.
type AudioSection struct {
	SampleRateHz     float64 `yaml:"sample_rate_hz"`
	FramesPerBuffer  uint    `yaml:"frames_per_buffer"`
	DurationSeconds  float64 `yaml:"duration_seconds"`
	F0Hz             float64 `yaml:"f0_hz"`
}

// DSPSection holds the filter constants shared by the feature extractor.
type DSPSection struct {
	LPCutoffHz          float64 `yaml:"lp_cutoff_hz"`
	DopplerBandLowHz    float64 `yaml:"doppler_band_low_hz"`
	DopplerBandHighHz   float64 `yaml:"doppler_band_high_hz"`
	BaselineAlpha       float64 `yaml:"baseline_alpha"`
	BaselineMotionAlpha float64 `yaml:"baseline_motion_alpha"`
}

// CalibrationSection configures the auto-tuner in internal/core/calibration.go.
type CalibrationSection struct {
	Enabled          bool    `yaml:"enabled"`
	WarmupSeconds    float64 `yaml:"warmup_seconds"`
	CalibrateSeconds float64 `yaml:"calibrate_seconds"`
	TriggerK         float64 `yaml:"trigger_k"`
	ReleaseK         float64 `yaml:"release_k"`
	MinThreshold     float64 `yaml:"min_threshold"`
	MaxThreshold     float64 `yaml:"max_threshold"`
}

// DetectionSection configures the detection FSM and the action safety gate.
// Calibration rewrites TriggerThreshold/ReleaseThreshold in place once armed.
type DetectionSection struct {
	TriggerThreshold  float64 `yaml:"trigger_threshold"`
	ReleaseThreshold  float64 `yaml:"release_threshold"`
	DebounceMs        uint32  `yaml:"debounce_ms"`
	CooldownMs        uint32  `yaml:"cooldown_ms"`
	ArmingDelayMs     uint32  `yaml:"arming_delay_ms"`
	LockCooldownMs    uint32  `yaml:"lock_cooldown_ms"`
	MaxLocksPerMinute uint32  `yaml:"max_locks_per_minute"`
}

// ActionMode selects what the action policy maps a Triggered event to.
type ActionMode int

const (
	ModeSoft ActionMode = iota
	ModeLock
	ModeNotify
)

func (m ActionMode) String() string {
	switch m {
	case ModeLock:
		return "lock"
	case ModeNotify:
		return "notify"
	default:
		return "soft"
	}
}

// ParseActionMode accepts the lowercase names used on the command line and
// in config files.
func ParseActionMode(s string) (ActionMode, error) {
	switch s {
	case "soft", "":
		return ModeSoft, nil
	case "lock":
		return ModeLock, nil
	case "notify":
		return ModeNotify, nil
	default:
		return ModeSoft, fmt.Errorf("unknown action mode %q", s)
	}
}

// ActionsSection configures the action policy.
type ActionsSection struct {
	Mode          ActionMode `yaml:"-"`
	ModeName      string     `yaml:"mode"`
	ManualDisable bool       `yaml:"manual_disable"`
}

// Config is the immutable-for-a-session snapshot consumed by begin_session.
// Calibration rewrites Detection.TriggerThreshold/ReleaseThreshold in place;
// every other field is fixed for the lifetime of the session.
type Config struct {
	Audio       AudioSection       `yaml:"audio"`
	DSP         DSPSection         `yaml:"dsp"`
	Calibration CalibrationSection `yaml:"calibration"`
	Detection   DetectionSection   `yaml:"detection"`
	Actions     ActionsSection     `yaml:"actions"`
}

// DefaultConfig returns the field defaults enumerated in SPEC_FULL.md §3.
func DefaultConfig() Config {
	return Config{
		Audio: AudioSection{
			SampleRateHz:    48000,
			FramesPerBuffer: 256,
			DurationSeconds: 0,
			F0Hz:            19000,
		},
		DSP: DSPSection{
			LPCutoffHz:          500,
			DopplerBandLowHz:    20,
			DopplerBandHighHz:   200,
			BaselineAlpha:       0.004,
			BaselineMotionAlpha: 0.0004,
		},
		Calibration: CalibrationSection{
			Enabled:          true,
			WarmupSeconds:    2.0,
			CalibrateSeconds: 6.0,
			TriggerK:         6.0,
			ReleaseK:         4.0,
			MinThreshold:     0.20,
			MaxThreshold:     0.95,
		},
		Detection: DetectionSection{
			TriggerThreshold:  0.52,
			ReleaseThreshold:  0.38,
			DebounceMs:        300,
			CooldownMs:        3000,
			ArmingDelayMs:     2000,
			LockCooldownMs:    30000,
			MaxLocksPerMinute: 2,
		},
		Actions: ActionsSection{
			Mode:     ModeSoft,
			ModeName: "soft",
		},
	}
}

// MotionFeatures is produced once per buffer by the feature extractor and
// the baseline tracker. BaselineEnergy and RelativeMotion are filled in by
// the baseline tracker after the extractor runs.
type MotionFeatures struct {
	BasebandEnergy    float64
	DopplerBandEnergy float64
	PhaseVelocity     float64
	SNREstimateDB     float64
	BaselineEnergy    float64
	RelativeMotion    float64
}

// DetectionState is the detection FSM's state, per spec.md §4.7.
type DetectionState int

const (
	StateIdle DetectionState = iota
	StateObserving
	StateTriggered
	StateCooldown
)

func (s DetectionState) String() string {
	switch s {
	case StateObserving:
		return "observing"
	case StateTriggered:
		return "triggered"
	case StateCooldown:
		return "cooldown"
	default:
		return "idle"
	}
}

// CalibrationState is the calibration controller's state, per spec.md §4.6.
// It only ever moves forward within a session.
type CalibrationState int

const (
	CalInit CalibrationState = iota
	CalWarmup
	CalCalibrating
	CalArmed
)

func (s CalibrationState) String() string {
	switch s {
	case CalWarmup:
		return "warmup"
	case CalCalibrating:
		return "calibrating"
	case CalArmed:
		return "armed"
	default:
		return "init"
	}
}

// MotionEvent is emitted once per buffer by the detection FSM.
type MotionEvent struct {
	DetectionState   DetectionState
	CalibrationState CalibrationState
	Score            float64
	Confidence       float64
	TimestampSec     float64
}

// ActionType is what the action policy asks the executor to do.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionBeep
	ActionLockScreen
	ActionNotify
)

func (a ActionType) String() string {
	switch a {
	case ActionBeep:
		return "beep"
	case ActionLockScreen:
		return "lock_screen"
	case ActionNotify:
		return "notify"
	default:
		return "none"
	}
}

// ActionRequest is derived from a MotionEvent, possibly suppressed to
// ActionNone by the safety gate.
type ActionRequest struct {
	Type         ActionType
	TimestampSec float64
	Reason       string
}

// RuntimeMetrics is a value type: every metrics() read returns a copy
// consistent with the most recently completed buffer.
type RuntimeMetrics struct {
	SampleRateHz     float64
	FramesProcessed  uint64
	PeakLevel        float64
	RMSLevel         float64
	DCOffset         float64
	LatestFeatures   MotionFeatures
	LatestEvent      MotionEvent
	LatestAction     ActionRequest
	TriggeredCount   uint64
}
