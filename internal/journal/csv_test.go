package journal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AutoCookies/sonarlock/internal/core"
)

func TestWriteCSVIncludesHeaderAndRows(t *testing.T) {
	records := []Record{
		{
			Event:    core.MotionEvent{TimestampSec: 1.5, DetectionState: core.StateTriggered, Score: 0.9, Confidence: 0.8},
			Features: core.MotionFeatures{RelativeMotion: 0.3, BaselineEnergy: 0.01, DopplerBandEnergy: 0.04, SNREstimateDB: 12.5},
		},
		{
			Event:    core.MotionEvent{TimestampSec: 1.6, DetectionState: core.StateCooldown},
			Features: core.MotionFeatures{},
		},
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteCSV(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "timestamp,state,score,confidence,relative_motion,baseline,doppler,snr", lines[0])
	assert.Contains(t, lines[1], "triggered")
	assert.Contains(t, lines[2], "cooldown")
}

func TestFilenameExpandsTimestampPattern(t *testing.T) {
	ts := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	name, err := Filename(DefaultFilenamePattern, ts)
	assert.NoError(t, err)
	assert.Equal(t, "sonarlock-analysis-20260102-150405.csv", name)
}

func TestFilenameRejectsInvalidPattern(t *testing.T) {
	_, err := Filename("%Q", time.Now())
	assert.Error(t, err)
}
