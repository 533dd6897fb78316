// Package journal exports the "analyze" subcommand's per-buffer records
// (event plus features) as CSV for offline analysis — that subcommand's
// supplemented feature. Filename builds timestamped export names the way the teacher's beacon logic timestamps its own output
// (src/beacon.go formats "%H:%M:%S" via strftime), here through the Go
// ecosystem's strftime port rather than cgo.
package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/AutoCookies/sonarlock/internal/core"
)

var columns = []string{
	"timestamp", "state", "score", "confidence", "relative_motion", "baseline", "doppler", "snr",
}

// DefaultFilenamePattern mirrors the reference run's habit of stamping
// artefacts with the session start time.
const DefaultFilenamePattern = "sonarlock-analysis-%Y%m%d-%H%M%S.csv"

// Filename expands an strftime pattern against t, e.g. for naming an export
// file from the session's start time.
func Filename(pattern string, t time.Time) (string, error) {
	f, err := strftime.New(pattern)
	if err != nil {
		return "", fmt.Errorf("parsing filename pattern %q: %w", pattern, err)
	}
	return f.FormatString(t), nil
}

// Record is one analyzed buffer: the event plus the feature values the
// bounded wire-format journal (spec.md §6) deliberately omits.
type Record struct {
	Event    core.MotionEvent
	Features core.MotionFeatures
}

// WriteCSV renders records to w, one row per record, oldest first.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			fmt.Sprintf("%.6f", r.Event.TimestampSec),
			r.Event.DetectionState.String(),
			fmt.Sprintf("%.6f", r.Event.Score),
			fmt.Sprintf("%.6f", r.Event.Confidence),
			fmt.Sprintf("%.6f", r.Features.RelativeMotion),
			fmt.Sprintf("%.6f", r.Features.BaselineEnergy),
			fmt.Sprintf("%.6f", r.Features.DopplerBandEnergy),
			fmt.Sprintf("%.6f", r.Features.SNREstimateDB),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
