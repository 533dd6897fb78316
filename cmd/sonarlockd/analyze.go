package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AutoCookies/sonarlock/internal/audio"
	"github.com/AutoCookies/sonarlock/internal/core"
	"github.com/AutoCookies/sonarlock/internal/journal"
	"github.com/AutoCookies/sonarlock/internal/logging"
)

// runAnalyze drives a session one buffer at a time so it can record a
// Record per buffer (the wire-format journal in internal/core only keeps a
// bounded window) and, when --csv is set, write the whole run out for
// offline inspection — the supplemented feature original_source's main.cpp
// only approximates by dumping its single final event.
func runAnalyze(log *logging.Logger, flags *sessionFlags) error {
	cfg, err := flags.buildConfig()
	if err != nil {
		return err
	}

	fakeBackend, ok, err := asFakeBackend(flags)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("analyze only supports --backend fake")
	}

	pipeline := core.NewPipeline(nil)
	records, err := runAnalyzeSession(cfg, fakeBackend, pipeline)
	if err != nil {
		return err
	}

	if flags.csvPath != "" {
		f, err := os.Create(flags.csvPath)
		if err != nil {
			return fmt.Errorf("creating csv %q: %w", flags.csvPath, err)
		}
		defer f.Close()
		if err := journal.WriteCSV(f, records); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
		log.Info("wrote analysis csv", "path", flags.csvPath, "rows", len(records))
	}

	eventsPath := "sonarlock_events.json"
	const dumpAll = 1 << 30
	if err := os.WriteFile(eventsPath, []byte(pipeline.DumpEvents(dumpAll)), 0o644); err != nil {
		return fmt.Errorf("writing events journal: %w", err)
	}
	log.Info("wrote event journal", "path", eventsPath)

	summary, _ := json.Marshal(pipeline.Metrics())
	fmt.Println(string(summary))
	return nil
}

func asFakeBackend(flags *sessionFlags) (*audio.FakeBackend, bool, error) {
	backend, err := flags.buildBackend()
	if err != nil {
		return nil, false, err
	}
	fb, ok := backend.(*audio.FakeBackend)
	return fb, ok, nil
}

// runAnalyzeSession replays the fake backend's deterministic signal one
// buffer at a time and returns a Record per buffer processed.
func runAnalyzeSession(cfg core.Config, backend *audio.FakeBackend, pipeline *core.Pipeline) ([]journal.Record, error) {
	var records []journal.Record
	recorder := func() {
		m := pipeline.Metrics()
		records = append(records, journal.Record{Event: m.LatestEvent, Features: m.LatestFeatures})
	}

	if err := backend.RunSessionWithCallback(cfg, pipeline, nil, recorder); err != nil {
		return nil, err
	}
	return records, nil
}
