package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/pkg/term"

	"github.com/AutoCookies/sonarlock/internal/action"
	"github.com/AutoCookies/sonarlock/internal/audio"
	"github.com/AutoCookies/sonarlock/internal/core"
	"github.com/AutoCookies/sonarlock/internal/logging"
)

// runRun drives one live session: build config and backend, run it to
// completion (or until stopped), then map the final metrics' latest action
// through the executor exactly once, mirroring main.cpp's end-of-run
// action dispatch.
func runRun(log *logging.Logger, flags *sessionFlags) error {
	cfg, err := flags.buildConfig()
	if err != nil {
		return err
	}
	backend, err := flags.buildBackend()
	if err != nil {
		return err
	}

	var stopped atomic.Bool
	stop := func() bool { return stopped.Load() }

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		<-sig
		stopped.Store(true)
	}()

	if flags.backend == "real" {
		go watchKeypress(log, &stopped)

		hotplugCtx, cancelHotplug := context.WithCancel(context.Background())
		defer cancelHotplug()
		go func() {
			if err := audio.NewHotplugWatcher(log).Watch(hotplugCtx); err != nil {
				log.Debug("hotplug watcher stopped", "error", err)
			}
		}()
	}

	var gpio *action.GPIOIndicator
	if flags.gpioChip != "" {
		g, err := action.NewGPIOIndicator(flags.gpioChip, flags.buzzerPin, flags.ledPin)
		if err != nil {
			log.Warn("gpio indicator unavailable", "error", err)
		} else {
			gpio = g
			defer gpio.Close()
		}
	}

	pipeline := core.NewPipeline(nil)
	if err := backend.RunSession(cfg, pipeline, stop); err != nil {
		return err
	}

	metrics := pipeline.Metrics()
	logRunSummary(log, cfg, metrics)

	executor := action.NewExecutor(nil)
	if metrics.LatestAction.Type != core.ActionNone {
		res := executor.Execute(metrics.LatestAction)
		if res.OK {
			log.Info("action result", "message", res.Message)
		} else {
			log.Warn("action result", "message", res.Message)
		}
		if gpio != nil {
			if err := gpio.Apply(metrics.LatestAction); err != nil {
				log.Warn("gpio apply failed", "error", err)
			}
		}
	}
	return nil
}

// watchKeypress lets an operator at a real terminal press 'q' to stop a
// live run early, the Go equivalent of main.cpp's SIGINT handler plus a
// keyboard escape hatch — grounded on the teacher's raw-mode pkg/term use
// in src/serial_port.go, repurposed here from serial I/O to the controlling
// terminal (/dev/tty).
func watchKeypress(log *logging.Logger, stopped *atomic.Bool) {
	tty, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		log.Debug("keypress watcher unavailable", "error", err)
		return
	}
	defer tty.Restore()
	defer tty.Close()

	buf := make([]byte, 1)
	for {
		n, err := tty.Read(buf)
		if err != nil {
			return
		}
		if n > 0 && (buf[0] == 'q' || buf[0] == 'Q') {
			stopped.Store(true)
			return
		}
	}
}

func logRunSummary(log *logging.Logger, cfg core.Config, m core.RuntimeMetrics) {
	log.Info("run complete",
		"score", fmt.Sprintf("%.4f", m.LatestEvent.Score),
		"confidence", fmt.Sprintf("%.4f", m.LatestEvent.Confidence),
		"state", m.LatestEvent.DetectionState.String(),
		"cal", m.LatestEvent.CalibrationState.String(),
		"relative_motion", fmt.Sprintf("%.4f", m.LatestFeatures.RelativeMotion),
		"doppler", fmt.Sprintf("%.4f", m.LatestFeatures.DopplerBandEnergy),
		"trigger_th", cfg.Detection.TriggerThreshold,
		"release_th", cfg.Detection.ReleaseThreshold,
		"triggers", m.TriggeredCount,
	)
}
