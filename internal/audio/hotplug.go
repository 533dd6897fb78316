package audio

import (
	"context"

	"github.com/jochenvg/go-udev"

	"github.com/AutoCookies/sonarlock/internal/logging"
)

// HotplugWatcher reports ALSA sound-card add/remove events over udev so the
// "run" command can log a warning and keep going rather than silently
// continuing to read from a microphone that vanished mid-session — the
// teacher's device-detection code (src/cm108.go) instead polls libudev
// through cgo at startup only; this is the same subsystem watched
// continuously via the pure-Go binding listed alongside it in go.mod.
type HotplugWatcher struct {
	log *logging.Logger
}

func NewHotplugWatcher(log *logging.Logger) *HotplugWatcher {
	return &HotplugWatcher{log: log}
}

// Watch blocks, emitting a log line for every udev "sound" subsystem add or
// remove event, until ctx is cancelled.
func (w *HotplugWatcher) Watch(ctx context.Context) error {
	u := udev.Udev{}
	monitor := u.NewMonitorFromNetlink("udev")
	if err := monitor.FilterAddMatchSubsystem("sound"); err != nil {
		return err
	}

	devices, errs, err := monitor.DeviceChan(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			if err != nil {
				w.log.Warn("udev monitor error", "error", err)
			}
		case d, ok := <-devices:
			if !ok {
				return nil
			}
			w.log.Warn("sound device hotplug event",
				"action", d.Action(),
				"syspath", d.Syspath(),
				"devnode", d.Devnode(),
			)
		}
	}
}
