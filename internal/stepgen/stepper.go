// Package stepgen turns the position stream a motion.Generator produces
// into step/direction pulses on a core.GPIODriver, one axis at a time.
package stepgen

import (
	"fmt"
	"math"

	"motiond/core"
	"motiond/internal/axisconfig"
)

// Stepper drives one axis's step and direction pins from successive
// position samples. It tracks a fractional step count so that no motion is
// lost to per-cycle rounding, the same accumulator technique Klipper's step
// compression itself relies on.
type Stepper struct {
	name   string
	config axisconfig.Axis

	stepPin core.GPIOPin
	dirPin  core.GPIOPin
	enPin   core.GPIOPin
	hasEn   bool

	stepsTaken   int64
	fractional   float64
	lastPosition float64
	enabled      bool
}

// LookupPin parses a "gpioN" pin name into a GPIOPin number.
func LookupPin(name string) (core.GPIOPin, error) {
	var n uint32
	if _, err := fmt.Sscanf(name, "gpio%d", &n); err != nil {
		return 0, fmt.Errorf("stepgen: invalid pin name %q", name)
	}
	return core.GPIOPin(n), nil
}

// NewStepper creates a stepper bound to one axis's configuration.
func NewStepper(name string, config axisconfig.Axis) *Stepper {
	return &Stepper{name: name, config: config}
}

// Init configures the step, direction and (if present) enable pins on the
// given driver, leaving the motor disabled.
func (s *Stepper) Init(driver core.GPIODriver) error {
	stepPin, err := LookupPin(s.config.StepPin)
	if err != nil {
		return err
	}
	dirPin, err := LookupPin(s.config.DirPin)
	if err != nil {
		return err
	}
	if err := driver.ConfigureOutput(stepPin); err != nil {
		return err
	}
	if err := driver.ConfigureOutput(dirPin); err != nil {
		return err
	}
	s.stepPin, s.dirPin = stepPin, dirPin

	if s.config.EnablePin != "" {
		enPin, err := LookupPin(s.config.EnablePin)
		if err != nil {
			return err
		}
		if err := driver.ConfigureOutput(enPin); err != nil {
			return err
		}
		s.enPin, s.hasEn = enPin, true
		if err := driver.SetPin(s.enPin, false); err != nil {
			return err
		}
	}
	return nil
}

// Enable energizes the motor coils.
func (s *Stepper) Enable(driver core.GPIODriver) error {
	s.enabled = true
	if !s.hasEn {
		return nil
	}
	return driver.SetPin(s.enPin, true)
}

// Disable de-energizes the motor coils.
func (s *Stepper) Disable(driver core.GPIODriver) error {
	s.enabled = false
	if !s.hasEn {
		return nil
	}
	return driver.SetPin(s.enPin, false)
}

// Advance moves the stepper to reflect a new sampled position (in the
// axis's engineering units, e.g. millimeters), emitting one step pulse per
// whole step accumulated since the last call. It returns the number of
// steps pulsed, positive for the configured forward direction.
func (s *Stepper) Advance(driver core.GPIODriver, position float64) (int, error) {
	delta := position - s.lastPosition
	s.lastPosition = position
	s.fractional += delta * s.config.StepsPerMM

	whole := math.Trunc(s.fractional)
	s.fractional -= whole
	steps := int(whole)
	if steps == 0 {
		return 0, nil
	}

	forward := steps > 0
	dirValue := forward
	if s.config.InvertDir {
		dirValue = !dirValue
	}
	if err := driver.SetPin(s.dirPin, dirValue); err != nil {
		return 0, err
	}

	n := steps
	if n < 0 {
		n = -n
	}
	for i := 0; i < n; i++ {
		if err := driver.SetPin(s.stepPin, true); err != nil {
			return 0, err
		}
		if err := driver.SetPin(s.stepPin, false); err != nil {
			return 0, err
		}
	}
	s.stepsTaken += int64(steps)
	return steps, nil
}

// Position returns the stepper's tracked position in engineering units,
// derived from the whole-step count (not the fractional carry).
func (s *Stepper) Position() float64 {
	return float64(s.stepsTaken) / s.config.StepsPerMM
}

// SetPosition resets the stepper's tracked position without motion, used
// after homing or a G92-style origin reset.
func (s *Stepper) SetPosition(position float64) {
	s.stepsTaken = int64(position * s.config.StepsPerMM)
	s.fractional = 0
	s.lastPosition = position
}
