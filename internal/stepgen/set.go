package stepgen

import (
	"fmt"

	"motiond/core"
	"motiond/internal/axisconfig"
	"motiond/internal/kinematics"
	"motiond/internal/motion"
)

// Set drives one Stepper per mapped DOF from a motion.Output sample,
// preserving the DOF ordering kinematics.Mapping assigns.
type Set struct {
	mapping  *kinematics.Mapping
	steppers []*Stepper
}

// NewSet builds a Stepper for every axis in the mapping, in DOF order.
func NewSet(mapping *kinematics.Mapping, config *axisconfig.MachineConfig) (*Set, error) {
	steppers := make([]*Stepper, mapping.DOF())
	for i := 0; i < mapping.DOF(); i++ {
		name := mapping.AxisName(i)
		axis, ok := config.Axes[name]
		if !ok {
			return nil, fmt.Errorf("stepgen: no configuration for axis %q", name)
		}
		steppers[i] = NewStepper(name, axis)
	}
	return &Set{mapping: mapping, steppers: steppers}, nil
}

// Init configures every stepper's pins on the given driver.
func (s *Set) Init(driver core.GPIODriver) error {
	for _, stepper := range s.steppers {
		if err := stepper.Init(driver); err != nil {
			return err
		}
	}
	return nil
}

// EnableAll energizes every axis.
func (s *Set) EnableAll(driver core.GPIODriver) error {
	for _, stepper := range s.steppers {
		if err := stepper.Enable(driver); err != nil {
			return err
		}
	}
	return nil
}

// DisableAll de-energizes every axis.
func (s *Set) DisableAll(driver core.GPIODriver) error {
	for _, stepper := range s.steppers {
		if err := stepper.Disable(driver); err != nil {
			return err
		}
	}
	return nil
}

// Advance pulses each axis's stepper toward the position the sample carries
// for that DOF. Every axis present in the sample is driven, disabled ones
// included.
func (s *Set) Advance(driver core.GPIODriver, output *motion.Output) error {
	for i, stepper := range s.steppers {
		if i >= len(output.NewPosition) {
			break
		}
		if _, err := stepper.Advance(driver, output.NewPosition[i]); err != nil {
			return fmt.Errorf("stepgen: axis %q: %w", s.mapping.AxisName(i), err)
		}
	}
	return nil
}

// SetPositions resets every axis's tracked position without motion, used
// when seeding the stepper set from a homed or G92-declared origin.
func (s *Set) SetPositions(positions []float64) {
	for i, stepper := range s.steppers {
		if i < len(positions) {
			stepper.SetPosition(positions[i])
		}
	}
}

// Stepper returns the stepper driving one DOF, mainly for tests and homing
// routines that need to inspect a single axis directly.
func (s *Set) Stepper(dof int) *Stepper {
	return s.steppers[dof]
}
