package main

import (
	"fmt"
	"log/slog"

	"motiond/core"
	"motiond/internal/hoststream"
	"motiond/internal/motion"
	"motiond/internal/stepgen"
)

// dryRunDriver is a core.GPIODriver that records pin activity without
// talking to real hardware, used when motiond runs without a physical
// stepper backend attached (the common case for a host-side planner that
// only needs to prove out and stream a trajectory).
type dryRunDriver struct {
	state     map[core.GPIOPin]bool
	stepCount int64
}

func newDryRunDriver() *dryRunDriver {
	return &dryRunDriver{state: make(map[core.GPIOPin]bool)}
}

func (d *dryRunDriver) ConfigureOutput(pin core.GPIOPin) error        { return nil }
func (d *dryRunDriver) ConfigureInputPullUp(pin core.GPIOPin) error   { return nil }
func (d *dryRunDriver) ConfigureInputPullDown(pin core.GPIOPin) error { return nil }
func (d *dryRunDriver) GetPin(pin core.GPIOPin) (bool, error)         { return d.state[pin], nil }
func (d *dryRunDriver) ReadPin(pin core.GPIOPin) bool                 { return d.state[pin] }

func (d *dryRunDriver) SetPin(pin core.GPIOPin, value bool) error {
	if value && !d.state[pin] {
		d.stepCount++
	}
	d.state[pin] = value
	return nil
}

// driveToTarget builds the motion.Input for one completed G-code command and
// runs the control loop to completion, streaming and stepping every sampled
// cycle along the way.
func driveToTarget(generator *motion.Generator, sink *targetSink, steppers *stepgen.Set, driver core.GPIODriver, writer *hoststream.Writer, logger *slog.Logger) error {
	dof := sink.mapping.DOF()
	input := motion.Input{
		CurrentPosition:     append([]float64(nil), sink.position...),
		CurrentVelocity:     append([]float64(nil), sink.velocity...),
		CurrentAcceleration: append([]float64(nil), sink.acceleration...),
		TargetPosition:      make([]float64, dof),
		TargetVelocity:      make([]float64, dof),
		TargetAcceleration:  make([]float64, dof),
		MaxVelocity:         make([]float64, dof),
		MaxAcceleration:     make([]float64, dof),
		MaxJerk:             make([]float64, dof),
		Enabled:             append([]bool(nil), sink.touched...),
	}

	for i := 0; i < dof; i++ {
		name := sink.mapping.AxisName(i)
		axis := sink.config.Axes[name]
		input.MaxJerk[i] = axis.MaxJerk
		input.MaxAcceleration[i] = sink.maxAccel[i]
		if sink.touched[i] {
			input.TargetPosition[i] = sink.targetPos[i]
			maxVel := sink.maxVelocity[i]
			if sink.feedRate > 0 && sink.feedRate < maxVel {
				maxVel = sink.feedRate
			}
			input.MaxVelocity[i] = maxVel
		} else {
			input.TargetPosition[i] = sink.position[i]
			input.MaxVelocity[i] = sink.maxVelocity[i]
		}
	}

	var output motion.Output
	for {
		result := generator.Update(input, &output)
		if err := steppers.Advance(driver, &output); err != nil {
			return err
		}
		if writer != nil {
			if _, err := writer.WriteSample(&output); err != nil {
				return fmt.Errorf("streaming sample: %w", err)
			}
		}
		logger.Debug("sample", "position", output.NewPosition, "duration", output.Duration, "new_calculation", output.NewCalculation)

		switch result {
		case motion.Working:
			copy(input.CurrentPosition, output.NewPosition)
			copy(input.CurrentVelocity, output.NewVelocity)
			copy(input.CurrentAcceleration, output.NewAcceleration)
			continue
		case motion.Finished:
			sink.commit(output.NewPosition, output.NewVelocity, output.NewAcceleration)
			return nil
		default:
			return fmt.Errorf("planning failed: %s", result)
		}
	}
}
