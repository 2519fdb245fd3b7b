package stepgen

import (
	"testing"

	"motiond/internal/axisconfig"
	"motiond/internal/kinematics"
	"motiond/internal/motion"
)

func testSetConfig() *axisconfig.MachineConfig {
	return &axisconfig.MachineConfig{
		Axes: map[string]axisconfig.Axis{
			"x": {StepPin: "gpio0", DirPin: "gpio1", StepsPerMM: 80, MinPosition: 0, MaxPosition: 220},
			"y": {StepPin: "gpio2", DirPin: "gpio3", StepsPerMM: 80, MinPosition: 0, MaxPosition: 220},
		},
	}
}

func TestNewSetBuildsOneStepperPerDOF(t *testing.T) {
	config := testSetConfig()
	mapping, err := kinematics.NewMapping(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set, err := NewSet(mapping, config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Stepper(0) == nil || set.Stepper(1) == nil {
		t.Errorf("expected a stepper for both mapped axes")
	}
}

func TestNewSetRejectsUnconfiguredAxis(t *testing.T) {
	config := testSetConfig()
	mapping, _ := kinematics.NewMapping(config)
	delete(config.Axes, "y")
	if _, err := NewSet(mapping, config); err == nil {
		t.Errorf("expected an error when the mapping references an axis missing from config")
	}
}

func TestSetAdvanceDrivesEachAxisFromOutput(t *testing.T) {
	config := testSetConfig()
	mapping, _ := kinematics.NewMapping(config)
	set, err := NewSet(mapping, config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	driver := newFakeDriver()
	if err := set.Init(driver); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := &motion.Output{NewPosition: []float64{1.0, 2.0}}
	if err := set.Advance(driver, output); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := set.Stepper(0).Position(); got < 0.999 || got > 1.001 {
		t.Errorf("expected axis 0 near 1.0mm, got %v", got)
	}
	if got := set.Stepper(1).Position(); got < 1.999 || got > 2.001 {
		t.Errorf("expected axis 1 near 2.0mm, got %v", got)
	}
}

func TestSetPositionsSeedsWithoutMotion(t *testing.T) {
	config := testSetConfig()
	mapping, _ := kinematics.NewMapping(config)
	set, _ := NewSet(mapping, config)
	driver := newFakeDriver()
	set.Init(driver)

	set.SetPositions([]float64{10, 20})
	if got := set.Stepper(0).Position(); got < 9.999 || got > 10.001 {
		t.Errorf("expected axis 0 seeded to 10.0mm, got %v", got)
	}
	if driver.stepPulses != 0 {
		t.Errorf("expected no step pulses from seeding positions")
	}
}
