package stepgen

import (
	"testing"

	"motiond/core"
	"motiond/internal/axisconfig"
)

// fakeDriver is a package-local test double for core.GPIODriver; it cannot
// reuse core's own unexported fake since Go does not export identifiers
// across package boundaries.
type fakeDriver struct {
	pins        map[core.GPIOPin]bool
	outputs     map[core.GPIOPin]bool
	stepPulses  int
	risingEdges map[core.GPIOPin]int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		pins:        make(map[core.GPIOPin]bool),
		outputs:     make(map[core.GPIOPin]bool),
		risingEdges: make(map[core.GPIOPin]int),
	}
}

func (f *fakeDriver) ConfigureOutput(pin core.GPIOPin) error {
	f.outputs[pin] = true
	return nil
}

func (f *fakeDriver) ConfigureInputPullUp(pin core.GPIOPin) error   { return nil }
func (f *fakeDriver) ConfigureInputPullDown(pin core.GPIOPin) error { return nil }

func (f *fakeDriver) SetPin(pin core.GPIOPin, value bool) error {
	if value && !f.pins[pin] {
		f.stepPulses++
		f.risingEdges[pin]++
	}
	f.pins[pin] = value
	return nil
}

func (f *fakeDriver) GetPin(pin core.GPIOPin) (bool, error) { return f.pins[pin], nil }
func (f *fakeDriver) ReadPin(pin core.GPIOPin) bool         { return f.pins[pin] }

func testAxis() axisconfig.Axis {
	return axisconfig.Axis{
		StepPin:    "gpio0",
		DirPin:     "gpio1",
		EnablePin:  "gpio2",
		StepsPerMM: 80,
	}
}

func TestStepperInitConfiguresPins(t *testing.T) {
	driver := newFakeDriver()
	s := NewStepper("x", testAxis())
	if err := s.Init(driver); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !driver.outputs[core.GPIOPin(0)] || !driver.outputs[core.GPIOPin(1)] || !driver.outputs[core.GPIOPin(2)] {
		t.Errorf("expected step, dir and enable pins configured as outputs")
	}
}

func TestStepperAdvanceEmitsWholeSteps(t *testing.T) {
	driver := newFakeDriver()
	s := NewStepper("x", testAxis())
	if err := s.Init(driver); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1mm at 80 steps/mm should emit exactly 80 step pulses.
	steps, err := s.Advance(driver, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if steps != 80 {
		t.Errorf("expected 80 steps, got %d", steps)
	}
	if driver.risingEdges[core.GPIOPin(0)] != 80 {
		t.Errorf("expected 80 rising edges on the step pin, got %d", driver.risingEdges[core.GPIOPin(0)])
	}
}

func TestStepperAdvanceAccumulatesFractionalSteps(t *testing.T) {
	driver := newFakeDriver()
	s := NewStepper("x", testAxis())
	s.Init(driver)

	// Each 0.013mm increment at 80 steps/mm is 1.04 steps; advancing in
	// increments that don't align to whole steps must still sum correctly
	// rather than truncating motion away.
	total := 0
	for i := 0; i < 100; i++ {
		steps, _ := s.Advance(driver, float64(i+1)*0.013)
		total += steps
	}
	want := int(100 * 0.013 * 80)
	if total < want-1 || total > want+1 {
		t.Errorf("expected accumulated steps near %d, got %d", want, total)
	}
}

func TestStepperAdvanceSetsDirectionOnReversal(t *testing.T) {
	driver := newFakeDriver()
	s := NewStepper("x", testAxis())
	s.Init(driver)

	s.Advance(driver, 1.0)
	if !driver.pins[core.GPIOPin(1)] {
		t.Errorf("expected forward direction pin high")
	}
	s.Advance(driver, 0.0)
	if driver.pins[core.GPIOPin(1)] {
		t.Errorf("expected direction pin low after reversing")
	}
}

func TestStepperInvertDirFlipsPolarity(t *testing.T) {
	driver := newFakeDriver()
	axis := testAxis()
	axis.InvertDir = true
	s := NewStepper("x", axis)
	s.Init(driver)

	s.Advance(driver, 1.0)
	if driver.pins[core.GPIOPin(1)] {
		t.Errorf("expected inverted forward direction to read low")
	}
}

func TestStepperEnableDisableTogglesEnablePin(t *testing.T) {
	driver := newFakeDriver()
	s := NewStepper("x", testAxis())
	s.Init(driver)

	if err := s.Enable(driver); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !driver.pins[core.GPIOPin(2)] {
		t.Errorf("expected enable pin high after Enable")
	}
	if err := s.Disable(driver); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.pins[core.GPIOPin(2)] {
		t.Errorf("expected enable pin low after Disable")
	}
}

func TestStepperPositionReflectsWholeSteps(t *testing.T) {
	driver := newFakeDriver()
	s := NewStepper("x", testAxis())
	s.Init(driver)

	s.Advance(driver, 2.0)
	if got := s.Position(); got < 1.999 || got > 2.001 {
		t.Errorf("expected tracked position near 2.0, got %v", got)
	}
}

func TestStepperSetPositionResetsWithoutMotion(t *testing.T) {
	driver := newFakeDriver()
	s := NewStepper("x", testAxis())
	s.Init(driver)

	s.SetPosition(50.0)
	if driver.stepPulses != 0 {
		t.Errorf("expected SetPosition to emit no step pulses, got %d", driver.stepPulses)
	}
	if got := s.Position(); got < 49.999 || got > 50.001 {
		t.Errorf("expected position 50.0 after SetPosition, got %v", got)
	}
}

func TestLookupPinRejectsMalformedName(t *testing.T) {
	if _, err := LookupPin("not-a-pin"); err == nil {
		t.Errorf("expected an error for a malformed pin name")
	}
}
