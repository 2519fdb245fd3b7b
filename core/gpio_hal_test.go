package core

import "testing"

type fakeGPIO struct {
	state map[GPIOPin]bool
}

func newFakeGPIO() *fakeGPIO {
	return &fakeGPIO{state: make(map[GPIOPin]bool)}
}

func (f *fakeGPIO) ConfigureOutput(pin GPIOPin) error         { return nil }
func (f *fakeGPIO) ConfigureInputPullUp(pin GPIOPin) error    { return nil }
func (f *fakeGPIO) ConfigureInputPullDown(pin GPIOPin) error  { return nil }
func (f *fakeGPIO) SetPin(pin GPIOPin, value bool) error      { f.state[pin] = value; return nil }
func (f *fakeGPIO) GetPin(pin GPIOPin) (bool, error)          { return f.state[pin], nil }
func (f *fakeGPIO) ReadPin(pin GPIOPin) bool                  { return f.state[pin] }

func TestMustGPIOPanicsWithoutDriver(t *testing.T) {
	gpioDriver = nil
	defer func() {
		if recover() == nil {
			t.Errorf("expected MustGPIO to panic without a registered driver")
		}
	}()
	MustGPIO()
}

func TestSetGPIODriverRegisters(t *testing.T) {
	fake := newFakeGPIO()
	SetGPIODriver(fake)
	defer SetGPIODriver(nil)

	drv := MustGPIO()
	if err := drv.SetPin(3, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !drv.ReadPin(3) {
		t.Errorf("expected pin 3 to read true after SetPin")
	}
}
