package core

import "sync"

// GPIOPin identifies a digital I/O line on the actuator controller board:
// the step, direction and enable lines stepgen.Stepper drives, or a
// homing/limit switch input.
type GPIOPin uint32

// GPIODriver is the hardware-facing interface stepgen.Stepper pulses to
// turn sampled trajectory positions into physical motor motion.
// Platform-specific implementations (or, for a host-only build, a
// dry-run/simulated driver) satisfy it.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a digital output. Returns an
	// error if the pin number is invalid or already claimed.
	ConfigureOutput(pin GPIOPin) error

	// ConfigureInputPullUp configures a pin as a digital input with a
	// pull-up resistor, for an active-low endstop.
	ConfigureInputPullUp(pin GPIOPin) error

	// ConfigureInputPullDown configures a pin as a digital input with a
	// pull-down resistor, for an active-high endstop.
	ConfigureInputPullDown(pin GPIOPin) error

	// SetPin drives the pin high (true) or low (false).
	SetPin(pin GPIOPin, value bool) error

	// GetPin reads the current pin state.
	GetPin(pin GPIOPin) (bool, error)

	// ReadPin reads the current pin state, ignoring any read error; used
	// on the hot path of step pulsing where a transient read failure
	// isn't worth aborting motion over.
	ReadPin(pin GPIOPin) bool
}

var (
	gpioMu     sync.Mutex
	gpioDriver GPIODriver
)

// SetGPIODriver registers the driver backing every subsequent MustGPIO
// call. motiond does not use this registry; it hands its driver to
// stepgen directly.
func SetGPIODriver(d GPIODriver) {
	gpioMu.Lock()
	defer gpioMu.Unlock()
	gpioDriver = d
}

// MustGPIO returns the registered driver, panicking if SetGPIODriver was
// never called.
func MustGPIO() GPIODriver {
	gpioMu.Lock()
	defer gpioMu.Unlock()
	if gpioDriver == nil {
		panic("core: GPIO driver not configured")
	}
	return gpioDriver
}
