// Package serial abstracts the byte-stream link motiond uses to hand
// sampled trajectory frames to a downstream stepper controller board.
package serial

import "io"

// Port is a serial connection to the controller board. This abstraction
// lets a host-side deployment swap in whatever transport its target
// supports:
//   - a native OS serial device (NativePort, below)
//   - WebSerial, for a TinyGo/WASM build running in a browser
//   - an in-memory fake, for tests
type Port interface {
	io.ReadWriteCloser

	// Flush blocks until any buffered writes have reached the device.
	Flush() error
}

// Config holds the parameters needed to open a Port.
type Config struct {
	// Device is the OS path to the serial device, e.g. "/dev/ttyACM0" or
	// "COM3".
	Device string

	// Baud is the line rate in bits per second. Ignored by USB CDC
	// devices, which negotiate their own rate, but still required by
	// most serial APIs.
	Baud int

	// ReadTimeout is how long a Read blocks waiting for data, in
	// milliseconds. Zero blocks indefinitely.
	ReadTimeout int
}

// DefaultConfig returns a Config for device with the baud rate and read
// timeout motiond uses when the caller hasn't overridden them.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        250000,
		ReadTimeout: 100,
	}
}
