package protocol

import (
	"testing"
)

func TestVLQEncodeDecodeInt(t *testing.T) {
	quantizedSamples := []int32{
		0,
		1,
		-1,
		127,
		-127,
		128,
		-128,
		255,
		-255,
		1000,
		-1000,
		65535,
		-65535,
		1000000,
		-1000000,
	}

	for _, want := range quantizedSamples {
		output := NewScratchOutput()
		EncodeVLQInt(output, want)
		encoded := output.Result()

		data := encoded
		got, err := DecodeVLQInt(&data)
		if err != nil {
			t.Errorf("failed to decode VLQ for quantized value %d: %v", want, err)
			continue
		}

		if got != want {
			t.Errorf("VLQ round-trip mismatch: want %d, got %d (encoded as %v)", want, got, encoded)
		}

		if len(data) != 0 {
			t.Errorf("VLQ decode left %d bytes unconsumed for value %d", len(data), want)
		}
	}
}

func TestVLQEncodeDecodeUint(t *testing.T) {
	sequenceCounters := []uint32{
		0,
		1,
		127,
		128,
		255,
		1000,
		65535,
		1000000,
	}

	for _, want := range sequenceCounters {
		output := NewScratchOutput()
		EncodeVLQUint(output, want)
		encoded := output.Result()

		data := encoded
		got, err := DecodeVLQUint(&data)
		if err != nil {
			t.Errorf("failed to decode VLQ for counter %d: %v", want, err)
			continue
		}

		if got != want {
			t.Errorf("VLQ round-trip mismatch: want %d, got %d (encoded as %v)", want, got, encoded)
		}
	}
}

func TestVLQBytes(t *testing.T) {
	payloads := [][]byte{
		{},
		{0x01},
		{0x01, 0x02, 0x03},
		{0xFF, 0xFE, 0xFD},
		make([]byte, MessageMax/10), // well under a single frame's payload budget
	}

	for i, want := range payloads {
		output := NewScratchOutput()
		EncodeVLQBytes(output, want)
		encoded := output.Result()

		data := encoded
		got, err := DecodeVLQBytes(&data)
		if err != nil {
			t.Errorf("payload %d: failed to decode: %v", i, err)
			continue
		}

		if len(got) != len(want) {
			t.Errorf("payload %d: length mismatch: want %d, got %d", i, len(want), len(got))
			continue
		}

		for j := range want {
			if got[j] != want[j] {
				t.Errorf("payload %d: byte mismatch at index %d: want %d, got %d", i, j, want[j], got[j])
			}
		}
	}
}

func TestVLQString(t *testing.T) {
	axisLabels := []string{
		"",
		"x",
		"axis-0,axis-1,axis-2",
		"endstop triggered: !@#$%^&*()",
	}

	for _, want := range axisLabels {
		output := NewScratchOutput()
		EncodeVLQString(output, want)
		encoded := output.Result()

		data := encoded
		got, err := DecodeVLQString(&data)
		if err != nil {
			t.Errorf("failed to decode string %q: %v", want, err)
			continue
		}

		if got != want {
			t.Errorf("string round-trip mismatch: want %q, got %q", want, got)
		}
	}
}

func TestVLQBufferTooSmall(t *testing.T) {
	data := []byte{0x80} // continuation bit set with no following byte
	_, err := DecodeVLQInt(&data)
	if err != ErrBufferTooSmall {
		t.Errorf("expected ErrBufferTooSmall, got %v", err)
	}
}
