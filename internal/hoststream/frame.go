// Package hoststream frames sampled motion.Output values with the VLQ +
// Checksum16 wire encoding from the protocol package and writes them to a serial
// port, one frame per control-loop cycle.
package hoststream

import (
	"encoding/binary"
	"errors"
	"fmt"

	"motiond/internal/motion"
	"motiond/protocol"
)

// ErrCRCMismatch is returned by Decode when a frame's trailing Checksum16 does
// not match its body.
var ErrCRCMismatch = errors.New("hoststream: Checksum16 mismatch")

// ErrShortFrame is returned when a buffer holds fewer bytes than
// protocol.MessageMin, or a length prefix claims more body than is
// available.
var ErrShortFrame = errors.New("hoststream: frame shorter than declared length")

const syncByte = 0x7E

// Encoder serializes successive motion.Output samples into framed,
// checksummed byte sequences ready to hand to a serial port. It keeps a
// four-bit rolling sequence number, matching the width protocol.MessageSeqMask
// reserves for it.
type Encoder struct {
	dof      int
	sequence uint8
	scratch  *protocol.ScratchOutput
}

// NewEncoder creates an encoder for a fixed number of DOF; every Output it
// encodes must carry exactly this many samples per field.
func NewEncoder(dof int) *Encoder {
	return &Encoder{dof: dof, scratch: protocol.NewScratchOutput()}
}

// Encode serializes one Output sample into a self-delimited frame:
//
//	[length][sequence] [VLQ position...] [VLQ velocity...] [VLQ accel...] [Checksum16 hi][Checksum16 lo][sync]
//
// Positions, velocities and accelerations are fixed-point scaled by 1e6 and
// truncated to int32 before VLQ encoding, since the wire format carries
// integers only.
func (e *Encoder) Encode(output *motion.Output) ([]byte, error) {
	if len(output.NewPosition) != e.dof || len(output.NewVelocity) != e.dof || len(output.NewAcceleration) != e.dof {
		return nil, fmt.Errorf("hoststream: output has %d/%d/%d samples, encoder configured for %d DOF",
			len(output.NewPosition), len(output.NewVelocity), len(output.NewAcceleration), e.dof)
	}

	e.scratch.Reset()
	bodyStart := e.scratch.CurPosition()
	e.scratch.Output([]byte{0, 0}) // header placeholder: length, sequence
	payloadStart := e.scratch.CurPosition()

	for _, v := range output.NewPosition {
		protocol.EncodeVLQInt(e.scratch, quantize(v))
	}
	for _, v := range output.NewVelocity {
		protocol.EncodeVLQInt(e.scratch, quantize(v))
	}
	for _, v := range output.NewAcceleration {
		protocol.EncodeVLQInt(e.scratch, quantize(v))
	}

	length := e.scratch.CurPosition() - payloadStart
	if length > 255 {
		return nil, fmt.Errorf("hoststream: encoded frame payload of %d bytes exceeds header capacity", length)
	}
	e.scratch.Update(bodyStart, byte(length))
	e.scratch.Update(bodyStart+1, e.sequence&protocol.MessageSeqMask)
	e.sequence++

	crc := protocol.Checksum16(e.scratch.DataSince(bodyStart))
	var crcBytes [2]byte
	binary.BigEndian.PutUint16(crcBytes[:], crc)
	e.scratch.Output(crcBytes[:])
	e.scratch.Output([]byte{syncByte})

	frame := e.scratch.DataSince(bodyStart)
	out := make([]byte, len(frame))
	copy(out, frame)
	return out, nil
}

// Decoder parses frames produced by an Encoder back into raw sample arrays.
// It is the counterpart a downstream consumer (a firmware bridge, a replay
// tool) uses to unpack what Encoder wrote.
type Decoder struct {
	dof int
}

// NewDecoder creates a decoder for a fixed number of DOF.
func NewDecoder(dof int) *Decoder {
	return &Decoder{dof: dof}
}

// Decode parses exactly one frame from the front of data and returns the
// recovered position, velocity and acceleration samples along with the
// number of bytes consumed.
func (d *Decoder) Decode(data []byte) (position, velocity, acceleration []float64, consumed int, err error) {
	if len(data) < protocol.MessageMin {
		return nil, nil, nil, 0, ErrShortFrame
	}
	length := int(data[0])
	total := protocol.MessageHeader + length + protocol.MessageTrailer
	if len(data) < total {
		return nil, nil, nil, 0, ErrShortFrame
	}

	body := data[:protocol.MessageHeader+length]
	crcWant := binary.BigEndian.Uint16(data[protocol.MessageHeader+length : protocol.MessageHeader+length+2])
	if protocol.Checksum16(body) != crcWant {
		return nil, nil, nil, 0, ErrCRCMismatch
	}
	if data[total-1] != syncByte {
		return nil, nil, nil, 0, fmt.Errorf("hoststream: missing sync byte at frame end")
	}

	payload := body[protocol.MessageHeader:]
	position = make([]float64, d.dof)
	velocity = make([]float64, d.dof)
	acceleration = make([]float64, d.dof)
	for _, dst := range [][]float64{position, velocity, acceleration} {
		for i := 0; i < d.dof; i++ {
			v, decErr := protocol.DecodeVLQInt(&payload)
			if decErr != nil {
				return nil, nil, nil, 0, decErr
			}
			dst[i] = dequantize(v)
		}
	}
	return position, velocity, acceleration, total, nil
}

const fixedPointScale = 1e6

func quantize(v float64) int32 {
	return int32(v * fixedPointScale)
}

func dequantize(v int32) float64 {
	return float64(v) / fixedPointScale
}
