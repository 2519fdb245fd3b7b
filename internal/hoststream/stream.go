package hoststream

import (
	"motiond/host/serial"
	"motiond/internal/motion"
	"motiond/protocol"
)

// Writer streams successive motion.Output samples to a serial port as
// framed, checksummed byte sequences, one frame per control-loop cycle.
type Writer struct {
	port    serial.Port
	encoder *Encoder
}

// NewWriter creates a writer bound to a serial port and a fixed DOF count.
func NewWriter(port serial.Port, dof int) *Writer {
	return &Writer{port: port, encoder: NewEncoder(dof)}
}

// WriteSample encodes and writes one Output sample, returning the number of
// bytes written.
func (w *Writer) WriteSample(output *motion.Output) (int, error) {
	frame, err := w.encoder.Encode(output)
	if err != nil {
		return 0, err
	}
	return w.port.Write(frame)
}

// Close flushes and closes the underlying serial port.
func (w *Writer) Close() error {
	if err := w.port.Flush(); err != nil {
		return err
	}
	return w.port.Close()
}

// readChunk is the size of each read attempted against the underlying port
// while filling the reassembly buffer.
const readChunk = 256

// Reader reassembles the framed byte stream a Writer produces on the far
// end of a serial link back into sample arrays, for a monitor or replay
// tool sitting on the same port. Bytes read off the wire rarely land on a
// frame boundary, so incoming data is accumulated in a FifoBuffer and
// drained one complete frame at a time.
type Reader struct {
	port    serial.Port
	decoder *Decoder
	fifo    *protocol.FifoBuffer
	chunk   []byte
}

// NewReader creates a reader bound to a serial port and a fixed DOF count.
func NewReader(port serial.Port, dof int) *Reader {
	return &Reader{
		port:    port,
		decoder: NewDecoder(dof),
		fifo:    protocol.NewFifoBuffer(protocol.MessageMax * 4),
		chunk:   make([]byte, readChunk),
	}
}

// ReadSample blocks until it has decoded one complete frame, reading
// further bytes from the port as needed, and returns the recovered
// position, velocity and acceleration samples.
func (r *Reader) ReadSample() (position, velocity, acceleration []float64, err error) {
	for {
		if data := r.fifo.Data(); len(data) > 0 {
			pos, vel, acc, consumed, decErr := r.decoder.Decode(data)
			switch decErr {
			case nil:
				r.fifo.Pop(consumed)
				return pos, vel, acc, nil
			case ErrShortFrame:
				// not enough buffered yet; fall through and read more
			default:
				r.fifo.Pop(1) // resync past one bad byte and keep going
			}
		}

		n, readErr := r.port.Read(r.chunk)
		if n > 0 {
			r.fifo.Write(r.chunk[:n])
		}
		if readErr != nil {
			return nil, nil, nil, readErr
		}
	}
}

// Close closes the underlying serial port.
func (r *Reader) Close() error {
	return r.port.Close()
}
