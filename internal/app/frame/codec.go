package frame

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"liftoff/internal/app/errors"
)

// Wire layout, big-endian: magic (2), source, destination, priority, action,
// device kind (1 each), device id (2), data type, operation, payload count
// (1 each), then count float64 values.
const (
	Magic uint16 = 0xA55A

	headerSize = 12
	MaxPayload = 16
)

// Encode writes the frame to w in wire format
func Encode(w io.Writer, f Frame) error {
	if len(f.Payload) > MaxPayload {
		return fmt.Errorf("%w: %d values", errors.ErrPayloadTooLarge, len(f.Payload))
	}

	buf := make([]byte, headerSize+8*len(f.Payload))

	binary.BigEndian.PutUint16(buf[0:2], Magic)
	buf[2] = byte(f.Source)
	buf[3] = byte(f.Destination)
	buf[4] = byte(f.Priority)
	buf[5] = byte(f.Action)
	buf[6] = byte(f.DeviceKind)
	binary.BigEndian.PutUint16(buf[7:9], f.DeviceID)
	buf[9] = byte(f.DataType)
	buf[10] = byte(f.Operation)
	buf[11] = byte(len(f.Payload))

	for i, v := range f.Payload {
		binary.BigEndian.PutUint64(buf[headerSize+8*i:], math.Float64bits(v))
	}

	_, err := w.Write(buf)

	return err
}

// Decode reads one frame from r. io.EOF is returned unchanged when the
// stream ends cleanly before a header byte.
func Decode(r io.Reader) (*Frame, error) {
	header := make([]byte, headerSize)

	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("%w: header: %w", errors.ErrShortFrame, err)
	}

	if binary.BigEndian.Uint16(header[0:2]) != Magic {
		return nil, errors.ErrBadMagic
	}

	count := int(header[11])
	if count > MaxPayload {
		return nil, fmt.Errorf("%w: %d values", errors.ErrPayloadTooLarge, count)
	}

	f := &Frame{
		Source:      Board(header[2]),
		Destination: Board(header[3]),
		Priority:    Priority(header[4]),
		Action:      Action(header[5]),
		DeviceKind:  DeviceKind(header[6]),
		DeviceID:    binary.BigEndian.Uint16(header[7:9]),
		DataType:    DataType(header[9]),
		Operation:   Operation(header[10]),
	}

	if count == 0 {
		return f, nil
	}

	body := make([]byte, 8*count)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("%w: payload: %w", errors.ErrShortFrame, err)
	}

	f.Payload = make([]float64, count)
	for i := range f.Payload {
		f.Payload[i] = math.Float64frombits(binary.BigEndian.Uint64(body[8*i:]))
	}

	return f, nil
}
