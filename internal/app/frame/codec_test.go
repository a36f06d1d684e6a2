package frame

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liftoff/internal/app/errors"
)

func Test_EncodeDecode(t *testing.T) {
	var buf bytes.Buffer

	original := Frame{
		Source:      BoardRocket,
		Destination: BoardSoftware,
		Priority:    PriorityHigh,
		Action:      ActionService,
		DeviceKind:  KindServo,
		DeviceID:    3,
		DataType:    TypeFloat,
		Operation:   OpServoPosition,
		Payload:     []float64{42.5},
	}

	require.NoError(t, Encode(&buf, original))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, original, *decoded)
}

func Test_EncodeDecode_EmptyPayload(t *testing.T) {
	var buf bytes.Buffer

	original := Frame{
		Source:      BoardRocket,
		Destination: BoardSoftware,
		Priority:    PriorityLow,
		Action:      ActionService,
		DeviceKind:  KindRelay,
		DeviceID:    1,
		DataType:    TypeFloat,
		Operation:   OpRelayClose,
	}

	require.NoError(t, Encode(&buf, original))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Nil(t, decoded.Payload)
	assert.Equal(t, original, *decoded)
}

func Test_Decode_Stream(t *testing.T) {
	var buf bytes.Buffer

	first := Frame{Source: BoardSoftware, Destination: BoardRocket, Action: ActionFeed, DeviceKind: KindSensor, DeviceID: 2, DataType: TypeFloat, Payload: []float64{10}}
	second := Frame{Source: BoardSoftware, Destination: BoardRocket, Action: ActionAck, DeviceKind: KindRelay, DeviceID: 0, DataType: TypeFloat, Operation: OpRelayOpen}

	require.NoError(t, Encode(&buf, first))
	require.NoError(t, Encode(&buf, second))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, ActionFeed, decoded.Action)

	decoded, err = Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, ActionAck, decoded.Action)

	_, err = Decode(&buf)
	assert.Equal(t, io.EOF, err)
}

func Test_Decode_BadMagic(t *testing.T) {
	data := make([]byte, 12)
	data[0] = 0xDE
	data[1] = 0xAD

	_, err := Decode(bytes.NewReader(data))
	assert.ErrorIs(t, err, errors.ErrBadMagic)
}

func Test_Decode_ShortFrame(t *testing.T) {
	var buf bytes.Buffer

	f := Frame{Source: BoardRocket, Destination: BoardSoftware, Action: ActionService, DeviceKind: KindServo, DataType: TypeFloat, Operation: OpServoPosition, Payload: []float64{1}}
	require.NoError(t, Encode(&buf, f))

	truncated := buf.Bytes()[:buf.Len()-4]

	_, err := Decode(bytes.NewReader(truncated))
	assert.ErrorIs(t, err, errors.ErrShortFrame)
}

func Test_Encode_PayloadTooLarge(t *testing.T) {
	f := Frame{Payload: make([]float64, MaxPayload+1)}

	err := Encode(io.Discard, f)
	assert.ErrorIs(t, err, errors.ErrPayloadTooLarge)
}

func Test_Strings(t *testing.T) {
	assert.Equal(t, "ROCKET", BoardRocket.String())
	assert.Equal(t, "SOFTWARE", BoardSoftware.String())
	assert.Equal(t, "HIGH", PriorityHigh.String())
	assert.Equal(t, "LOW", PriorityLow.String())
	assert.Equal(t, "FEED", ActionFeed.String())
	assert.Equal(t, "NACK", ActionNack.String())
	assert.Equal(t, "SERVO", KindServo.String())
	assert.Equal(t, "SENSOR", KindSensor.String())
	assert.Equal(t, "FLOAT", TypeFloat.String())

	f := Frame{Source: BoardRocket, Destination: BoardSoftware, Action: ActionService, DeviceKind: KindServo, DeviceID: 2, Payload: []float64{0}}
	assert.Contains(t, f.String(), "ROCKET->SOFTWARE")
	assert.Contains(t, f.String(), "SERVO")
}
