package transport

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liftoff/internal/app/errors"
	"liftoff/internal/app/frame"
	"liftoff/internal/config"
	"liftoff/internal/config/logger"
)

// testServer is a minimal wire endpoint for loopback tests
type testServer struct {
	listener net.Listener
	conns    chan net.Conn
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &testServer{listener: listener, conns: make(chan net.Conn, 1)}

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}

		s.conns <- conn
	}()

	t.Cleanup(func() { listener.Close() })

	return s
}

func (s *testServer) addr() string {
	return s.listener.Addr().String()
}

func (s *testServer) accept(t *testing.T) net.Conn {
	t.Helper()

	select {
	case conn := <-s.conns:
		t.Cleanup(func() { conn.Close() })
		return conn
	case <-time.After(time.Second):
		t.Fatal("No connection accepted")
		return nil
	}
}

func testTransport(t *testing.T, address string) Transport {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Transport.Address = address

	tr := NewTCP(cfg, logger.NewNop())
	t.Cleanup(func() { tr.Close() })

	return tr
}

func Test_Connect_Idempotent(t *testing.T) {
	server := newTestServer(t)
	tr := testTransport(t, server.addr())

	ctx := context.Background()
	require.NoError(t, tr.Connect(ctx))
	require.NoError(t, tr.Connect(ctx))
}

func Test_Connect_Refused(t *testing.T) {
	tr := testTransport(t, "127.0.0.1:1")

	err := tr.Connect(context.Background())
	assert.ErrorIs(t, err, errors.ErrFailedToDial)
}

func Test_Receive_NilWhenIdle(t *testing.T) {
	server := newTestServer(t)
	tr := testTransport(t, server.addr())

	require.NoError(t, tr.Connect(context.Background()))

	f, err := tr.Receive()
	assert.NoError(t, err)
	assert.Nil(t, f)
}

func Test_Receive_NotConnected(t *testing.T) {
	tr := testTransport(t, "127.0.0.1:1")

	_, err := tr.Receive()
	assert.ErrorIs(t, err, errors.ErrNotConnected)
}

func Test_Receive_DeliversInboundFrame(t *testing.T) {
	server := newTestServer(t)
	tr := testTransport(t, server.addr())

	require.NoError(t, tr.Connect(context.Background()))
	conn := server.accept(t)

	sent := frame.Frame{
		Source:      frame.BoardSoftware,
		Destination: frame.BoardRocket,
		Action:      frame.ActionFeed,
		DeviceKind:  frame.KindSensor,
		DeviceID:    2,
		DataType:    frame.TypeFloat,
		Payload:     []float64{17.5},
	}
	require.NoError(t, frame.Encode(conn, sent))

	var got *frame.Frame

	require.Eventually(t, func() bool {
		f, err := tr.Receive()
		if err != nil || f == nil {
			return false
		}

		got = f

		return true
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, sent, *got)
}

func Test_PushSend_WritesToWire(t *testing.T) {
	server := newTestServer(t)
	tr := testTransport(t, server.addr())

	require.NoError(t, tr.Connect(context.Background()))
	conn := server.accept(t)

	out := frame.Frame{
		Source:      frame.BoardRocket,
		Destination: frame.BoardSoftware,
		Priority:    frame.PriorityHigh,
		Action:      frame.ActionService,
		DeviceKind:  frame.KindServo,
		DeviceID:    1,
		DataType:    frame.TypeFloat,
		Operation:   frame.OpServoPosition,
		Payload:     []float64{0},
	}

	tr.Push(out)
	require.NoError(t, tr.Send())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))

	decoded, err := frame.Decode(bufio.NewReader(conn))
	require.NoError(t, err)
	assert.Equal(t, out, *decoded)
}

func Test_Send_EmptyQueueIsNoOp(t *testing.T) {
	tr := testTransport(t, "127.0.0.1:1")

	assert.NoError(t, tr.Send())
}

func Test_Send_NotConnected(t *testing.T) {
	tr := testTransport(t, "127.0.0.1:1")

	tr.Push(frame.Frame{Action: frame.ActionService})

	assert.ErrorIs(t, tr.Send(), errors.ErrNotConnected)
}
