//go:generate mockgen -source=transport.go -destination=transport_mock.go -package=transport
package transport

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"liftoff/internal/app/errors"
	"liftoff/internal/app/frame"
	"liftoff/internal/config"
	"liftoff/internal/config/logger"
)

// Transport delivers inbound frames and accepts outbound frames.
// Push and Send are safe for concurrent use.
type Transport interface {
	Connect(ctx context.Context) error
	Receive() (*frame.Frame, error)
	Push(f frame.Frame)
	Send() error
	Close() error
}

// tcpTransport implements Transport over a single TCP connection
type tcpTransport struct {
	cfg       *config.Config
	conn      net.Conn
	inbox     chan *frame.Frame
	connected atomic.Bool

	outMu sync.Mutex
	queue []frame.Frame

	log logger.Logger
}

// NewTCP creates a TCP transport for the configured wire endpoint
func NewTCP(cfg *config.Config, log logger.Logger) Transport {
	return &tcpTransport{
		cfg:   cfg,
		inbox: make(chan *frame.Frame, config.QueueCapacity),
		log:   log.WithComponent("TRANSPORT"),
	}
}

// Connect dials the wire endpoint and starts the read loop.
// Idempotent after success.
func (t *tcpTransport) Connect(ctx context.Context) error {
	if t.connected.Load() {
		return nil
	}

	dialer := net.Dialer{Timeout: t.cfg.Transport.DialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", t.cfg.Transport.Address)
	if err != nil {
		return fmt.Errorf("%w %s: %w", errors.ErrFailedToDial, t.cfg.Transport.Address, err)
	}

	t.conn = conn
	t.connected.Store(true)

	t.log.Info().Str("address", t.cfg.Transport.Address).Msg("Connected to wire endpoint")

	go t.readLoop()

	return nil
}

// readLoop decodes frames off the connection into the inbox
func (t *tcpTransport) readLoop() {
	reader := bufio.NewReader(t.conn)

	for {
		f, err := frame.Decode(reader)
		if err != nil {
			if err == io.EOF || !t.connected.Load() {
				t.log.Info().Msg("Wire connection closed")
				t.connected.Store(false)

				return
			}

			if errors.Is(err, errors.ErrBadMagic) || errors.Is(err, errors.ErrPayloadTooLarge) {
				t.log.Warn().Err(err).Msg("Dropping undecodable frame")
				continue
			}

			t.log.Error().Err(err).Msg("Read failed")
			t.connected.Store(false)

			return
		}

		select {
		case t.inbox <- f:
		default:
			t.log.Warn().Msg("Inbox full, dropping frame")
		}
	}
}

// Receive returns the next inbound frame, or nil when none is pending
func (t *tcpTransport) Receive() (*frame.Frame, error) {
	if !t.connected.Load() {
		return nil, errors.ErrNotConnected
	}

	select {
	case f := <-t.inbox:
		return f, nil
	default:
		return nil, nil
	}
}

// Push enqueues a frame for the next Send
func (t *tcpTransport) Push(f frame.Frame) {
	t.outMu.Lock()
	defer t.outMu.Unlock()

	t.queue = append(t.queue, f)
}

// Send flushes all queued frames to the wire
func (t *tcpTransport) Send() error {
	t.outMu.Lock()
	defer t.outMu.Unlock()

	if len(t.queue) == 0 {
		return nil
	}

	if !t.connected.Load() {
		return errors.ErrNotConnected
	}

	var buf bytes.Buffer

	for _, f := range t.queue {
		if err := frame.Encode(&buf, f); err != nil {
			return fmt.Errorf("%w: %w", errors.ErrFailedToSend, err)
		}
	}

	t.queue = t.queue[:0]

	if _, err := t.conn.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToSend, err)
	}

	return nil
}

// Close shuts the connection down
func (t *tcpTransport) Close() error {
	if !t.connected.Load() {
		return nil
	}

	t.connected.Store(false)

	return t.conn.Close()
}
