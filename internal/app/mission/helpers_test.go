package mission

import (
	gocontext "context"
	"sync"
	"time"

	"liftoff/internal/app/frame"
	"liftoff/internal/app/hardware"
	"liftoff/internal/app/telemetry"
	"liftoff/internal/config"
	"liftoff/internal/config/logger"
)

// fakeTransport queues inbound frames and records everything sent
type fakeTransport struct {
	mu      sync.Mutex
	inbound []*frame.Frame
	pending []frame.Frame
	sent    []frame.Frame
}

func (t *fakeTransport) Connect(ctx gocontext.Context) error { return nil }

func (t *fakeTransport) Receive() (*frame.Frame, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.inbound) == 0 {
		return nil, nil
	}

	f := t.inbound[0]
	t.inbound = t.inbound[1:]

	return f, nil
}

func (t *fakeTransport) Push(f frame.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pending = append(t.pending, f)
}

func (t *fakeTransport) Send() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sent = append(t.sent, t.pending...)
	t.pending = nil

	return nil
}

func (t *fakeTransport) Close() error { return nil }

func (t *fakeTransport) inject(f frame.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.inbound = append(t.inbound, &f)
}

func (t *fakeTransport) sentFrames() []frame.Frame {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]frame.Frame, len(t.sent))
	copy(out, t.sent)

	return out
}

func (t *fakeTransport) lastSent() (frame.Frame, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.sent) == 0 {
		return frame.Frame{}, false
	}

	return t.sent[len(t.sent)-1], true
}

// fakeClock is a manually advanced clock
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// scheduledTimer is one recorded After call
type scheduledTimer struct {
	delay time.Duration
	fn    func()
}

// fakeTimers records one-shot callbacks for manual firing
type fakeTimers struct {
	scheduled []scheduledTimer
	expired   chan func()
}

func newFakeTimers() *fakeTimers {
	return &fakeTimers{expired: make(chan func(), 16)}
}

func (t *fakeTimers) After(d time.Duration, fn func()) {
	t.scheduled = append(t.scheduled, scheduledTimer{delay: d, fn: fn})
}

func (t *fakeTimers) Expired() <-chan func() { return t.expired }

// fire runs the i-th scheduled callback as the dispatch loop would
func (t *fakeTimers) fire(i int) {
	t.scheduled[i].fn()
}

// harness bundles a context with its fakes
type harness struct {
	ctx    *Context
	trans  *fakeTransport
	clock  *fakeClock
	timers *fakeTimers
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()

	cfg.Devices.Servo = map[string]*config.Servo{
		ServoFuelIntake:     {DeviceID: 0, ClosedPos: 100},
		ServoOxidizerIntake: {DeviceID: 1, ClosedPos: 100},
		ServoFuelMain:       {DeviceID: 2, ClosedPos: 100},
		ServoOxidizerMain:   {DeviceID: 3, ClosedPos: 100},
	}
	cfg.Devices.Relay = map[string]*config.Relay{
		RelayOxidizerHeater: {DeviceID: 0},
		RelayIgniter:        {DeviceID: 1},
		RelayParachute:      {DeviceID: 2},
	}

	return cfg
}

func newHarness() *harness {
	cfg := testConfig()
	trans := &fakeTransport{}
	clock := newFakeClock()
	timers := newFakeTimers()
	log := logger.NewNop()

	ctx := NewContext(
		cfg,
		hardware.NewRegistry(cfg),
		trans,
		timers,
		clock,
		telemetry.NewNoOpBus(),
		telemetry.NewMetrics(log),
		log,
	)

	return &harness{ctx: ctx, trans: trans, clock: clock, timers: timers}
}

func (h *harness) init() {
	_ = h.ctx.Init(gocontext.Background())
}

// deliver injects a frame and routes it through the dispatch path
func (h *harness) deliver(f frame.Frame) {
	h.trans.inject(f)
	h.ctx.handleFrame()
}

func (h *harness) feedSensor(id uint16, value float64) {
	h.deliver(frame.Frame{
		Source:      frame.BoardSoftware,
		Destination: frame.BoardRocket,
		Priority:    frame.PriorityLow,
		Action:      frame.ActionFeed,
		DeviceKind:  frame.KindSensor,
		DeviceID:    id,
		DataType:    frame.TypeFloat,
		Payload:     []float64{value},
	})
}

func (h *harness) feedDevice(kind frame.DeviceKind, id uint16, value float64) {
	h.deliver(frame.Frame{
		Source:      frame.BoardSoftware,
		Destination: frame.BoardRocket,
		Priority:    frame.PriorityLow,
		Action:      frame.ActionFeed,
		DeviceKind:  kind,
		DeviceID:    id,
		DataType:    frame.TypeFloat,
		Payload:     []float64{value},
	})
}

func (h *harness) ack(kind frame.DeviceKind, id uint16, op frame.Operation, payload ...float64) {
	h.deliver(frame.Frame{
		Source:      frame.BoardSoftware,
		Destination: frame.BoardRocket,
		Priority:    frame.PriorityHigh,
		Action:      frame.ActionAck,
		DeviceKind:  kind,
		DeviceID:    id,
		DataType:    frame.TypeFloat,
		Operation:   op,
		Payload:     payload,
	})
}

func (h *harness) nack(kind frame.DeviceKind, id uint16, op frame.Operation, payload ...float64) {
	h.deliver(frame.Frame{
		Source:      frame.BoardSoftware,
		Destination: frame.BoardRocket,
		Priority:    frame.PriorityHigh,
		Action:      frame.ActionNack,
		DeviceKind:  kind,
		DeviceID:    id,
		DataType:    frame.TypeFloat,
		Operation:   op,
		Payload:     payload,
	})
}

// arm drives Idle -> Launch through the operator path
func (h *harness) arm() {
	h.ctx.Arm()
	h.ctx.drain()
}

// countFrames counts sent frames matching a predicate
func countFrames(frames []frame.Frame, match func(frame.Frame) bool) int {
	count := 0

	for _, f := range frames {
		if match(f) {
			count++
		}
	}

	return count
}
