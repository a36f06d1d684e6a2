package mission

import (
	gocontext "context"
	"sync"
	"time"

	"liftoff/internal/app/errors"
	"liftoff/internal/app/frame"
	"liftoff/internal/app/hardware"
	"liftoff/internal/app/telemetry"
	"liftoff/internal/app/timer"
	"liftoff/internal/app/transport"
	"liftoff/internal/config"
	"liftoff/internal/config/logger"
)

// Snapshot is the read-only view exposed to observers
type Snapshot struct {
	State    string
	Registry hardware.Snapshot
}

// Context owns the registry, transport, timers and the active state.
// All mission mutation happens on the dispatch goroutine: inbound
// frames are handled there, and timer and operator callbacks are
// funnelled into the same loop.
type Context struct {
	cfg      *config.Config
	registry *hardware.Registry
	trans    transport.Transport
	timers   timer.Service
	clock    timer.Clock
	bus      telemetry.Bus
	metrics  *telemetry.Metrics
	emitter  *Emitter
	log      logger.Logger

	machine *looplabFSM
	queue   chan func(*Context)

	mu          sync.RWMutex
	state       state
	abortReason string
}

// NewContext creates a mission context around its collaborators
func NewContext(
	cfg *config.Config,
	registry *hardware.Registry,
	trans transport.Transport,
	timers timer.Service,
	clock timer.Clock,
	bus telemetry.Bus,
	metrics *telemetry.Metrics,
	log logger.Logger,
) *Context {
	return &Context{
		cfg:      cfg,
		registry: registry,
		trans:    trans,
		timers:   timers,
		clock:    clock,
		bus:      bus,
		metrics:  metrics,
		emitter:  NewEmitter(trans, bus, metrics, log),
		log:      log.WithComponent("MISSION"),
		machine:  &looplabFSM{fsm: newMissionFSM()},
		queue:    make(chan func(*Context), config.QueueCapacity),
	}
}

// Init connects the transport and enters Idle
func (c *Context) Init(ctx gocontext.Context) error {
	if err := c.trans.Connect(ctx); err != nil {
		return err
	}

	c.install(newState(StateIdle), "")

	return nil
}

// Run drives the dispatch loop until the context ends
func (c *Context) Run(ctx gocontext.Context) {
	c.log.Info().Msg("Mission loop started")

	ticker := time.NewTicker(c.cfg.Loop.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Info().Msg("Mission loop interrupted")
			return
		case fn := <-c.timers.Expired():
			c.execute(func(*Context) { fn() })
		case fn := <-c.queue:
			c.execute(fn)
		case <-ticker.C:
			c.drain()
			c.handleFrame()
		}
	}
}

// drain executes every due timer and operator callback
func (c *Context) drain() {
	for {
		select {
		case fn := <-c.timers.Expired():
			c.execute(func(*Context) { fn() })
		case fn := <-c.queue:
			c.execute(fn)
		default:
			return
		}
	}
}

// Enqueue schedules fn to run on the dispatch goroutine
func (c *Context) Enqueue(fn func(*Context)) {
	select {
	case c.queue <- fn:
	default:
		c.log.Warn().Msg("Dispatch queue full, dropping callback")
	}
}

// execute runs a callback, keeping panics out of the loop
func (c *Context) execute(fn func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Msgf("Recovered panic in dispatch callback: %v", r)
		}
	}()

	fn(c)
}

// handleFrame pulls at most one inbound frame and routes it to the
// active state by action kind
func (c *Context) handleFrame() {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Msgf("Recovered panic in frame handler: %v", r)
		}
	}()

	f, err := c.trans.Receive()
	if err != nil {
		if errors.Is(err, errors.ErrTransportTimeout) {
			c.log.Debug().Msg("Receive timed out")
		} else {
			c.log.Warn().Err(err).Msg("Receive failed")
		}

		return
	}

	if f == nil {
		return
	}

	c.metrics.FrameReceived(f.Action.String())
	c.bus.Publish(telemetry.Event{
		Type: telemetry.EventFrameReceived,
		Data: telemetry.FrameData{Frame: *f},
	})

	st := c.activeState()

	switch f.Action {
	case frame.ActionFeed:
		st.OnFeed(c, f)
	case frame.ActionAck:
		st.OnAck(c, f)
	case frame.ActionNack:
		st.OnNack(c, f)
	case frame.ActionService:
		st.OnService(c, f)
	default:
		c.log.Warn().Str("frame", f.String()).Err(errors.ErrUnknownAction).Msg("Dropping frame")
	}
}

// Transition drives the FSM with the given event and, when legal,
// installs a fresh state and runs its entry hook exactly once
func (c *Context) Transition(event string) {
	from := c.StateName()

	if err := c.machine.fire(event); err != nil {
		c.log.Error().Err(errors.ErrInvalidTransition).Str("from", from).Str("event", event).Msg("Transition rejected")
		return
	}

	c.install(newState(c.machine.current()), from)
}

// Abort records the cause and transitions to Abort
func (c *Context) Abort(reason string) {
	c.mu.Lock()
	c.abortReason = reason
	c.mu.Unlock()

	c.Transition(EventAbort)
}

// install swaps the active state and invokes its entry hook
func (c *Context) install(next state, from string) {
	c.mu.Lock()
	c.state = next
	c.mu.Unlock()

	if from != "" {
		c.log.Info().Str("from", from).Str("to", next.Name()).Msg("State transition")
	} else {
		c.log.Info().Str("state", next.Name()).Msg("Initial state entered")
	}

	c.metrics.SetState(next.Name())
	c.bus.Publish(telemetry.Event{
		Type:     telemetry.EventStateChanged,
		Data:     telemetry.StateChangedData{From: from, To: next.Name()},
		Critical: true,
	})

	next.Enter(c)
}

// Arm is the operator request to leave Idle once the pad is safed.
// It runs on the dispatch goroutine like everything else.
func (c *Context) Arm() {
	c.Enqueue(func(c *Context) {
		idle, ok := c.activeState().(*idleState)
		if !ok {
			c.log.Warn().Str("state", c.StateName()).Msg("Arm ignored outside Idle")
			return
		}

		idle.arm(c)
	})
}

// ReloadDevices reinstalls the device registry from a new config.
// Refused outside Idle; an armed mission keeps its registry.
func (c *Context) ReloadDevices(cfg *config.Config) {
	c.Enqueue(func(c *Context) {
		if _, ok := c.activeState().(*idleState); !ok {
			c.log.Warn().Str("state", c.StateName()).Msg("Device reload ignored outside Idle")
			return
		}

		c.registry.Reload(cfg)
		c.log.Info().Msg("Device registry reloaded")
	})
}

// guarded wraps a timer callback so it no-ops once its scheduling
// state has been replaced
func (c *Context) guarded(owner state, fn func(*Context)) func() {
	return func() {
		if c.activeState() != owner {
			return
		}

		fn(c)
	}
}

// StateName returns the active state's name
func (c *Context) StateName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.state == nil {
		return ""
	}

	return c.state.Name()
}

// Snapshot returns a point-in-time view for observers
func (c *Context) Snapshot() Snapshot {
	return Snapshot{
		State:    c.StateName(),
		Registry: c.registry.Snapshot(),
	}
}

func (c *Context) activeState() state {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state
}

func (c *Context) abortCause() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.abortReason
}
