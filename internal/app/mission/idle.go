package mission

import (
	"liftoff/internal/app/frame"
)

// idleState safes the pad: everything closed and de-energized before
// the mission may arm.
type idleState struct{}

func (s *idleState) Name() string { return StateIdle }

// Enter closes every relay and servo whose last-known value is not the
// closed equivalent
func (s *idleState) Enter(c *Context) {
	c.log.Info().Msg("Safing pad: closing open relays and servos")

	s.safe(c)
}

// safe emits close commands for open devices and reports whether the
// pad was already clean
func (s *idleState) safe(c *Context) bool {
	clean := true

	for _, name := range c.registry.RelayNames() {
		value, _ := c.registry.Relay(name)
		if value != frame.RelayStateClosed {
			clean = false

			if id, err := c.registry.RelayID(name); err == nil {
				c.log.Info().Str("relay", name).Msg("Closing open relay")
				c.emitter.SafeCloseRelay(id)
			}
		}
	}

	for _, name := range c.registry.ServoNames() {
		position, _ := c.registry.Servo(name)
		closedPos, _ := c.registry.ServoClosedPos(name)

		if position != closedPos {
			clean = false

			if id, err := c.registry.ServoID(name); err == nil {
				c.log.Info().Str("servo", name).Msg("Closing open servo")
				c.emitter.SafeCloseServo(id)
			}
		}
	}

	return clean
}

// arm re-checks the pad and transitions to Launch when clean.
// Open devices get their close commands re-emitted instead.
func (s *idleState) arm(c *Context) {
	if !s.safe(c) {
		c.log.Warn().Msg("Arm refused: pad not safed, closes re-emitted")
		return
	}

	c.log.Info().Msg("Pad safed, arming")
	c.Transition(EventArm)
}

func (s *idleState) OnFeed(c *Context, f *frame.Frame) {
	applyFeed(c, f)
}

func (s *idleState) OnAck(c *Context, f *frame.Frame) {}

// OnNack echoes the frame back unchanged
func (s *idleState) OnNack(c *Context, f *frame.Frame) {
	c.emitter.Emit(*f)
}

// OnService treats a command addressed to the controller as an arm
// request from the ground station
func (s *idleState) OnService(c *Context, f *frame.Frame) {
	if f.Destination == frame.BoardRocket {
		c.log.Info().Str("frame", f.String()).Msg("Arm requested over the wire")
		s.arm(c)
	}
}
