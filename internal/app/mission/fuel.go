package mission

import (
	"liftoff/internal/app/frame"
)

// fuelState loads fuel through the fuel intake servo.
type fuelState struct {
	fueling     bool
	targetLevel float64

	intakeID uint16
}

func (s *fuelState) Name() string { return StateFuel }

func (s *fuelState) Enter(c *Context) {
	s.fueling = false
	s.targetLevel = targetFuelLevel

	id, err := c.registry.ServoID(ServoFuelIntake)
	if err != nil {
		c.log.Error().Err(err).Msg("Fuel intake not configured")
		return
	}

	s.intakeID = id

	if err := c.emitter.ServoPosition(s.intakeID, 0); err == nil {
		s.fueling = true
	}
}

func (s *fuelState) OnFeed(c *Context, f *frame.Frame) {
	name := applyFeed(c, f)

	if name != SensorFuelLevel {
		return
	}

	level, _ := c.registry.Sensor(SensorFuelLevel)
	if level >= s.targetLevel && s.fueling {
		c.log.Info().Float("level", level).Msg("Fuel tank full, closing intake")

		if err := c.emitter.ServoPosition(s.intakeID, frame.ServoClosedPos); err == nil {
			s.fueling = false
		}
	}
}

// OnAck hands over to oxidizer heating once the fuel intake confirms
// closed
func (s *fuelState) OnAck(c *Context, f *frame.Frame) {
	if f.DeviceKind == frame.KindServo &&
		f.DeviceID == s.intakeID &&
		f.Operation == frame.OpServoPosition &&
		len(f.Payload) > 0 &&
		f.Payload[0] == frame.ServoClosedPos {
		c.Transition(EventFuelLoaded)
	}
}

func (s *fuelState) OnNack(c *Context, f *frame.Frame) {
	c.emitter.Retry(*f, s.Name(), false)
}

func (s *fuelState) OnService(c *Context, f *frame.Frame) {}
