package mission

import (
	"math"

	"liftoff/internal/app/frame"
)

// launchState loads oxidizer: open the intake, close it when the tank
// reports full, and hand over to fuel loading once tank pressure
// settles near the fill target.
type launchState struct {
	oxidizerFueling bool
	fuelingComplete bool
	targetLevel     float64
	targetPressure  float64

	intakeID uint16
}

func (s *launchState) Name() string { return StateLaunch }

func (s *launchState) Enter(c *Context) {
	s.oxidizerFueling = false
	s.fuelingComplete = false
	s.targetLevel = targetOxidizerLevel
	s.targetPressure = fillPressureTarget

	id, err := c.registry.ServoID(ServoOxidizerIntake)
	if err != nil {
		c.log.Error().Err(err).Msg("Oxidizer intake not configured")
		return
	}

	s.intakeID = id

	if err := c.emitter.ServoPosition(s.intakeID, 0); err == nil {
		s.oxidizerFueling = true
	}
}

func (s *launchState) OnFeed(c *Context, f *frame.Frame) {
	name := applyFeed(c, f)

	switch name {
	case SensorOxidizerLevel:
		level, _ := c.registry.Sensor(SensorOxidizerLevel)
		if level >= s.targetLevel && s.oxidizerFueling {
			c.log.Info().Float("level", level).Msg("Oxidizer tank full, closing intake")
			_ = c.emitter.ServoPosition(s.intakeID, frame.ServoClosedPos)
		}
	case SensorOxidizerPressure:
		pressure, _ := c.registry.Sensor(SensorOxidizerPressure)
		if s.fuelingComplete && math.Abs(pressure-s.targetPressure) < fillPressureBand {
			c.log.Info().Float("pressure", pressure).Msg("Oxidizer settled at fill pressure")
			c.Transition(EventOxidizerReady)
		}
	}
}

// OnAck marks oxidizer loading complete once the intake confirms closed
func (s *launchState) OnAck(c *Context, f *frame.Frame) {
	if f.DeviceKind == frame.KindServo &&
		f.DeviceID == s.intakeID &&
		f.Operation == frame.OpServoPosition &&
		len(f.Payload) > 0 &&
		f.Payload[0] == frame.ServoClosedPos {
		s.fuelingComplete = true
		c.log.Info().Msg("Oxidizer intake confirmed closed")
	}
}

func (s *launchState) OnNack(c *Context, f *frame.Frame) {
	c.emitter.Retry(*f, s.Name(), false)
}

func (s *launchState) OnService(c *Context, f *frame.Frame) {}
