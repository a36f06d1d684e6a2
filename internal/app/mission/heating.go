package mission

import (
	"liftoff/internal/app/frame"
)

// heatingState raises oxidizer tank pressure with the heater relay
// until it reaches the ignition target.
type heatingState struct {
	heating        bool
	targetPressure float64

	heaterID uint16
}

func (s *heatingState) Name() string { return StateHeatingOxidizer }

func (s *heatingState) Enter(c *Context) {
	s.heating = false
	s.targetPressure = heatingPressureTarget

	id, err := c.registry.RelayID(RelayOxidizerHeater)
	if err != nil {
		c.log.Error().Err(err).Msg("Oxidizer heater not configured")
		return
	}

	s.heaterID = id

	c.emitter.OpenRelay(s.heaterID)
}

func (s *heatingState) OnFeed(c *Context, f *frame.Frame) {
	name := applyFeed(c, f)

	if name != SensorOxidizerPressure {
		return
	}

	pressure, _ := c.registry.Sensor(SensorOxidizerPressure)
	if pressure >= s.targetPressure && s.heating {
		c.log.Info().Float("pressure", pressure).Msg("Target pressure reached, heater off")
		c.emitter.CloseRelay(s.heaterID)
	}
}

func (s *heatingState) OnAck(c *Context, f *frame.Frame) {
	if f.DeviceKind != frame.KindRelay || f.DeviceID != s.heaterID {
		return
	}

	switch f.Operation {
	case frame.OpRelayOpen:
		s.heating = true
	case frame.OpRelayClose:
		c.Transition(EventPressurized)
	}
}

func (s *heatingState) OnNack(c *Context, f *frame.Frame) {
	c.emitter.Retry(*f, s.Name(), false)
}

func (s *heatingState) OnService(c *Context, f *frame.Frame) {}
