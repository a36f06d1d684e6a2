package mission

import (
	"liftoff/internal/app/frame"
)

// landingState deploys the parachute and waits for touchdown.
type landingState struct {
	parachuteDeployed bool
	landingComplete   bool

	parachuteID uint16
}

func (s *landingState) Name() string { return StateLanding }

func (s *landingState) Enter(c *Context) {
	s.parachuteDeployed = false
	s.landingComplete = false

	id, err := c.registry.RelayID(RelayParachute)
	if err != nil {
		c.log.Error().Err(err).Msg("Parachute not configured")
		return
	}

	s.parachuteID = id

	c.emitter.OpenRelay(s.parachuteID)
}

func (s *landingState) OnFeed(c *Context, f *frame.Frame) {
	applyFeed(c, f)

	altitude, _ := c.registry.Sensor(SensorAltitude)
	if altitude <= 0 {
		s.landingComplete = true
		c.Transition(EventTouchdown)
	}
}

func (s *landingState) OnAck(c *Context, f *frame.Frame) {
	if f.DeviceKind == frame.KindRelay && f.DeviceID == s.parachuteID {
		s.parachuteDeployed = true
		c.log.Info().Msg("Parachute deployed")
	}
}

func (s *landingState) OnNack(c *Context, f *frame.Frame) {
	c.emitter.Retry(*f, s.Name(), false)
}

func (s *landingState) OnService(c *Context, f *frame.Frame) {}
