package mission

import (
	"liftoff/internal/app/frame"
)

// flightState waits for apogee: the first strictly decreasing altitude
// sample.
type flightState struct{}

func (s *flightState) Name() string { return StateFlight }

func (s *flightState) Enter(c *Context) {}

func (s *flightState) OnFeed(c *Context, f *frame.Frame) {
	var prevAltitude float64

	isAltitude := false

	if f.DeviceKind == frame.KindSensor && len(f.Payload) > 0 {
		if name, ok := c.registry.NameOf(frame.KindSensor, f.DeviceID); ok && name == SensorAltitude {
			prevAltitude, _ = c.registry.Sensor(SensorAltitude)
			isAltitude = true
		}
	}

	applyFeed(c, f)

	if isAltitude && f.Payload[0] < prevAltitude {
		c.log.Info().Float("altitude", f.Payload[0]).Msg("Apogee passed")
		c.Transition(EventApogee)
	}
}

func (s *flightState) OnAck(c *Context, f *frame.Frame)     {}
func (s *flightState) OnNack(c *Context, f *frame.Frame)    {}
func (s *flightState) OnService(c *Context, f *frame.Frame) {}
