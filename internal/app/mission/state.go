package mission

import (
	"liftoff/internal/app/frame"
)

// state is one mission phase. Exactly one state is active at a time;
// it owns its local bookkeeping and is discarded on transition.
type state interface {
	Name() string
	Enter(c *Context)
	OnFeed(c *Context, f *frame.Frame)
	OnAck(c *Context, f *frame.Frame)
	OnNack(c *Context, f *frame.Frame)
	OnService(c *Context, f *frame.Frame)
}

// applyFeed is the default FEED behavior shared by every state: update
// the registry entry the frame addresses from payload[0]. Returns the
// resolved device name, or "" when the frame is unusable.
func applyFeed(c *Context, f *frame.Frame) string {
	if len(f.Payload) == 0 {
		c.log.Debug().Str("frame", f.String()).Msg("FEED without payload")
		return ""
	}

	name, err := c.registry.SetFromFeed(f.DeviceKind, f.DeviceID, f.Payload[0])
	if err != nil {
		c.log.Warn().Err(err).Msg("FEED for unknown device")
		return ""
	}

	c.log.Debug().Str("device", name).Float("value", f.Payload[0]).Msg("Telemetry updated")

	return name
}
