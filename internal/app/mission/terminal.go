package mission

import (
	"liftoff/internal/app/frame"
	"liftoff/internal/app/telemetry"
)

// landedState is terminal: the mission is complete.
type landedState struct{}

func (s *landedState) Name() string { return StateLanded }

func (s *landedState) Enter(c *Context) {
	c.log.Info().Msg("Landed, mission complete")

	c.bus.Publish(telemetry.Event{
		Type:     telemetry.EventMissionComplete,
		Critical: true,
	})
}

func (s *landedState) OnFeed(c *Context, f *frame.Frame) {
	applyFeed(c, f)
}

func (s *landedState) OnAck(c *Context, f *frame.Frame)     {}
func (s *landedState) OnNack(c *Context, f *frame.Frame)    {}
func (s *landedState) OnService(c *Context, f *frame.Frame) {}

// abortState is terminal: the core stops commanding and leaves
// escalation to the surrounding system.
type abortState struct{}

func (s *abortState) Name() string { return StateAbort }

func (s *abortState) Enter(c *Context) {
	reason := c.abortCause()

	c.log.Error().Str("reason", reason).Msg("Mission aborted")
	c.metrics.Abort()

	c.bus.Publish(telemetry.Event{
		Type:     telemetry.EventMissionAborted,
		Data:     telemetry.MissionAbortedData{Reason: reason},
		Critical: true,
	})
}

func (s *abortState) OnFeed(c *Context, f *frame.Frame) {
	applyFeed(c, f)
}

func (s *abortState) OnAck(c *Context, f *frame.Frame)     {}
func (s *abortState) OnNack(c *Context, f *frame.Frame)    {}
func (s *abortState) OnService(c *Context, f *frame.Frame) {}
