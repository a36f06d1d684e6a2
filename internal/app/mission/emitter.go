package mission

import (
	"fmt"

	"liftoff/internal/app/errors"
	"liftoff/internal/app/frame"
	"liftoff/internal/app/telemetry"
	"liftoff/internal/app/transport"
	"liftoff/internal/config/logger"
)

// Emitter constructs and sends well-formed SERVICE frames. Every frame
// it emits carries source=ROCKET, destination=SOFTWARE, data_type=FLOAT.
type Emitter struct {
	transport transport.Transport
	bus       telemetry.Bus
	metrics   *telemetry.Metrics
	log       logger.Logger
}

// NewEmitter creates a command emitter
func NewEmitter(t transport.Transport, bus telemetry.Bus, metrics *telemetry.Metrics, log logger.Logger) *Emitter {
	return &Emitter{
		transport: t,
		bus:       bus,
		metrics:   metrics,
		log:       log.WithComponent("EMITTER"),
	}
}

// ServoPosition commands a servo to the given position (0 = fully open)
func (e *Emitter) ServoPosition(id uint16, pos float64) error {
	if pos < 0 || pos > 100 {
		return fmt.Errorf("%w: %.1f", errors.ErrInvalidPosition, pos)
	}

	e.Emit(frame.Frame{
		Source:      frame.BoardRocket,
		Destination: frame.BoardSoftware,
		Priority:    frame.PriorityHigh,
		Action:      frame.ActionService,
		DeviceKind:  frame.KindServo,
		DeviceID:    id,
		DataType:    frame.TypeFloat,
		Operation:   frame.OpServoPosition,
		Payload:     []float64{pos},
	})

	return nil
}

// OpenRelay energizes a relay
func (e *Emitter) OpenRelay(id uint16) {
	e.Emit(frame.Frame{
		Source:      frame.BoardRocket,
		Destination: frame.BoardSoftware,
		Priority:    frame.PriorityHigh,
		Action:      frame.ActionService,
		DeviceKind:  frame.KindRelay,
		DeviceID:    id,
		DataType:    frame.TypeFloat,
		Operation:   frame.OpRelayOpen,
	})
}

// CloseRelay de-energizes a relay
func (e *Emitter) CloseRelay(id uint16) {
	e.Emit(frame.Frame{
		Source:      frame.BoardRocket,
		Destination: frame.BoardSoftware,
		Priority:    frame.PriorityHigh,
		Action:      frame.ActionService,
		DeviceKind:  frame.KindRelay,
		DeviceID:    id,
		DataType:    frame.TypeFloat,
		Operation:   frame.OpRelayClose,
	})
}

// SafeCloseServo emits the low-priority close used while safing the pad
func (e *Emitter) SafeCloseServo(id uint16) {
	e.Emit(frame.Frame{
		Source:      frame.BoardRocket,
		Destination: frame.BoardSoftware,
		Priority:    frame.PriorityLow,
		Action:      frame.ActionService,
		DeviceKind:  frame.KindServo,
		DeviceID:    id,
		DataType:    frame.TypeFloat,
		Operation:   frame.OpServoClose,
	})
}

// SafeCloseRelay emits the low-priority de-energize used while safing the pad
func (e *Emitter) SafeCloseRelay(id uint16) {
	e.Emit(frame.Frame{
		Source:      frame.BoardRocket,
		Destination: frame.BoardSoftware,
		Priority:    frame.PriorityLow,
		Action:      frame.ActionService,
		DeviceKind:  frame.KindRelay,
		DeviceID:    id,
		DataType:    frame.TypeFloat,
		Operation:   frame.OpRelayClose,
	})
}

// Retry re-emits the SERVICE a NACK refers to, with source and
// destination swapped. The payload is dropped unless keepPayload is
// set (the ignition sequence preserves it).
func (e *Emitter) Retry(n frame.Frame, stateName string, keepPayload bool) {
	retry := frame.Frame{
		Source:      n.Destination,
		Destination: n.Source,
		Priority:    frame.PriorityHigh,
		Action:      frame.ActionService,
		DeviceKind:  n.DeviceKind,
		DeviceID:    n.DeviceID,
		DataType:    n.DataType,
		Operation:   n.Operation,
	}

	if keepPayload {
		retry.Payload = n.Payload
	}

	e.metrics.Retry()
	e.bus.Publish(telemetry.Event{
		Type: telemetry.EventRetryEmitted,
		Data: telemetry.RetryEmittedData{State: stateName, Frame: retry},
	})

	e.Emit(retry)
}

// Emit pushes a frame to the transport and flushes it
func (e *Emitter) Emit(f frame.Frame) {
	e.transport.Push(f)

	if err := e.transport.Send(); err != nil {
		e.log.Error().Err(err).Str("frame", f.String()).Msg("Send failed")
		return
	}

	e.metrics.FrameSent(f.Action.String())
	e.bus.Publish(telemetry.Event{
		Type: telemetry.EventFrameSent,
		Data: telemetry.FrameData{Frame: f},
	})

	e.log.Debug().Str("frame", f.String()).Msg("Frame sent")
}
