package mission

import (
	"time"

	"liftoff/internal/app/frame"
)

// ignitionState opens both main valves inside a narrow window, checks
// their acknowledgement skew, and only then fires the igniter. Any
// timing miss aborts: unburnt propellant must not pool in the chamber.
type ignitionState struct {
	igniterOn          bool
	ignitionSuccessful bool

	fuelAckTime     time.Time
	oxidizerAckTime time.Time
	igniterTime     time.Time

	fuelMainID     uint16
	oxidizerMainID uint16
	igniterID      uint16
}

func (s *ignitionState) Name() string { return StateIgnition }

func (s *ignitionState) Enter(c *Context) {
	pressure, _ := c.registry.Sensor(SensorOxidizerPressure)

	if pressure < minIgnitionPressure {
		c.log.Warn().Float("pressure", pressure).Msg("Pressure below ignition band, reheating")
		c.Transition(EventReheat)

		return
	}

	if pressure > maxIgnitionPressure {
		c.log.Error().Float("pressure", pressure).Msg("Pressure above ignition band")
		c.Abort("oxidizer pressure above ignition band")

		return
	}

	var err error

	if s.fuelMainID, err = c.registry.ServoID(ServoFuelMain); err != nil {
		c.Abort("fuel main valve not configured")
		return
	}

	if s.oxidizerMainID, err = c.registry.ServoID(ServoOxidizerMain); err != nil {
		c.Abort("oxidizer main valve not configured")
		return
	}

	if s.igniterID, err = c.registry.RelayID(RelayIgniter); err != nil {
		c.Abort("igniter not configured")
		return
	}

	_ = c.emitter.ServoPosition(s.fuelMainID, 0)

	c.timers.After(oxidizerValveDelay, c.guarded(s, func(c *Context) {
		_ = c.emitter.ServoPosition(s.oxidizerMainID, 0)
	}))

	c.timers.After(valveCheckDelay, c.guarded(s, s.checkValveTiming))
}

// checkValveTiming verifies both main valves acknowledged within the
// allowed skew before the igniter may fire
func (s *ignitionState) checkValveTiming(c *Context) {
	if s.fuelAckTime.IsZero() || s.oxidizerAckTime.IsZero() {
		c.Abort("main valve acknowledgement missing")
		return
	}

	skew := s.fuelAckTime.Sub(s.oxidizerAckTime)
	if skew < 0 {
		skew = -skew
	}

	if skew > maxValveAckSkew {
		c.log.Error().Dur("skew", skew).Msg("Main valve acknowledgements out of window")
		c.Abort("main valve acknowledgement skew")

		return
	}

	c.timers.After(igniterDelay, c.guarded(s, s.activateIgniter))
	c.timers.After(igniterCheckDelay, c.guarded(s, s.checkIgniterTiming))
}

// activateIgniter energizes the igniter relay once
func (s *ignitionState) activateIgniter(c *Context) {
	if s.igniterOn {
		return
	}

	c.emitter.OpenRelay(s.igniterID)
}

// checkIgniterTiming aborts when the igniter never confirmed
func (s *ignitionState) checkIgniterTiming(c *Context) {
	if !s.igniterOn {
		c.log.Error().Msg("Igniter not confirmed in time, flooding risk")
		c.Abort("igniter not confirmed in time")

		return
	}

	c.log.Info().Msg("Igniter fired, awaiting lift-off")
}

func (s *ignitionState) OnFeed(c *Context, f *frame.Frame) {
	applyFeed(c, f)

	if !s.igniterOn || s.ignitionSuccessful {
		return
	}

	altitude, _ := c.registry.Sensor(SensorAltitude)
	if altitude > 0 {
		s.ignitionSuccessful = true
		c.log.Info().Float("altitude", altitude).Msg("Lift-off detected")
		c.Transition(EventLiftoff)
	}
}

func (s *ignitionState) OnAck(c *Context, f *frame.Frame) {
	now := c.clock.Now()

	switch f.DeviceKind {
	case frame.KindServo:
		switch f.DeviceID {
		case s.fuelMainID:
			s.fuelAckTime = now
		case s.oxidizerMainID:
			s.oxidizerAckTime = now
		}
	case frame.KindRelay:
		if f.DeviceID == s.igniterID {
			s.igniterOn = true
			s.igniterTime = now
		}
	}
}

// OnNack retries with the original payload preserved; re-sending a
// bare POSITION here would command an unintended target
func (s *ignitionState) OnNack(c *Context, f *frame.Frame) {
	c.emitter.Retry(*f, s.Name(), true)
}

func (s *ignitionState) OnService(c *Context, f *frame.Frame) {}
