package mission

import (
	"context"

	"github.com/looplab/fsm"
)

// looplabFSM adapts the fsm library to the context's needs: firing an
// event and reading the committed state
type looplabFSM struct {
	fsm *fsm.FSM
}

func (l *looplabFSM) fire(event string) error {
	return l.fsm.Event(context.Background(), event)
}

func (l *looplabFSM) current() string {
	return l.fsm.Current()
}

// FSM states
const (
	StateIdle            = "idle"
	StateLaunch          = "launch"
	StateFuel            = "fuel"
	StateHeatingOxidizer = "heating_oxidizer"
	StateIgnition        = "ignition"
	StateFlight          = "flight"
	StateLanding         = "landing"
	StateLanded          = "landed"
	StateAbort           = "abort"
)

// FSM events
const (
	EventArm           = "arm"
	EventOxidizerReady = "oxidizer_ready"
	EventFuelLoaded    = "fuel_loaded"
	EventPressurized   = "pressurized"
	EventReheat        = "reheat"
	EventLiftoff       = "liftoff"
	EventApogee        = "apogee"
	EventTouchdown     = "touchdown"
	EventAbort         = "abort"
)

// newMissionFSM builds the legal transition graph. Entry hooks are not
// fsm callbacks; the context installs the new state and runs its entry
// hook after the transition commits.
func newMissionFSM() *fsm.FSM {
	return fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: EventArm, Src: []string{StateIdle}, Dst: StateLaunch},
			{Name: EventOxidizerReady, Src: []string{StateLaunch}, Dst: StateFuel},
			{Name: EventFuelLoaded, Src: []string{StateFuel}, Dst: StateHeatingOxidizer},
			{Name: EventPressurized, Src: []string{StateHeatingOxidizer}, Dst: StateIgnition},
			{Name: EventReheat, Src: []string{StateIgnition}, Dst: StateHeatingOxidizer},
			{Name: EventLiftoff, Src: []string{StateIgnition}, Dst: StateFlight},
			{Name: EventApogee, Src: []string{StateFlight}, Dst: StateLanding},
			{Name: EventTouchdown, Src: []string{StateLanding}, Dst: StateLanded},
			{Name: EventAbort, Src: []string{StateIgnition}, Dst: StateAbort},
		},
		fsm.Callbacks{},
	)
}

// newState creates a fresh state value for an FSM destination
func newState(name string) state {
	switch name {
	case StateIdle:
		return &idleState{}
	case StateLaunch:
		return &launchState{}
	case StateFuel:
		return &fuelState{}
	case StateHeatingOxidizer:
		return &heatingState{}
	case StateIgnition:
		return &ignitionState{}
	case StateFlight:
		return &flightState{}
	case StateLanding:
		return &landingState{}
	case StateLanded:
		return &landedState{}
	case StateAbort:
		return &abortState{}
	default:
		return &idleState{}
	}
}
