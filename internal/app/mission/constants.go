package mission

import "time"

// Logical device names, matching the declarative hardware configuration
const (
	ServoFuelIntake     = "fuel_intake"
	ServoOxidizerIntake = "oxidizer_intake"
	ServoFuelMain       = "fuel_main"
	ServoOxidizerMain   = "oxidizer_main"

	RelayOxidizerHeater = "oxidizer_heater"
	RelayIgniter        = "igniter"
	RelayParachute      = "parachute"

	SensorFuelLevel        = "fuel_level"
	SensorOxidizerLevel    = "oxidizer_level"
	SensorAltitude         = "altitude"
	SensorOxidizerPressure = "oxidizer_pressure"
)

// Fueling and pressure targets, in percent and bar
const (
	targetOxidizerLevel   = 100.0
	targetFuelLevel       = 100.0
	fillPressureTarget    = 30.0
	fillPressureBand      = 5.0
	heatingPressureTarget = 65.0
	minIgnitionPressure   = 40.0
	maxIgnitionPressure   = 65.0
)

// Ignition sequence timing. The oxidizer valve trails the fuel valve,
// the valve check runs before the igniter may fire, and the igniter
// check closes the window where unburnt propellant could flood the
// chamber.
const (
	oxidizerValveDelay = 200 * time.Millisecond
	valveCheckDelay    = 900 * time.Millisecond
	igniterDelay       = 300 * time.Millisecond
	igniterCheckDelay  = 1 * time.Second
	maxValveAckSkew    = 1 * time.Second
)
