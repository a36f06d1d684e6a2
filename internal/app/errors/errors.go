package errors

import (
	"errors"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrNoDevicesConfigured = errors.New("no devices configured")
	ErrDuplicateDeviceID   = errors.New("duplicate device id")
	ErrInvalidTickInterval = errors.New("tick interval must be greater than 0")
	ErrInvalidClosedPos    = errors.New("servo closed_pos out of range")

	ErrUnknownDevice = errors.New("device not found in registry")
	ErrUnknownSensor = errors.New("sensor not found in registry")

	ErrNotConnected     = errors.New("transport not connected")
	ErrTransportTimeout = errors.New("transport receive timed out")
	ErrFailedToDial     = errors.New("failed to dial wire endpoint")
	ErrFailedToSend     = errors.New("failed to send frames")

	ErrBadMagic          = errors.New("bad frame magic")
	ErrShortFrame        = errors.New("short frame")
	ErrPayloadTooLarge   = errors.New("frame payload too large")
	ErrInvalidPosition   = errors.New("servo position out of range")
	ErrUnknownAction     = errors.New("no handler for action")
	ErrInvalidTransition = errors.New("invalid mission transition")
)

var (
	As  = errors.As
	Is  = errors.Is
	New = errors.New
)
