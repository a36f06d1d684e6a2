package config

import "time"

// Application metadata
const (
	AppName = "liftoff"
	Version = "0.3.1"

	ConfigFile = "mission.yaml"
)

// Wire endpoint defaults
const (
	DefaultEndpoint = "127.0.0.1:3000"
	DialTimeout     = 2 * time.Second
	ReceiveTimeout  = 100 * time.Millisecond
)

// Dispatch loop settings
const (
	TickInterval  = 100 * time.Millisecond
	QueueCapacity = 64
)

// Logging defaults
const (
	LogLevel  = "info"
	LogFormat = "console"
)

// Telemetry settings
const (
	EventBufferSize = 256
	StatsInterval   = 2 * time.Second
)

// Watch settings
const (
	WatchDebounce = 500 * time.Millisecond
)

// Dashboard settings
const (
	DashboardRefresh = 250 * time.Millisecond
	EventLogDepth    = 8
)
