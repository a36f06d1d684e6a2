package monitor

import "go.uber.org/fx"

// Module provides the fx dependency injection options for the monitor package
var Module = fx.Options(
	fx.Provide(NewMonitor),
)
