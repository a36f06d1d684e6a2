package app

import (
	"go.uber.org/fx"

	"liftoff/internal/app/hardware"
	"liftoff/internal/app/mission"
	"liftoff/internal/app/monitor"
	"liftoff/internal/app/telemetry"
	"liftoff/internal/app/timer"
	"liftoff/internal/app/transport"
	"liftoff/internal/app/watcher"
)

// Module provides the fx dependency injection options for the app package
var Module = fx.Options(
	hardware.Module,
	mission.Module,
	monitor.Module,
	telemetry.Module,
	timer.Module,
	transport.Module,
	watcher.Module,
	fx.Provide(NewApp),
	fx.Invoke(Register),
)
