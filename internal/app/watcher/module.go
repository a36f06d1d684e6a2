package watcher

import (
	"go.uber.org/fx"

	"liftoff/internal/app/mission"
	"liftoff/internal/app/telemetry"
	"liftoff/internal/config"
	"liftoff/internal/config/logger"
)

// Module provides the fx dependency injection options for the watcher package
var Module = fx.Module("watcher",
	fx.Provide(func(cfg *config.Config, bus telemetry.Bus, ctx *mission.Context, log logger.Logger) (Watcher, error) {
		return NewWatcher(cfg, bus, ctx.ReloadDevices, log)
	}),
)
