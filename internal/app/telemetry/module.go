package telemetry

import (
	"go.uber.org/fx"

	"liftoff/internal/config"
)

// Module provides the fx dependency injection options for the telemetry package
var Module = fx.Module("telemetry",
	fx.Provide(func(cfg *config.Config) Bus {
		return NewBus(cfg.Telemetry.Buffer)
	}),
	fx.Provide(NewMetrics),
)
