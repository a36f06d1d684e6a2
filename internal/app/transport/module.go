package transport

import (
	"go.uber.org/fx"

	"liftoff/internal/config"
	"liftoff/internal/config/logger"
)

// Module provides the fx dependency injection options for the transport package
var Module = fx.Module("transport",
	fx.Provide(func(cfg *config.Config, log logger.Logger) Transport {
		return NewTCP(cfg, log)
	}),
)
