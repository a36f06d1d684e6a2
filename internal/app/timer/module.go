package timer

import (
	"go.uber.org/fx"

	"liftoff/internal/config"
)

// Module provides the fx dependency injection options for the timer package
var Module = fx.Module("timer",
	fx.Provide(NewClock),
	fx.Provide(func() Service {
		return NewService(config.QueueCapacity)
	}),
)
