package hardware

import "go.uber.org/fx"

// Module provides the fx dependency injection options for the hardware package
var Module = fx.Options(
	fx.Provide(NewRegistry),
)
