package mission

import (
	"go.uber.org/fx"
)

// Module provides the fx dependency injection options for the mission package
var Module = fx.Module("mission",
	fx.Provide(NewContext),
)
