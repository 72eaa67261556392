package scenario

import "go.uber.org/fx"

// Module provides the scenario executor
var Module = fx.Options(
	fx.Provide(NewExecutor),
)
