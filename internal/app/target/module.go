package target

import "go.uber.org/fx"

// Module provides the target probe
var Module = fx.Options(
	fx.Provide(NewProbe),
)
