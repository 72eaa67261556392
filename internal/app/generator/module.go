package generator

import "go.uber.org/fx"

// Module provides the declaration generator
var Module = fx.Options(
	fx.Provide(NewGenerator),
)
