package browser

import "go.uber.org/fx"

// Module provides the browser launcher
var Module = fx.Options(
	fx.Provide(NewLauncher),
)
