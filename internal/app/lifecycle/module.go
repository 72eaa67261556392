package lifecycle

import "go.uber.org/fx"

// Module provides the browser process group lifecycle
var Module = fx.Options(
	fx.Provide(NewLifecycle),
)
