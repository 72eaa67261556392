package discovery

import "go.uber.org/fx"

// Module provides the component discovery
var Module = fx.Options(
	fx.Provide(
		NewDiscovery,
	),
)
