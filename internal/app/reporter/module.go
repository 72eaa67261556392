package reporter

import "go.uber.org/fx"

// Module provides the configured reporters
var Module = fx.Options(
	fx.Provide(NewReporter),
)
