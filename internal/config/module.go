package config

import "go.uber.org/fx"

// Module exposes configuration loader for fx graphs. The graph must supply Args.
var Module = fx.Provide(Load)
