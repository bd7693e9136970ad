package server

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/edgeroute/util/logging"
)

// Module serves every handler in the "handlers" group on the configured
// address for the lifetime of the fx application.
func Module(config HttpConfig) fx.Option {
	return fx.Module("server",
		logging.DecorateLogger("http"),
		fx.Supply(config),
		fx.Provide(NewLifecycleServer),
		fx.Invoke(func(*HttpServer) {}),
	)
}
