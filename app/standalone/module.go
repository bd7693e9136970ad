package standalone

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/edgeroute/internal/server"
	"github.com/lambda-feedback/edgeroute/origin"
	"github.com/lambda-feedback/edgeroute/rewrite"
	"github.com/lambda-feedback/edgeroute/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"serve",
		// rename logger for module
		logging.DecorateLogger("serve"),
		// provide edge handlers
		rewrite.Module(),
		// provide origin store
		origin.Module(config.Origin),
		// provide handlers
		fx.Provide(NewEdgeHandler),
		fx.Provide(NewEdgeRoute),
		fx.Provide(NewHealthRoute),
		// provide server
		server.Module(config.HttpConfig),
	)
}
