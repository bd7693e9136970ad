package lambda

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/edgeroute/rewrite"
	"github.com/lambda-feedback/edgeroute/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"lambda",
		// provide lambda config
		fx.Supply(config),
		// provide dispatcher config
		fx.Supply(rewrite.DispatcherConfig{EventType: config.EventType}),
		// rename logger for module
		logging.DecorateLogger("lambda"),
		// provide edge handlers
		rewrite.Module(),
		// provide event handler
		fx.Provide(NewEventHandler),
		// provide lambda handler
		fx.Provide(NewLifecycleHandler),
		// invoke lambda handler
		fx.Invoke(func(*LambdaHandler) {}),
	)
}
