package rewrite

import "go.uber.org/fx"

// Module provides the edge handlers and the event dispatcher.
func Module() fx.Option {
	return fx.Module(
		"rewrite",
		// provide viewer-request handler
		fx.Provide(NewViewerRequestHandler),
		// provide origin-response handler
		fx.Provide(NewOriginResponseHandler),
		// provide dispatcher
		fx.Provide(NewDispatcher),
	)
}
