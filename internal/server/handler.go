package server

import (
	"net/http"

	"go.uber.org/fx"
)

// HttpHandler binds a handler to a mux pattern.
type HttpHandler struct {
	Pattern string
	Handler http.Handler
}

// HttpHandlerResult adds a route to the server's "handlers" value group.
type HttpHandlerResult struct {
	fx.Out

	Route *HttpHandler `group:"handlers"`
}

func AsHttpHandler(pattern string, handler http.Handler) HttpHandlerResult {
	return HttpHandlerResult{Route: &HttpHandler{Pattern: pattern, Handler: handler}}
}
