package standalone

import (
	"net/http"

	"github.com/lambda-feedback/edgeroute/internal/server"
)

func NewEdgeRoute(handler *EdgeHandler) server.HttpHandlerResult {
	return server.AsHttpHandler("/", handler)
}

func NewHealthRoute() server.HttpHandlerResult {
	return server.AsHttpHandler("/_edge/health", http.HandlerFunc(HealthHandler))
}
