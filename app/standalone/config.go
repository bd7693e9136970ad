package standalone

import (
	"github.com/lambda-feedback/edgeroute/internal/server"
	"github.com/lambda-feedback/edgeroute/origin"
)

type Config struct {
	// HttpConfig represents the configuration for the HTTP server.
	HttpConfig server.HttpConfig `conf:"http"`

	// Origin selects the store requests are served from.
	Origin origin.Config `conf:"origin"`
}
