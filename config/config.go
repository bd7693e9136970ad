package config

import (
	"github.com/lambda-feedback/edgeroute/rewrite"
	"github.com/lambda-feedback/edgeroute/util/conf"
)

// EnvPrefix is the prefix of env vars read into the config.
const EnvPrefix = "EDGE_"

// DefaultConfig holds the defaults for Config.
var DefaultConfig = conf.DefaultConfig{
	"log_level":              "info",
	"log_format":             "production",
	"rewrite.default_object": rewrite.DefaultObject,
}

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Rewrite is the configuration of the edge handlers
	Rewrite rewrite.Config `conf:"rewrite"`
}
