package app

import (
	"github.com/lambda-feedback/edgeroute/config"
	"github.com/lambda-feedback/edgeroute/internal/shell"
	"github.com/lambda-feedback/edgeroute/util/conf"
	"github.com/lambda-feedback/edgeroute/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	config, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	if err := config.Rewrite.Validate(); err != nil {
		return nil, err
	}

	sharedModule := fx.Module(
		"shared",
		// provide global config
		fx.Supply(config),
		// provide rewrite config
		fx.Supply(config.Rewrite),
	)

	return shell.New(log, sharedModule), nil
}
