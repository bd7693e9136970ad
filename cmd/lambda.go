package cmd

import (
	"github.com/lambda-feedback/edgeroute/app"
	"github.com/lambda-feedback/edgeroute/app/lambda"
	"github.com/lambda-feedback/edgeroute/config"
	"github.com/lambda-feedback/edgeroute/util/conf"
	"github.com/lambda-feedback/edgeroute/util/logging"
	"github.com/urfave/cli/v2"
)

var (
	lambdaCmdDescription = `The lambda command starts the edge handlers as an AWS Lambda
runtime interface client. Deploy the binary as a Lambda@Edge
function and attach it to the viewer-request and origin-response
triggers of the distribution.

The trigger is read from the config of every event, unless
it is forced with --lambda-event-type.

The command will start the AWS runtime interface client and
blocks indefinitely, processing incoming AWS Lambda events.`
	lambdaCmd = &cli.Command{
		Name:        "lambda",
		Usage:       "Run the AWS Lambda@Edge handler",
		Description: lambdaCmdDescription,
		Action:      lambdaAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "lambda-event-type",
				Usage:    "force the trigger of the function. Options: viewer-request, origin-response.",
				EnvVars:  []string{"LAMBDA_EVENT_TYPE"},
				Category: "lambda",
			},
		},
	}
)

func lambdaAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	cfg, err := conf.Parse[lambda.Config](conf.ParseOptions{
		Cli:       ctx,
		EnvPrefix: config.EnvPrefix,
		Log:       log,
	})
	if err != nil {
		return err
	}

	log.Info("starting AWS Lambda handler")

	return app.Run(ctx.Context, lambda.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, lambdaCmd)
}
