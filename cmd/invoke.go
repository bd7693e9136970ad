package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lambda-feedback/edgeroute/app/lambda"
	"github.com/lambda-feedback/edgeroute/config"
	"github.com/lambda-feedback/edgeroute/edge"
	"github.com/lambda-feedback/edgeroute/rewrite"
	"github.com/lambda-feedback/edgeroute/util/conf"
	"github.com/lambda-feedback/edgeroute/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	invokeCmdDescription = `The invoke command runs a single Lambda@Edge event through
the edge handlers and prints the resulting request or
response. The event is read from the file given as argument,
or from stdin if no file or '-' is given.

This allows debugging events captured from the distribution
without deploying the function.`
	invokeCmd = &cli.Command{
		Name:        "invoke",
		Usage:       "Handle a single event and print the result.",
		ArgsUsage:   "[event.json]",
		Description: invokeCmdDescription,
		Action:      invokeAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "lambda-event-type",
				Usage:    "force the trigger of the event. Options: viewer-request, origin-response.",
				EnvVars:  []string{"LAMBDA_EVENT_TYPE"},
				Category: "lambda",
			},
		},
	}
)

var errTooManyArgs = errors.New("expected at most one event file")

func invokeAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	if ctx.NArg() > 1 {
		return errTooManyArgs
	}

	cfg, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return err
	}

	lambdaCfg, err := conf.Parse[lambda.Config](conf.ParseOptions{
		Cli:       ctx,
		EnvPrefix: config.EnvPrefix,
		Log:       log,
	})
	if err != nil {
		return err
	}

	data, err := readEvent(ctx)
	if err != nil {
		return err
	}

	handler, err := newEventHandler(cfg.Rewrite, lambdaCfg.EventType, log)
	if err != nil {
		return err
	}

	result, err := handler.Handle(ctx.Context, data)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(ctx.App.Writer)
	enc.SetIndent("", "  ")

	return enc.Encode(result)
}

// newEventHandler wires the event handler without starting a runtime.
func newEventHandler(cfg rewrite.Config, eventType edge.EventType, log *zap.Logger) (*lambda.EventHandler, error) {
	viewer, err := rewrite.NewViewerRequestHandler(rewrite.ViewerRequestParams{
		Config: cfg,
		Log:    log,
	})
	if err != nil {
		return nil, err
	}

	origin, err := rewrite.NewOriginResponseHandler(rewrite.OriginResponseParams{
		Config: cfg,
		Log:    log,
	})
	if err != nil {
		return nil, err
	}

	dispatcher := rewrite.NewDispatcher(rewrite.DispatcherParams{
		Config:         rewrite.DispatcherConfig{EventType: eventType},
		ViewerRequest:  viewer,
		OriginResponse: origin,
		Log:            log,
	})

	return lambda.NewEventHandler(lambda.EventHandlerParams{
		Dispatcher: dispatcher,
		Logger:     log,
	})
}

func readEvent(ctx *cli.Context) ([]byte, error) {
	name := ctx.Args().First()
	if name == "" || name == "-" {
		return io.ReadAll(ctx.App.Reader)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read event: %w", err)
	}

	return data, nil
}

func init() {
	rootApp.Commands = append(rootApp.Commands, invokeCmd)
}
