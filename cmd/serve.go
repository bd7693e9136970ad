package cmd

import (
	"github.com/lambda-feedback/edgeroute/app"
	"github.com/lambda-feedback/edgeroute/app/standalone"
	"github.com/lambda-feedback/edgeroute/config"
	"github.com/lambda-feedback/edgeroute/util/conf"
	"github.com/lambda-feedback/edgeroute/util/logging"
	"github.com/urfave/cli/v2"
)

var (
	serveCmdDescription = `The serve command starts a http server emulating the CDN
	distribution, with both edge handlers attached. Objects are
	served from a local directory or an S3 bucket, which allows
	previewing branches without deploying the functions.

	The command will launch the http server and blocks indefin-
	itely, processing incoming http requests.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start a http server emulating the edge.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The host to listen on.",
				Value:    "localhost",
				Category: "http",
				EnvVars:  []string{"HTTP_HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The port to listen on.",
				Value:    8080,
				Category: "http",
				EnvVars:  []string{"HTTP_PORT"},
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "Enable HTTP/2 cleartext upgrade.",
				Value:    false,
				Category: "http",
				EnvVars:  []string{"HTTP_H2C"},
			},
			&cli.PathFlag{
				Name:     "origin-dir",
				Usage:    "The directory to serve objects from.",
				Category: "origin",
				EnvVars:  []string{"ORIGIN_DIR"},
			},
			&cli.StringFlag{
				Name:     "origin-bucket",
				Usage:    "The S3 bucket to serve objects from. Takes precedence over --origin-dir.",
				Category: "origin",
				EnvVars:  []string{"ORIGIN_BUCKET"},
			},
			&cli.StringFlag{
				Name:     "origin-region",
				Usage:    "The AWS region of the bucket.",
				Category: "origin",
				EnvVars:  []string{"ORIGIN_REGION", "AWS_REGION"},
			},
			&cli.StringFlag{
				Name:     "origin-prefix",
				Usage:    "The key prefix of the branch folders in the bucket.",
				Category: "origin",
				EnvVars:  []string{"ORIGIN_PREFIX"},
			},
		},
	}
)

func serveAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	cfg, err := conf.Parse[standalone.Config](conf.ParseOptions{
		Cli: ctx,
		CliMap: map[string]string{
			"host":          "http.host",
			"port":          "http.port",
			"h2c":           "http.h2c",
			"origin-dir":    "origin.dir",
			"origin-bucket": "origin.bucket",
			"origin-region": "origin.region",
			"origin-prefix": "origin.prefix",
		},
		Defaults: conf.DefaultConfig{
			"http.host": "localhost",
			"http.port": 8080,
		},
		EnvPrefix: config.EnvPrefix,
		FileName:  ctx.Path("config"),
		Log:       log,
	})
	if err != nil {
		return err
	}

	return app.Run(ctx.Context, standalone.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}
