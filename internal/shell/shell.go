package shell

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Shell runs an fx application until it receives a shutdown signal.
type Shell struct {
	log     *zap.Logger
	options []fx.Option
}

// New creates a shell that provides the given options to every
// application it runs.
func New(log *zap.Logger, options ...fx.Option) *Shell {
	return &Shell{
		log:     log,
		options: options,
	}
}

// Run starts an application built from the shell options and the given
// options, and blocks until it is told to stop. A non-zero exit code is
// reported as *ExitError.
func (s *Shell) Run(ctx context.Context, options ...fx.Option) error {
	// flush the logger once the application is done
	defer s.log.Sync()

	// the app context is cancelled when the shell returns, which stops
	// everything started with it
	appCtx, cancelApp := context.WithCancel(ctx)
	defer cancelApp()

	fxApp := s.createFxApp(appCtx, options...)

	startCtx, cancelStart := context.WithTimeout(ctx, fxApp.StartTimeout())
	defer cancelStart()

	if err := fxApp.Start(startCtx); err != nil {
		s.log.Error("failed to start", zap.Error(err))
		return NewExitError(1)
	}

	sig := <-fxApp.Wait()

	s.log.Debug("stopping", zap.Stringer("signal", sig.Signal))

	stopCtx, cancelStop := context.WithTimeout(ctx, fxApp.StopTimeout())
	defer cancelStop()

	if err := fxApp.Stop(stopCtx); err != nil {
		s.log.Error("failed to stop", zap.Error(err))
		return NewExitError(1)
	}

	if sig.ExitCode != 0 {
		return NewExitError(sig.ExitCode)
	}

	return nil
}

func (s *Shell) createFxApp(ctx context.Context, options ...fx.Option) *fx.App {
	return fx.New(
		// inject the app context
		fx.Supply(fx.Annotate(ctx, fx.As(new(context.Context)))),

		// inject the logger
		fx.Supply(s.log),

		// route fx' own logs through the logger
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: s.log.Named("fx")}
		}),

		// shared options
		fx.Options(s.options...),

		// run options
		fx.Options(options...),
	)
}
