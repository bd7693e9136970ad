package shell_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/edgeroute/internal/shell"
)

// shutdownAfterStart shuts the app down shortly after it started.
func shutdownAfterStart(opts ...fx.ShutdownOption) fx.Option {
	return fx.Invoke(func(lc fx.Lifecycle, sd fx.Shutdowner) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go func() {
					time.Sleep(50 * time.Millisecond)
					sd.Shutdown(opts...)
				}()
				return nil
			},
		})
	})
}

func TestShell_Run_StopsWithExitCode(t *testing.T) {
	s := shell.New(zap.NewNop())

	err := s.Run(context.Background(), shutdownAfterStart(fx.ExitCode(3)))

	exitErr, ok := shell.AsExitError(err)
	assert.True(t, ok)
	assert.Equal(t, 3, exitErr.ExitCode)
}

func TestShell_Run_StopsCleanly(t *testing.T) {
	var started bool

	s := shell.New(zap.NewNop(), fx.Invoke(func(ctx context.Context) {
		started = ctx != nil
	}))

	err := s.Run(context.Background(), shutdownAfterStart())

	assert.NoError(t, err)
	assert.True(t, started)
}

func TestShell_Run_StartFails(t *testing.T) {
	s := shell.New(zap.NewNop())

	err := s.Run(context.Background(), fx.Invoke(func() error {
		return assert.AnError
	}))

	exitErr, ok := shell.AsExitError(err)
	assert.True(t, ok)
	assert.Equal(t, 1, exitErr.ExitCode)
}

func TestAsExitError(t *testing.T) {
	wrapped := fmt.Errorf("run: %w", shell.NewExitError(2))

	exitErr, ok := shell.AsExitError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, 2, exitErr.ExitCode)

	_, ok = shell.AsExitError(assert.AnError)
	assert.False(t, ok)
}
