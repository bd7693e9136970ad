package origin

import (
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrNoStore = errors.New("either an origin bucket or directory is required")

// NewStore creates the store selected by the config.
func NewStore(config Config, log *zap.Logger) (Store, error) {
	switch {
	case config.Bucket != "":
		log.Info("serving origin from s3",
			zap.String("bucket", config.Bucket),
			zap.String("prefix", config.Prefix),
		)
		return NewS3Store(config)
	case config.Dir != "":
		log.Info("serving origin from directory", zap.String("dir", config.Dir))
		return NewDirStore(config.Dir), nil
	default:
		return nil, ErrNoStore
	}
}

func Module(config Config) fx.Option {
	return fx.Module(
		"origin",
		// provide origin config
		fx.Supply(config),
		// provide store
		fx.Provide(NewStore),
	)
}
