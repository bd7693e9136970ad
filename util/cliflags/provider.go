// Package cliflags implements a koanf.Provider over the flags set on a
// cli.Context.
package cliflags

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/maps"
	"github.com/urfave/cli/v2"
)

var ErrReadBytes = errors.New("cli provider does not support ReadBytes")

// CLIFlags provides the explicitly set flags of a cli.Context as a map.
type CLIFlags struct {
	values map[string]any
}

// Provider collects the flags set on ctx, from both the app and the current
// command. rename maps a flag name to a config key; flags it maps to an
// empty key are skipped. A non-empty delim unflattens nested keys.
func Provider(ctx *cli.Context, delim string, rename func(string) string) *CLIFlags {
	known := make(map[string]cli.Flag)

	register := func(flags []cli.Flag) {
		for _, flag := range flags {
			known[flag.Names()[0]] = flag
		}
	}

	register(ctx.App.VisibleFlags())
	if ctx.Command != nil {
		register(ctx.Command.VisibleFlags())
	}

	values := make(map[string]any)

	for _, name := range ctx.FlagNames() {
		flag, ok := known[name]
		if !ok || !ctx.IsSet(name) {
			continue
		}

		value, err := flagValue(ctx, flag)
		if err != nil {
			continue
		}

		key := name
		if rename != nil {
			key = rename(name)
		}
		if key == "" {
			continue
		}

		values[key] = value
	}

	if delim != "" {
		values = maps.Unflatten(values, delim)
	}

	return &CLIFlags{values: values}
}

func (p *CLIFlags) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytes
}

func (p *CLIFlags) Read() (map[string]any, error) {
	return p.values, nil
}

func flagValue(ctx *cli.Context, flag cli.Flag) (any, error) {
	name := flag.Names()[0]

	switch flag.(type) {
	case *cli.StringFlag:
		return ctx.String(name), nil
	case *cli.StringSliceFlag:
		return ctx.StringSlice(name), nil
	case *cli.PathFlag:
		return ctx.Path(name), nil
	case *cli.IntFlag:
		return ctx.Int(name), nil
	case *cli.IntSliceFlag:
		return ctx.IntSlice(name), nil
	case *cli.Int64Flag:
		return ctx.Int64(name), nil
	case *cli.Int64SliceFlag:
		return ctx.Int64Slice(name), nil
	case *cli.BoolFlag:
		return ctx.Bool(name), nil
	case *cli.Float64Flag:
		return ctx.Float64(name), nil
	case *cli.Float64SliceFlag:
		return ctx.Float64Slice(name), nil
	case *cli.DurationFlag:
		return ctx.Duration(name), nil
	default:
		return nil, fmt.Errorf("unsupported flag type %T", flag)
	}
}
