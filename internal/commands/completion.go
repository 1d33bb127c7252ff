package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/planar/internal/store/presets"
)

// AxisCompleter returns a ShellCompleteFunc that suggests the axes with a
// saved range preset as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func AxisCompleter(store func() *presets.Store) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		configs, err := store().List(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, cfg := range configs {
			_, _ = fmt.Fprintln(w, cfg.Axis)
		}
	}
}
