package cmd

import (
	"context"
	"log/slog"

	"github.com/osdevtools/efscript/pkg/executor"
	"github.com/osdevtools/efscript/pkg/scriptgen"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type scriptParams struct {
	fx.In

	Runner executor.Runner
}

// script creates the script command for generating SQL from the
// migration history.
//
// By default the range is the second-to-last and last migrations found
// in the configured migrations directory. Both --from and --to must be
// given for an explicit range to take effect.
//
// Example usage:
//
//	# Script the latest migration
//	efscript script
//
//	# Revert script for the latest migration
//	efscript script --revert
//
//	# Explicit range with an idempotent script
//	efscript script --from 20240101000000_Init --to 20240202000000_AddTable --idempotent
func script(p scriptParams) *cli.Command {
	return &cli.Command{
		Name:  "script",
		Usage: "Generate a SQL script from the migration history",
		Description: `Generate a forward (or revert) SQL script between two migrations.

The output file is written to the configured scripts directory and named
after the ticket derived from the current branch name, falling back to
the latest migration's name and then its raw timestamp. A failing
generation is retried exactly once with the tool's no-build flag.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "from",
				Usage: "override the 'from' migration id",
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "override the 'to' migration id",
			},
			&cli.StringFlag{
				Name:  "ticket",
				Usage: "override the ticket used for the output filename",
			},
			&cli.BoolFlag{
				Name:  "revert",
				Usage: "generate a script that reverts the latest migration",
			},
			&cli.BoolFlag{
				Name:  "idempotent",
				Usage: "generate a script safe to re-run",
			},
			&cli.BoolFlag{
				Name:  "skip-build",
				Usage: "skip the build step before generation",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			slog.Info("Generating SQL script",
				"revert", cmd.Bool("revert"),
				"idempotent", cmd.Bool("idempotent"),
			)

			gen, err := newGenerator(ctx, cmd, p.Runner)
			if err != nil {
				return err
			}

			return gen.GenerateScript(ctx, scriptgen.Options{
				From:       cmd.String("from"),
				To:         cmd.String("to"),
				Ticket:     cmd.String("ticket"),
				Revert:     cmd.Bool("revert"),
				Idempotent: cmd.Bool("idempotent"),
				SkipBuild:  cmd.Bool("skip-build"),
			})
		},
	}
}
