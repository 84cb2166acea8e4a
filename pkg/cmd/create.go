package cmd

import (
	"context"
	"log/slog"

	"github.com/osdevtools/efscript/pkg/executor"
	"github.com/osdevtools/efscript/pkg/scriptgen"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type createParams struct {
	fx.In

	Runner executor.Runner
}

// create creates the create command for adding a new migration.
//
// After the migration is added, a SQL script for it is generated in the
// same run unless --no-script is given. With only the fresh migration on
// disk there is nothing to diff against, so that case is a warning
// rather than an error.
//
// Example usage:
//
//	# Add a migration and script it
//	efscript create AddOrdersTable
//
//	# Add a migration only
//	efscript create AddOrdersTable --no-script
func create(p createParams) *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new migration",
		ArgsUsage: "NAME",
		Description: `Add a new migration via the migration CLI, then generate its SQL script.

The migration name is passed through to the external tool untouched.
Script generation can be skipped with --no-script.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-script",
				Usage: "skip script generation after creating the migration",
			},
			&cli.StringFlag{
				Name:  "ticket",
				Usage: "override the ticket used for the output filename",
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
			name := cmd.Args().First()
			if name == "" {
				return errors.New("migration name is required")
			}

			slog.Info("Creating migration", "name", name)

			gen, err := newGenerator(ctx, cmd, p.Runner)
			if err != nil {
				return err
			}

			if err := gen.CreateMigration(ctx, name); err != nil {
				return err
			}

			if cmd.Bool("no-script") {
				return nil
			}

			return gen.GenerateScript(ctx, scriptgen.Options{
				Ticket:      cmd.String("ticket"),
				Idempotent:  cmd.Bool("idempotent"),
				SkipBuild:   cmd.Bool("skip-build"),
				JustCreated: true,
			})
		},
	}
}
