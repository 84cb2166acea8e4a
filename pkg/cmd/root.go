package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osdevtools/efscript/pkg/consts"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates and executes the main efscript CLI application with the
// given version and command-line arguments.
//
// The application exposes two global flags shared by all commands:
//   - --env, -e: the environment configuration file (dotenv format)
//   - --context: the DbContext name when a project has several
//
// Any command error is reported once at the top level and the process
// exits non-zero; there is no partial-failure recovery beyond the
// documented no-build retry inside script generation.
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "efscript",
		Usage: "Generate SQL scripts from EF Core migrations",
		Description: `efscript wraps the dotnet-ef CLI to create migrations and generate
forward or revert SQL scripts between two migrations, naming the output
after the ticket found in the current branch or migration name.`,
		Version: p.Version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "env",
				Aliases:     []string{"e"},
				Usage:       "the environment configuration file",
				Sources:     cli.EnvVars("EFSCRIPT_ENV"),
				Value:       consts.DefaultEnvFile,
				DefaultText: consts.DefaultEnvFile,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.StringFlag{
				Name:  "context",
				Usage: "DbContext name (if multiple contexts exist)",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}
