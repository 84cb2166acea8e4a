package scriptgen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osdevtools/efscript/pkg/catalog"
	"github.com/osdevtools/efscript/pkg/config"
	"github.com/osdevtools/efscript/pkg/consts"
	"github.com/osdevtools/efscript/pkg/eftool"
	"github.com/osdevtools/efscript/pkg/executor"
	"github.com/osdevtools/efscript/pkg/ticket"
	"github.com/pkg/errors"
)

type (
	// Generator ties configuration, the migration tool adapter and the
	// process runner together into the create/script workflows.
	Generator struct {
		Config *config.Config
		Tool   *eftool.Tool
		Runner executor.Runner

		// Out receives operator-facing progress and streamed process
		// output.
		Out io.Writer
	}

	// Options controls a single script generation run.
	Options struct {
		// From and To override the migration identifiers. Both must be
		// set for the override to take effect.
		From string
		To   string

		// Ticket overrides the derived ticket for the output filename.
		Ticket string

		// Revert swaps from/to after they are computed, producing a
		// script that undoes the latest migration.
		Revert bool

		// Idempotent requests a script safe to re-run against a database
		// already partially at the target state.
		Idempotent bool

		// SkipBuild skips the build step before script generation.
		SkipBuild bool

		// JustCreated marks a run immediately following a fresh create.
		// With it, insufficient history is a warning instead of an error.
		JustCreated bool
	}
)

// CreateMigration invokes the migration tool's add command with the
// given name, streaming its output live. A non-zero exit aborts with the
// command failure; nothing created by the tool is rolled back.
func (g *Generator) CreateMigration(ctx context.Context, name string) error {
	slog.Info("Creating migration", "name", name, "repo", g.Config.RepoPath)

	fmt.Fprintln(g.Out, "\n=== Creating New Migration ===")
	fmt.Fprintf(g.Out, "Repo:            %s\n", g.Config.RepoPath)
	fmt.Fprintf(g.Out, "Project:         %s\n", g.Config.ProjectPath)
	fmt.Fprintf(g.Out, "Startup:         %s\n", g.Config.StartupProject)
	fmt.Fprintf(g.Out, "Migration name:  %s\n", name)
	if g.Config.Context != "" {
		fmt.Fprintf(g.Out, "Context:         %s\n", g.Config.Context)
	}
	fmt.Fprintln(g.Out, "==============================")

	args := eftool.AddMigrationArgs(name, g.Config.ProjectPath, g.Config.StartupProject, g.Config.Context)
	if err := g.run(ctx, g.Tool.Command(args...)); err != nil {
		return err
	}

	fmt.Fprintf(g.Out, "\n✅ Migration created: %s\n", name)
	return nil
}

// GenerateScript produces a SQL script between two migrations.
//
// Without overrides the range is the second-to-last and last catalog
// entries. Revert swaps from/to after the range is computed, so the
// ticket is always derived from the forward latest migration - a revert
// script is named after the migration it undoes.
func (g *Generator) GenerateScript(ctx context.Context, opts Options) error {
	cat, err := catalog.Load(g.Config.MigrationsDir)
	if err != nil {
		return err
	}

	override := opts.From != "" && opts.To != ""
	if cat.Len() < 2 && !override {
		if opts.JustCreated {
			fmt.Fprintf(g.Out, "\nOnly %d migration(s) in %s; nothing to script yet.\n", cat.Len(), g.Config.MigrationsDir)
			return nil
		}
		return errors.Wrapf(catalog.ErrInsufficientHistory, "in %s", g.Config.MigrationsDir)
	}

	latest := catalog.Migration{Timestamp: "latest", Name: "latest"}
	if m, ok := cat.Latest(); ok {
		latest = m
	}

	fromID, toID := opts.From, opts.To
	if !override {
		from, to, err := cat.Range()
		if err != nil {
			return errors.Wrapf(err, "in %s", g.Config.MigrationsDir)
		}
		fromID, toID = from.ID(), to.ID()
	}

	tk := opts.Ticket
	if tk == "" {
		tk = ticket.Extract(g.gitBranch(ctx), latest.Name, latest.Timestamp)
	}

	if opts.Revert {
		fromID, toID = toID, fromID
	}

	name := tk + ".sql"
	if opts.Revert {
		name = tk + "_revert.sql"
	}
	output := filepath.Join(g.Config.ScriptsDir, name)

	if err := os.MkdirAll(g.Config.ScriptsDir, consts.ModeDir); err != nil {
		return errors.Wrapf(err, "failed to create scripts dir: %s", g.Config.ScriptsDir)
	}

	g.writePlan(fromID, toID, tk, output)

	if !opts.SkipBuild {
		if err := g.run(ctx, []string{"dotnet", "build", g.Config.StartupProject}); err != nil {
			return errors.Wrap(err, "build failed")
		}
	}

	args := eftool.ScriptArgs(fromID, toID, g.Config.ProjectPath, g.Config.StartupProject, output, g.Config.Context, opts.Idempotent)
	if err := g.run(ctx, g.Tool.Command(args...)); err != nil {
		// One retry with --no-build: the most common failure is a stale
		// build from a startup project the tool can't rebuild itself.
		slog.Warn("Script generation failed, retrying with --no-build", "error", err)

		retry := append(args, "--no-build")
		if err := g.run(ctx, g.Tool.Command(retry...)); err != nil {
			return err
		}
	}

	fmt.Fprintf(g.Out, "\n✅ SQL script generated: %s\n", output)
	return nil
}

func (g *Generator) writePlan(fromID, toID, tk, output string) {
	fmt.Fprintln(g.Out, "\n=== Generating SQL Script ===")
	fmt.Fprintf(g.Out, "Repo:            %s\n", g.Config.RepoPath)
	fmt.Fprintf(g.Out, "Project:         %s\n", g.Config.ProjectPath)
	fmt.Fprintf(g.Out, "Startup:         %s\n", g.Config.StartupProject)
	fmt.Fprintf(g.Out, "Migrations dir:  %s\n", g.Config.MigrationsDir)
	fmt.Fprintf(g.Out, "Scripts dir:     %s\n", g.Config.ScriptsDir)
	fmt.Fprintf(g.Out, "From migration:  %s\n", fromID)
	fmt.Fprintf(g.Out, "To migration:    %s\n", toID)
	fmt.Fprintf(g.Out, "Ticket:          %s\n", tk)
	fmt.Fprintf(g.Out, "Output SQL:      %s\n", output)
	if g.Config.Context != "" {
		fmt.Fprintf(g.Out, "Context:         %s\n", g.Config.Context)
	}
	fmt.Fprintln(g.Out, "=============================")
}

func (g *Generator) run(ctx context.Context, cmdline []string) error {
	return g.Runner.Run(ctx, g.Config.RepoPath, g.Out, cmdline[0], cmdline[1:]...)
}

// gitBranch returns the current branch name, or "" when the repo state
// can't be queried (detached head, not a repo, git missing).
func (g *Generator) gitBranch(ctx context.Context) string {
	return executor.TryOutput(ctx, g.Runner, g.Config.RepoPath, "git", "rev-parse", "--abbrev-ref", "HEAD")
}
