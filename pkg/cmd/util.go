package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/osdevtools/efscript/pkg/config"
	"github.com/osdevtools/efscript/pkg/eftool"
	"github.com/osdevtools/efscript/pkg/executor"
	"github.com/osdevtools/efscript/pkg/scriptgen"
	"github.com/urfave/cli/v3"
)

// resolveConfig loads the configuration for a run. An explicit --env
// always wins. Otherwise the working directory is scanned for candidate
// env files: exactly one is used silently, several trigger the
// interactive selector, and none falls through to the default path so
// the not-found error carries the setup hint.
func resolveConfig(cmd *cli.Command) (*config.Config, error) {
	if cmd.IsSet("env") {
		return config.LoadFile(cmd.String("env"))
	}

	sel := config.NewSelector(".", &config.TerminalPrompter{In: os.Stdin, Out: out(cmd)})

	candidates, err := sel.Candidates()
	if err != nil {
		return nil, err
	}

	switch len(candidates) {
	case 0:
		return config.LoadFile(cmd.String("env"))
	case 1:
		return config.LoadFile(filepath.Join(sel.Dir, candidates[0]))
	default:
		path, err := sel.Select()
		if err != nil {
			return nil, err
		}
		return config.LoadFile(path)
	}
}

func newGenerator(ctx context.Context, cmd *cli.Command, r executor.Runner) (*scriptgen.Generator, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	if c := cmd.String("context"); c != "" {
		cfg.Context = c
	}

	tool, err := eftool.Detect(ctx, r, cfg.RepoPath)
	if err != nil {
		return nil, err
	}

	return &scriptgen.Generator{
		Config: cfg,
		Tool:   tool,
		Runner: r,
		Out:    out(cmd),
	}, nil
}

func out(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}
