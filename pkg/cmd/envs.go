package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/osdevtools/efscript/pkg/config"
	"github.com/urfave/cli/v3"
)

// envs creates the envs command for selecting the environment file
// interactively. The choice is remembered across runs; pressing enter at
// the prompt reuses it.
func envs() *cli.Command {
	return &cli.Command{
		Name:  "envs",
		Usage: "Select the environment configuration file",
		Description: `List the environment files in the working directory and pick one.

The selection is recorded in a marker file and becomes the default for
future runs when --env is not given.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sel := config.NewSelector(".", &config.TerminalPrompter{In: os.Stdin, Out: out(cmd)})

			path, err := sel.Select()
			if err != nil {
				return err
			}

			fmt.Fprintf(out(cmd), "Selected environment: %s\n", path)
			return nil
		},
	}
}
