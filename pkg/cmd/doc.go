// Package cmd provides the CLI commands for efscript.
//
// Each command is implemented as a function returning a *cli.Command,
// following the urfave/cli/v3 pattern, and registered through the fx
// module with the "commands" group. Commands share the global --env and
// --context flags and report errors once at the top level.
package cmd
