package eftool

import (
	"context"

	"github.com/osdevtools/efscript/pkg/executor"
	"github.com/pkg/errors"
)

// Mode indicates how the migration CLI is installed.
type Mode string

const (
	// ModeGlobal runs the globally installed dotnet-ef tool.
	ModeGlobal Mode = "global"

	// ModeLocal runs dotnet-ef through the project-local tool manifest.
	ModeLocal Mode = "local"
)

// ErrNotFound is returned when neither installation responds to a
// version probe.
var ErrNotFound = errors.New("dotnet-ef not found")

// Tool builds dotnet-ef invocations for the detected installation mode.
type Tool struct {
	mode Mode
}

// New creates a Tool for a known installation mode. Production code uses
// Detect; New exists for tests and callers that already know the mode.
func New(mode Mode) *Tool {
	return &Tool{mode: mode}
}

// Detect probes for dotnet-ef, preferring a global installation over a
// project-local one. Probes run in repoDir since local tool manifests
// are repository-scoped.
func Detect(ctx context.Context, r executor.Runner, repoDir string) (*Tool, error) {
	if executor.TryOutput(ctx, r, repoDir, "dotnet", "ef", "--version") != "" {
		return New(ModeGlobal), nil
	}

	if executor.TryOutput(ctx, r, repoDir, "dotnet", "tool", "run", "dotnet-ef", "--version") != "" {
		return New(ModeLocal), nil
	}

	return nil, errors.Wrap(ErrNotFound,
		`install globally with "dotnet tool install -g dotnet-ef", or as a local tool with "dotnet new tool-manifest && dotnet tool install dotnet-ef"`)
}

// Mode returns the detected installation mode.
func (t *Tool) Mode() Mode {
	return t.mode
}

// Command prefixes the mode-specific launcher to the given sub-command
// arguments, returning the full command line to execute.
func (t *Tool) Command(args ...string) []string {
	prefix := []string{"dotnet", "ef"}
	if t.mode == ModeLocal {
		prefix = []string{"dotnet", "tool", "run", "dotnet-ef"}
	}

	return append(prefix, args...)
}

// AddMigrationArgs builds the sub-command arguments for creating a new
// migration.
func AddMigrationArgs(name, project, startup, dbContext string) []string {
	args := []string{
		"migrations", "add", name,
		"--project", project,
		"--startup-project", startup,
	}
	if dbContext != "" {
		args = append(args, "--context", dbContext)
	}

	return args
}

// ScriptArgs builds the sub-command arguments for generating a SQL
// script between two migrations.
func ScriptArgs(from, to, project, startup, output, dbContext string, idempotent bool) []string {
	args := []string{
		"migrations", "script", from, to,
		"--project", project,
		"--startup-project", startup,
		"--output", output,
	}
	if dbContext != "" {
		args = append(args, "--context", dbContext)
	}
	if idempotent {
		args = append(args, "--idempotent")
	}

	return args
}
