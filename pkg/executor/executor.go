package executor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

type (
	// Runner defines the interface for external process execution used
	// throughout the tool. This interface allows for mock implementations
	// in tests.
	Runner interface {
		// Run executes the command in dir, streaming combined stdout and
		// stderr to w line by line as it is produced. A non-zero exit is
		// reported as a *CommandError.
		Run(ctx context.Context, dir string, w io.Writer, name string, args ...string) error

		// Output executes the command in dir and returns its trimmed stdout.
		Output(ctx context.Context, dir, name string, args ...string) (string, error)
	}

	// Exec is the os/exec backed Runner used outside of tests.
	Exec struct{}

	// CommandError reports a command that ran but exited non-zero.
	CommandError struct {
		Cmd      string
		ExitCode int
	}
)

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed (exit %d): %s", e.ExitCode, e.Cmd)
}

// New creates the default process runner.
func New() *Exec {
	return &Exec{}
}

func (e *Exec) Run(ctx context.Context, dir string, w io.Writer, name string, args ...string) error {
	cmdline := commandLine(name, args)
	fmt.Fprintf(w, "\n> %s\n   (cwd: %s)\n", cmdline, dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrapf(err, "failed to pipe output of %s", name)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "failed to start: %s", cmdline)
	}

	// Consume output incrementally so long-running tools stay visible to
	// the operator rather than dumping everything at exit.
	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}

	// A scan failure (e.g. a line over the buffer cap) must not leave the
	// pipe undrained: the child would block writing and Wait would never
	// return. Keep copying raw bytes until the child closes its end.
	scanErr := scanner.Err()
	if scanErr != nil {
		_, _ = io.Copy(w, pipe)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &CommandError{Cmd: cmdline, ExitCode: exitErr.ExitCode()}
		}
		return errors.Wrapf(err, "failed to run: %s", cmdline)
	}

	if scanErr != nil {
		return errors.Wrapf(scanErr, "failed to stream output of: %s", cmdline)
	}

	return nil
}

func (e *Exec) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		return "", errors.Wrapf(err, "failed to run: %s", commandLine(name, args))
	}

	return strings.TrimSpace(string(out)), nil
}

// TryOutput runs the command and returns its trimmed output, or an empty
// string on any error. Used for probes where failure just means "not
// available".
func TryOutput(ctx context.Context, r Runner, dir, name string, args ...string) string {
	out, err := r.Output(ctx, dir, name, args...)
	if err != nil {
		return ""
	}

	return out
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
