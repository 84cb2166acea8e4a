package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/osdevtools/efscript/pkg/consts"
	"github.com/pkg/errors"
)

var (
	// ErrNoEnvFiles is returned when the selector finds no candidate files.
	ErrNoEnvFiles = errors.New("no environment files found")

	// ErrInvalidSelection is returned for out-of-range or malformed choices,
	// and for an empty choice when no previous selection was recorded.
	ErrInvalidSelection = errors.New("invalid selection")
)

type (
	// Prompter presents candidate environment files to the operator and
	// returns the raw input. It exists so the selection logic can be
	// tested without a terminal.
	Prompter interface {
		Prompt(candidates []string, last string) (string, error)
	}

	// Selector picks one environment file out of the candidates in Dir,
	// remembering the choice in a marker file for the next run.
	Selector struct {
		Dir      string
		Prompter Prompter
	}
)

// NewSelector creates a Selector over dir using the given prompter.
func NewSelector(dir string, p Prompter) *Selector {
	return &Selector{Dir: dir, Prompter: p}
}

// Candidates returns the environment files in the selector directory,
// sorted by name. Only the base names are returned.
func (s *Selector) Candidates() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.Dir, "*"+consts.DefaultEnvFile))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list environment files in %s", s.Dir)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)

	return names, nil
}

// Select prompts for an environment file and returns its full path.
//
// An empty answer reuses the previously recorded choice (failing if none
// was recorded), otherwise the answer must be a 1-based index into the
// candidate list. The chosen filename is persisted to the marker file.
// The marker is read then overwritten without locking; the tool is
// interactive and single-operator.
func (s *Selector) Select() (string, error) {
	candidates, err := s.Candidates()
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", errors.Wrapf(ErrNoEnvFiles, "in %s", s.Dir)
	}

	last := s.lastChoice(candidates)

	answer, err := s.Prompter.Prompt(candidates, last)
	if err != nil {
		return "", errors.Wrap(err, "failed to read selection")
	}

	choice, err := resolveChoice(candidates, last, answer)
	if err != nil {
		return "", err
	}

	markerPath := filepath.Join(s.Dir, consts.LastEnvMarker)
	if err := os.WriteFile(markerPath, []byte(choice+"\n"), consts.ModeFile); err != nil {
		return "", errors.Wrapf(err, "failed to record selection in %s", markerPath)
	}

	return filepath.Join(s.Dir, choice), nil
}

// lastChoice returns the recorded previous choice, or "" when the marker
// is absent or names a file that no longer exists.
func (s *Selector) lastChoice(candidates []string) string {
	data, err := os.ReadFile(filepath.Join(s.Dir, consts.LastEnvMarker))
	if err != nil {
		return ""
	}

	name := strings.TrimSpace(string(data))
	for _, c := range candidates {
		if c == name {
			return name
		}
	}

	return ""
}

func resolveChoice(candidates []string, last, answer string) (string, error) {
	answer = strings.TrimSpace(answer)

	if answer == "" {
		if last == "" {
			return "", errors.Wrap(ErrInvalidSelection, "no previous selection recorded")
		}
		return last, nil
	}

	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > len(candidates) {
		return "", errors.Wrapf(ErrInvalidSelection, "%q is not a number between 1 and %d", answer, len(candidates))
	}

	return candidates[idx-1], nil
}

// TerminalPrompter renders the enumerated candidate list to Out and reads
// a single line from In.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p *TerminalPrompter) Prompt(candidates []string, last string) (string, error) {
	fmt.Fprintln(p.Out, "Available environment files:")
	for i, c := range candidates {
		marker := " "
		if c == last {
			marker = "*"
		}
		fmt.Fprintf(p.Out, " %s %d) %s\n", marker, i+1, c)
	}

	if last != "" {
		fmt.Fprintf(p.Out, "Select environment [%s]: ", last)
	} else {
		fmt.Fprint(p.Out, "Select environment: ")
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	return strings.TrimSpace(line), nil
}
