package executor

import (
	"context"
	"io"
	"sync"
)

type (
	// Mock is a recording Runner implementation for tests.
	Mock struct {
		mu sync.Mutex

		// RunFunc is consulted for each Run call when set. The default is
		// to succeed without producing output.
		RunFunc func(call Call, w io.Writer) error

		// OutputFunc is consulted for each Output call when set. The
		// default is to return an empty string.
		OutputFunc func(call Call) (string, error)

		RunCalls    []Call
		OutputCalls []Call
	}

	// Call records the parameters of a single Run or Output call.
	Call struct {
		Dir  string
		Name string
		Args []string
	}
)

// NewMock creates a new Mock with an empty call history.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Run(ctx context.Context, dir string, w io.Writer, name string, args ...string) error {
	call := Call{Dir: dir, Name: name, Args: args}

	m.mu.Lock()
	m.RunCalls = append(m.RunCalls, call)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(call, w)
	}

	return nil
}

func (m *Mock) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	call := Call{Dir: dir, Name: name, Args: args}

	m.mu.Lock()
	m.OutputCalls = append(m.OutputCalls, call)
	m.mu.Unlock()

	if m.OutputFunc != nil {
		return m.OutputFunc(call)
	}

	return "", nil
}

// Line returns the full command line of the call, matching what the real
// runner would execute.
func (c Call) Line() string {
	return commandLine(c.Name, c.Args)
}
