// Package executortest provides a recording executor.Runner for tests.
package executortest

import (
	"context"
	"strings"
	"sync"

	"loadout/internal/executor"
)

// Recorder implements executor.Runner without starting processes. Every call
// is appended to Commands as a single line; privileged calls are prefixed
// with "sudo ".
type Recorder struct {
	mu sync.Mutex

	// Commands lists every invocation in order.
	Commands []string

	// Inputs maps a command line to the stdin it was fed.
	Inputs map[string]string

	// Outputs maps a command line to the stdout returned by Output.
	Outputs map[string]string

	// Failures maps a command line to the error it returns.
	Failures map[string]error

	// Missing lists programs whose Output probes fail as if not installed.
	Missing map[string]bool
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{
		Inputs:   make(map[string]string),
		Outputs:  make(map[string]string),
		Failures: make(map[string]error),
		Missing:  make(map[string]bool),
	}
}

// Line renders a command the way Recorder stores it.
func Line(name string, args ...string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

// Run records a plain command.
func (r *Recorder) Run(_ context.Context, name string, args ...string) error {
	return r.record(Line(name, args...))
}

// RunSudo records a privileged command.
func (r *Recorder) RunSudo(_ context.Context, name string, args ...string) error {
	return r.record("sudo " + Line(name, args...))
}

// RunSudoInput records a privileged command and its stdin.
func (r *Recorder) RunSudoInput(_ context.Context, input string, name string, args ...string) error {
	line := "sudo " + Line(name, args...)
	r.mu.Lock()
	r.Inputs[line] = input
	r.mu.Unlock()
	return r.record(line)
}

// Output records a capture and returns the canned output for it.
func (r *Recorder) Output(_ context.Context, name string, args ...string) (string, error) {
	line := Line(name, args...)
	if err := r.record(line); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Missing[name] {
		return "", &executor.CommandError{Program: name, Args: args, ExitCode: -1}
	}
	return r.Outputs[line], nil
}

// Reset forgets the recorded commands but keeps the canned responses.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Commands = nil
}

// Mutations returns the recorded commands excluding captures listed in
// Outputs, which is what most tests assert on.
func (r *Recorder) Mutations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, c := range r.Commands {
		if _, canned := r.Outputs[c]; canned {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (r *Recorder) record(line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Commands = append(r.Commands, line)
	if err, ok := r.Failures[line]; ok {
		return err
	}
	return nil
}
