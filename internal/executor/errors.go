package executor

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoPrivileges is returned when an operation requires root but neither
// running as root nor sudo is available.
var ErrNoPrivileges = errors.New("this operation requires root privileges, but neither running as root nor sudo is available")

// CommandError reports an external command that could not be started or
// exited non-zero.
type CommandError struct {
	Program  string
	Args     []string
	ExitCode int // -1 when the process never ran
	Stderr   string
	Err      error
}

func newCommandError(name string, args []string, err error, stderr string) *CommandError {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &CommandError{
		Program:  name,
		Args:     args,
		ExitCode: code,
		Stderr:   stderr,
		Err:      err,
	}
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	cmdline := strings.TrimSpace(e.Program + " " + strings.Join(e.Args, " "))
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s: %v", cmdline, e.Err)
	}
	if line := lastLine(e.Stderr); line != "" {
		return fmt.Sprintf("%s exited with status %d: %s", cmdline, e.ExitCode, line)
	}
	return fmt.Sprintf("%s exited with status %d", cmdline, e.ExitCode)
}

// Unwrap returns the underlying process error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// TextDecodeError is returned when a captured command output is not valid
// UTF-8 text.
type TextDecodeError struct {
	Program string
}

// Error implements the error interface.
func (e *TextDecodeError) Error() string {
	return fmt.Sprintf("output of %s is not valid UTF-8 text", e.Program)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
