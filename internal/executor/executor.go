// Package executor handles command execution with privilege escalation support.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// Runner is the set of process operations the providers, hooks and desktop
// appliers rely on. Executor is the real implementation.
type Runner interface {
	// Run streams a command's output to the terminal.
	Run(ctx context.Context, name string, args ...string) error
	// RunSudo is Run with root privileges.
	RunSudo(ctx context.Context, name string, args ...string) error
	// RunSudoInput is RunSudo with input fed to the command's stdin.
	RunSudoInput(ctx context.Context, input string, name string, args ...string) error
	// Output runs a command and returns its stdout as text.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// Executor handles command execution with optional sudo elevation.
type Executor struct {
	dryRun  bool
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
}

// New creates a new Executor with the given options.
func New(dryRun, verbose bool) *Executor {
	return &Executor{
		dryRun:  dryRun,
		verbose: verbose,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// Run executes a command without sudo.
func (e *Executor) Run(ctx context.Context, name string, args ...string) error {
	if e.dryRun {
		e.printDryRun(name, args)
		return nil
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	if e.verbose {
		fmt.Fprintf(e.stdout, "Executing: %s %s\n", name, strings.Join(args, " "))
	}

	return e.stream(cmd, name, args)
}

// RunSudo executes a command with sudo if not already root.
func (e *Executor) RunSudo(ctx context.Context, name string, args ...string) error {
	if e.dryRun {
		e.printDryRunSudo(name, args)
		return nil
	}

	cmd, err := e.sudoCommand(ctx, name, args)
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin

	return e.stream(cmd, name, args)
}

// RunSudoInput executes a command with sudo, feeding input on stdin. The
// command's own output is streamed as usual.
func (e *Executor) RunSudoInput(ctx context.Context, input string, name string, args ...string) error {
	if e.dryRun {
		e.printDryRunSudo(name, args)
		return nil
	}

	cmd, err := e.sudoCommand(ctx, name, args)
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(input)

	return e.stream(cmd, name, args)
}

// Output runs a command and returns its stdout. Stderr is captured for the
// returned error only, so probes stay quiet.
func (e *Executor) Output(ctx context.Context, name string, args ...string) (string, error) {
	if e.dryRun && !readOnly(name, args) {
		e.printDryRun(name, args)
		return "", nil
	}

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if e.verbose {
		fmt.Fprintf(e.stdout, "Executing: %s %s\n", name, strings.Join(args, " "))
	}

	if err := cmd.Run(); err != nil {
		return "", newCommandError(name, args, err, stderr.String())
	}
	if !utf8.Valid(stdout.Bytes()) {
		return "", &TextDecodeError{Program: name}
	}
	return stdout.String(), nil
}

// stream runs cmd with stdout going to the terminal and stderr both to the
// terminal and into the returned error.
func (e *Executor) stream(cmd *exec.Cmd, name string, args []string) error {
	var stderrBuf bytes.Buffer
	cmd.Stdout = e.stdout
	cmd.Stderr = io.MultiWriter(e.stderr, &stderrBuf)

	if err := cmd.Run(); err != nil {
		return newCommandError(name, args, err, stderrBuf.String())
	}
	return nil
}

func (e *Executor) sudoCommand(ctx context.Context, name string, args []string) (*exec.Cmd, error) {
	var cmd *exec.Cmd
	if isRoot() {
		cmd = exec.CommandContext(ctx, name, args...)
	} else if hasSudo() {
		sudoArgs := append([]string{name}, args...)
		cmd = exec.CommandContext(ctx, "sudo", sudoArgs...)
	} else {
		return nil, ErrNoPrivileges
	}

	if e.verbose {
		if isRoot() {
			fmt.Fprintf(e.stdout, "Executing (as root): %s %s\n", name, strings.Join(args, " "))
		} else {
			fmt.Fprintf(e.stdout, "Executing (with sudo): %s %s\n", name, strings.Join(args, " "))
		}
	}
	return cmd, nil
}

func (e *Executor) printDryRun(name string, args []string) {
	fmt.Fprintf(e.stdout, "[dry-run] Would execute: %s %s\n", name, strings.Join(args, " "))
}

func (e *Executor) printDryRunSudo(name string, args []string) {
	if isRoot() {
		fmt.Fprintf(e.stdout, "[dry-run] Would execute (as root): %s %s\n", name, strings.Join(args, " "))
	} else {
		fmt.Fprintf(e.stdout, "[dry-run] Would execute (with sudo): sudo %s %s\n", name, strings.Join(args, " "))
	}
}

// readOnly reports whether a captured command only inspects state, so that a
// dry run still sees what is installed.
func readOnly(name string, args []string) bool {
	if len(args) == 1 && args[0] == "--version" {
		return true
	}
	switch name {
	case "rpm", "snap", "flatpak", "apt", "dnf":
		return len(args) > 0 && (args[0] == "list" || args[0] == "-qa")
	case "pacman":
		return len(args) > 0 && strings.HasPrefix(args[0], "-Q")
	}
	return false
}
