package ui

import (
	"errors"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"

	"loadout/internal/tui"
)

var (
	// ErrAborted is returned when the user backs out of a prompt with Esc or
	// Ctrl-D. Callers return to the previous menu level.
	ErrAborted = errors.New("prompt aborted")

	// ErrInterrupted is returned on Ctrl-C and ends the program.
	ErrInterrupted = errors.New("interrupted")

	// ErrNotInteractive is returned when a prompt is needed but stdin or
	// stdout is not a terminal.
	ErrNotInteractive = errors.New("not running in a terminal; pass --yes or use a subcommand with --method")
)

// Interactive reports whether stdin and stdout are both terminals.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Prompter asks the user to choose. The menu driver only talks to this
// interface so it can be scripted in tests.
type Prompter interface {
	// Select shows items with the cursor on cursor and returns the chosen index.
	Select(label string, items []string, cursor int) (int, error)
	// Confirm asks a yes/no question, defaulting to no.
	Confirm(label string) (bool, error)
}

// Terminal is the interactive Prompter: a bubbletea selector for choices
// and promptui for confirmations.
type Terminal struct {
	// PageSize is how many items are visible at once.
	PageSize int
}

// NewTerminal returns a Terminal showing pageSize rows per page.
func NewTerminal(pageSize int) *Terminal {
	if pageSize <= 0 {
		pageSize = 15
	}
	return &Terminal{PageSize: pageSize}
}

// Select implements Prompter. The menu is erased once a choice is made;
// Esc goes back and Ctrl-C interrupts.
func (t *Terminal) Select(label string, items []string, cursor int) (int, error) {
	if len(items) == 0 {
		return 0, ErrAborted
	}
	if !Interactive() {
		return 0, ErrNotInteractive
	}

	index, err := tui.Select(label, items, cursor, tui.Options{
		PageSize: t.PageSize,
		Plain:    !UseColors || !UseUnicode,
	})
	if err != nil {
		return 0, promptError(err)
	}
	return index, nil
}

// Confirm implements Prompter.
func (t *Terminal) Confirm(label string) (bool, error) {
	if !Interactive() {
		return false, ErrNotInteractive
	}

	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	result, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, promptError(err)
	}

	result = strings.ToLower(strings.TrimSpace(result))
	return result == "y" || result == "yes", nil
}

// promptError maps promptui's sentinel errors onto ours.
func promptError(err error) error {
	switch {
	case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, tui.ErrQuit):
		return ErrInterrupted
	case errors.Is(err, promptui.ErrEOF), errors.Is(err, promptui.ErrAbort), errors.Is(err, tui.ErrCancelled):
		return ErrAborted
	}
	return err
}
