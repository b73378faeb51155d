package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Options controls how Select renders.
type Options struct {
	PageSize int
	Plain    bool // no colour or unicode

	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
}

// Select runs the selector inline (no alternate screen) and returns the
// chosen index. It fails with ErrCancelled on Esc and ErrQuit on Ctrl-C.
func Select(label string, items []string, cursor int, opts Options) (int, error) {
	m := NewModel(label, items, cursor, opts.PageSize)
	if opts.Plain {
		m.WithStyles(PlainStyles())
	}

	var progOpts []tea.ProgramOption
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	final, err := tea.NewProgram(m, progOpts...).Run()
	if err != nil {
		return 0, err
	}
	return final.(*Model).Result()
}
