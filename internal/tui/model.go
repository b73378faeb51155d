package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	// ErrCancelled is returned when the user leaves with Esc.
	ErrCancelled = errors.New("selection cancelled")

	// ErrQuit is returned on Ctrl-C.
	ErrQuit = errors.New("selection interrupted")
)

// Model is a single-choice list with a scrolling window.
type Model struct {
	label    string
	items    []string
	cursor   int
	scroll   int
	pageSize int

	chosen bool
	err    error
	done   bool

	styles *Styles
	keys   KeyMap
}

// NewModel creates a selector over items with the cursor on cursor. An
// out-of-range cursor starts at the first item.
func NewModel(label string, items []string, cursor, pageSize int) *Model {
	if pageSize <= 0 {
		pageSize = 15
	}
	if cursor < 0 || cursor >= len(items) {
		cursor = 0
	}
	m := &Model{
		label:    label,
		items:    items,
		cursor:   cursor,
		pageSize: pageSize,
		styles:   DefaultStyles(),
		keys:     DefaultKeyMap(),
	}
	m.follow()
	return m
}

// WithStyles replaces the styles.
func (m *Model) WithStyles(s *Styles) *Model {
	m.styles = s
	return m
}

// Cursor returns the highlighted index.
func (m *Model) Cursor() int {
	return m.cursor
}

// Scroll returns the index of the first visible item.
func (m *Model) Scroll() int {
	return m.scroll
}

// Result returns the chosen index, or the reason nothing was chosen.
func (m *Model) Result() (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if !m.chosen {
		return 0, ErrCancelled
	}
	return m.cursor, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.finish(ErrQuit)
	case key.Matches(keyMsg, m.keys.Cancel):
		return m.finish(ErrCancelled)
	case key.Matches(keyMsg, m.keys.Enter):
		m.chosen = true
		return m.finish(nil)

	case key.Matches(keyMsg, m.keys.Up), key.Matches(keyMsg, m.keys.VimUp):
		m.move(-1)
	case key.Matches(keyMsg, m.keys.Down), key.Matches(keyMsg, m.keys.VimDown):
		m.move(1)
	case key.Matches(keyMsg, m.keys.PageUp):
		m.move(-m.pageSize)
	case key.Matches(keyMsg, m.keys.PageDown):
		m.move(m.pageSize)
	case key.Matches(keyMsg, m.keys.Home), key.Matches(keyMsg, m.keys.VimTop):
		m.cursor = 0
		m.follow()
	case key.Matches(keyMsg, m.keys.End), key.Matches(keyMsg, m.keys.VimBot):
		m.cursor = len(m.items) - 1
		m.follow()
	}
	return m, nil
}

func (m *Model) finish(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.done = true
	return m, tea.Quit
}

// move shifts the cursor by delta. Single steps wrap around the ends; page
// jumps stop at them.
func (m *Model) move(delta int) {
	n := len(m.items)
	if n == 0 {
		return
	}
	next := m.cursor + delta
	switch {
	case delta == 1 || delta == -1:
		next = (next + n) % n
	case next < 0:
		next = 0
	case next >= n:
		next = n - 1
	}
	m.cursor = next
	m.follow()
}

// follow scrolls the window so the cursor stays visible.
func (m *Model) follow() {
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+m.pageSize {
		m.scroll = m.cursor - m.pageSize + 1
	}
}

// View implements tea.Model. Once a choice is made the view is empty, so
// the menu disappears from the terminal.
func (m *Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.label))
	b.WriteString("\n")

	end := m.scroll + m.pageSize
	if end > len(m.items) {
		end = len(m.items)
	}

	if m.scroll > 0 {
		b.WriteString(m.styles.More.Render(fmt.Sprintf("↑ %d more", m.scroll)))
		b.WriteString("\n")
	}
	for i := m.scroll; i < end; i++ {
		if i == m.cursor {
			b.WriteString(m.styles.Cursor.String())
			b.WriteString(m.styles.Selected.Render(m.items[i]))
		} else {
			b.WriteString(m.styles.Item.Render(m.items[i]))
		}
		b.WriteString("\n")
	}
	if rest := len(m.items) - end; rest > 0 {
		b.WriteString(m.styles.More.Render(fmt.Sprintf("↓ %d more", rest)))
		b.WriteString("\n")
	}

	b.WriteString(m.help())
	b.WriteString("\n")
	return b.String()
}

func (m *Model) help() string {
	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, m.styles.HelpKey.Render(h.Key)+" "+m.styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, m.styles.HelpSep.String())
}
