package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"loadout/pkg/manager"
)

// Palette for the package table.
var (
	ColorHeader   = lipgloss.Color("#7C3AED")
	ColorMuted    = lipgloss.Color("#6B7280")
	ColorMismatch = lipgloss.Color("#F59E0B")
)

// MethodPalette colours each install method in the package table.
var MethodPalette = map[manager.Method]lipgloss.Color{
	manager.Repository: lipgloss.Color("#1793D1"),
	manager.Flatpak:    lipgloss.Color("#4A90D9"),
	manager.Snap:       lipgloss.Color("#E95420"),
	manager.Other:      lipgloss.Color("#A855F7"),
	manager.Uninstall:  lipgloss.Color("#6B7280"),
}

// PackageRow is one line of the `list` table.
type PackageRow struct {
	Key      string
	Label    string
	Category string
	Method   manager.Method
	Offered  []manager.Method
	Mismatch bool
}

// RenderPackages writes rows as an aligned, coloured table.
func RenderPackages(w io.Writer, rows []PackageRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, style(ColorMuted, false).Render("No packages found"))
		return
	}

	headers := []string{"KEY", "NAME", "CATEGORY", "STATUS", "AVAILABLE VIA"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		offered := make([]string, len(r.Offered))
		for i, m := range r.Offered {
			offered[i] = m.String()
		}
		name := r.Label
		if r.Mismatch {
			name += " " + style(ColorMismatch, false).Render("(DE mismatch)")
		}
		cells = append(cells, []string{
			r.Key,
			name,
			r.Category,
			style(MethodPalette[r.Method], r.Method != manager.Uninstall).Render(r.Method.Tag()),
			strings.Join(offered, ", "),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for i, c := range row {
			if n := lipgloss.Width(c); n > widths[i] {
				widths[i] = n
			}
		}
	}

	head := make([]string, len(headers))
	for i, h := range headers {
		head[i] = style(ColorHeader, true).Width(widths[i] + 2).Render(h)
	}
	fmt.Fprintln(w, strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, head...), " "))

	for _, row := range cells {
		line := make([]string, len(row))
		for i, c := range row {
			line[i] = lipgloss.NewStyle().Width(widths[i] + 2).Render(c)
		}
		fmt.Fprintln(w, strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, line...), " "))
	}
}

func style(c lipgloss.Color, bold bool) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(bold)
	if UseColors {
		s = s.Foreground(c)
	}
	return s
}

// HistoryRow is one line of the `history` listing.
type HistoryRow struct {
	Session string
	Time    time.Time
	Op      string
	Package string
	Method  string
	Success bool
	Error   string
}

// RenderHistory writes history rows newest first, as given.
func RenderHistory(w io.Writer, rows []HistoryRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No history recorded")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tTIME\tOPERATION\tPACKAGE\tMETHOD\tRESULT")
	for _, r := range rows {
		result := "ok"
		if !r.Success {
			result = "failed"
			if r.Error != "" {
				result += ": " + r.Error
			}
		}
		pkg := r.Package
		if pkg == "" {
			pkg = "-"
		}
		method := r.Method
		if method == "" {
			method = "-"
		}
		session := r.Session
		if len(session) > 8 {
			session = session[:8]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", session, r.Time.Format("2006-01-02 15:04"), r.Op, pkg, method, result)
	}
	tw.Flush()
}

// PrintField prints an indented "label: value" line.
func PrintField(label, value string) {
	fmt.Fprintf(Out, "  %s: %s\n", Info.Sprint(label), value)
}
