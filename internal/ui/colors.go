// Package ui provides the terminal output helpers, prompts and tables used
// by the menu and the subcommands.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"loadout/pkg/manager"
)

var (
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan)
	Header  = color.New(color.FgMagenta, color.Bold)
	Muted   = color.New(color.FgHiBlack)

	PackageName = color.New(color.FgWhite, color.Bold)
	Mismatch    = color.New(color.FgYellow)
)

// MethodColors tags each install method in menus.
var MethodColors = map[manager.Method]*color.Color{
	manager.Repository: color.New(color.FgBlue),
	manager.Flatpak:    color.New(color.FgCyan),
	manager.Snap:       color.New(color.FgYellow),
	manager.Other:      color.New(color.FgMagenta),
	manager.Uninstall:  color.New(color.FgHiBlack),
}

// UseColors represents whether colors should be used.
var UseColors = true

// UseUnicode represents whether unicode symbols should be used.
var UseUnicode = true

// Out is where the message helpers write.
var Out io.Writer = os.Stdout

var (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "!"
	SymbolInfo    = "→"
)

// Init applies the output settings from configuration.
func Init(useColors, useUnicode bool) {
	UseColors = useColors
	UseUnicode = useUnicode

	if !useColors || os.Getenv("NO_COLOR") != "" {
		UseColors = false
		color.NoColor = true
	}

	if !useUnicode {
		SymbolSuccess = "[OK]"
		SymbolError = "[ERROR]"
		SymbolWarning = "[WARN]"
		SymbolInfo = "->"
	}
}

// SuccessMsg prints a green one-liner.
func SuccessMsg(format string, args ...interface{}) {
	Success.Fprintf(Out, SymbolSuccess+" "+format+"\n", args...)
}

// ErrorMsg prints a red one-liner.
func ErrorMsg(format string, args ...interface{}) {
	Error.Fprintf(Out, SymbolError+" "+format+"\n", args...)
}

// WarningMsg prints a yellow one-liner for degraded or missing state.
func WarningMsg(format string, args ...interface{}) {
	Warning.Fprintf(Out, SymbolWarning+" "+format+"\n", args...)
}

// InfoMsg prints a cyan one-liner.
func InfoMsg(format string, args ...interface{}) {
	Info.Fprintf(Out, SymbolInfo+" "+format+"\n", args...)
}

// HeaderMsg prints a section header.
func HeaderMsg(format string, args ...interface{}) {
	Header.Fprintf(Out, "\n"+format+"\n", args...)
}

// MutedMsg prints a dim line.
func MutedMsg(format string, args ...interface{}) {
	Muted.Fprintf(Out, format+"\n", args...)
}

// Println prints a plain line with formatting.
func Println(format string, args ...interface{}) {
	fmt.Fprintf(Out, format+"\n", args...)
}

// Bold returns a bold string.
func Bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}

// MethodTag renders the bracketed tag for m in its colour.
func MethodTag(m manager.Method) string {
	c, ok := MethodColors[m]
	if !ok {
		return m.Tag()
	}
	return c.Sprint(m.Tag())
}
