// Package history keeps an opt-in journal of package transitions and
// maintenance runs in a BoltDB file.
package history

import (
	"time"
)

// Operation is the kind of action recorded.
type Operation string

const (
	OpInstall    Operation = "install"
	OpUninstall  Operation = "uninstall"
	OpUpdate     Operation = "update"
	OpAutoremove Operation = "autoremove"
	OpSetup      Operation = "setup"
)

// Entry is one recorded action.
type Entry struct {
	ID        uint64    `json:"id"`
	Session   string    `json:"session"` // one per loadout run
	Timestamp time.Time `json:"timestamp"`
	Operation Operation `json:"operation"`
	Package   string    `json:"package,omitempty"` // catalog key
	Method    string    `json:"method,omitempty"`  // provider, or the setup target
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// NewEntry creates an entry stamped with the current time. The outcome is
// filled in by Finish and the session by Store.Record.
func NewEntry(op Operation, pkg, method string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Operation: op,
		Package:   pkg,
		Method:    method,
	}
}

// Finish records the outcome of the action.
func (e *Entry) Finish(err error) {
	e.Success = err == nil
	e.Error = ""
	if err != nil {
		e.Error = err.Error()
	}
}

// FormatTime returns a human-readable timestamp.
func (e *Entry) FormatTime() string {
	return e.Timestamp.Format("2006-01-02 15:04:05")
}

// Summary returns a one-line description of the entry.
func (e *Entry) Summary() string {
	status := "success"
	if !e.Success {
		status = "failed"
	}

	s := e.FormatTime() + " " + string(e.Operation)
	if e.Package != "" {
		s += " " + e.Package
	}
	if e.Method != "" {
		s += " [" + e.Method + "]"
	}
	return s + " (" + status + ")"
}
