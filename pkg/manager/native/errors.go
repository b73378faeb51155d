package native

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// PacmanErrorType classifies a failed pacman transaction.
type PacmanErrorType int

const (
	PacmanErrorUnknown PacmanErrorType = iota
	PacmanErrorDependencyConflict
	PacmanErrorPackageNotFound
	PacmanErrorDatabaseLocked
)

// String returns a short description of the failure kind.
func (t PacmanErrorType) String() string {
	switch t {
	case PacmanErrorDependencyConflict:
		return "dependency conflict"
	case PacmanErrorPackageNotFound:
		return "target not found"
	case PacmanErrorDatabaseLocked:
		return "database locked"
	default:
		return "pacman failure"
	}
}

// PacmanError is a pacman failure with the affected packages and a hint.
type PacmanError struct {
	ErrorType   PacmanErrorType
	RawOutput   string
	Packages    []string
	OriginalErr error
	Suggestion  string
}

// Error implements the error interface.
func (e *PacmanError) Error() string {
	msg := e.ErrorType.String()
	if len(e.Packages) > 0 {
		msg += ": " + strings.Join(e.Packages, ", ")
	}
	if e.OriginalErr != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.OriginalErr)
	}
	return msg
}

// Unwrap returns the original error.
func (e *PacmanError) Unwrap() error {
	return e.OriginalErr
}

// IsDependencyConflict returns true if this is a dependency conflict error.
func (e *PacmanError) IsDependencyConflict() bool {
	return e.ErrorType == PacmanErrorDependencyConflict
}

var (
	// "error: failed to prepare transaction (could not satisfy dependencies)"
	dependencyFailurePattern = regexp.MustCompile(`failed to prepare transaction.*could not satisfy dependencies`)

	// ":: installing pkg (1.2.3-4) breaks dependency 'pkg=1.2.3-1' required by other-pkg"
	breaksDepPattern = regexp.MustCompile(`:: installing (\S+) .* breaks dependency .* required by (\S+)`)

	// ":: pkg and other-pkg are in conflict"
	conflictPattern = regexp.MustCompile(`:: (\S+) and (\S+) are in conflict`)

	// "error: target not found: pkg"
	notFoundPattern = regexp.MustCompile(`error: target not found: (\S+)`)

	// "error: failed to init transaction (unable to lock database)"
	dbLockedPattern = regexp.MustCompile(`failed to init transaction.*unable to lock database`)
)

const upgradeFirst = "Run 'Update Packages' (or 'loadout update') to bring the system up to date first"

// ParsePacmanError parses pacman stderr output and returns a structured error.
// It returns nil when the output matches no known failure.
func ParsePacmanError(stderr string, originalErr error) *PacmanError {
	if stderr == "" {
		return nil
	}

	pacErr := &PacmanError{
		ErrorType:   PacmanErrorUnknown,
		RawOutput:   stderr,
		OriginalErr: originalErr,
	}

	switch {
	case dependencyFailurePattern.MatchString(stderr), conflictPattern.MatchString(stderr):
		pacErr.ErrorType = PacmanErrorDependencyConflict
		pacErr.Packages = extractAffectedPackages(stderr)
		pacErr.Suggestion = upgradeFirst
	case notFoundPattern.MatchString(stderr):
		pacErr.ErrorType = PacmanErrorPackageNotFound
		for _, m := range notFoundPattern.FindAllStringSubmatch(stderr, -1) {
			pacErr.Packages = append(pacErr.Packages, m[1])
		}
		pacErr.Suggestion = "Refresh the package databases with 'pacman -Sy' or check the package name"
	case dbLockedPattern.MatchString(stderr):
		pacErr.ErrorType = PacmanErrorDatabaseLocked
		pacErr.Suggestion = "Another package manager may be running. Wait for it to finish or remove /var/lib/pacman/db.lck"
	default:
		return nil
	}
	return pacErr
}

// extractAffectedPackages extracts package names from dependency conflict messages.
func extractAffectedPackages(stderr string) []string {
	seen := make(map[string]bool)
	var packages []string

	for _, re := range []*regexp.Regexp{breaksDepPattern, conflictPattern} {
		for _, m := range re.FindAllStringSubmatch(stderr, -1) {
			for _, name := range m[1:] {
				if !seen[name] {
					packages = append(packages, name)
					seen[name] = true
				}
			}
		}
	}

	return packages
}

// AsPacmanError returns the *PacmanError in err's chain, if any.
func AsPacmanError(err error) (*PacmanError, bool) {
	var pacErr *PacmanError
	if errors.As(err, &pacErr) {
		return pacErr, true
	}
	return nil, false
}

// FormatPacmanError returns a user-friendly, multi-line explanation.
func FormatPacmanError(pacErr *PacmanError) string {
	var sb strings.Builder
	switch pacErr.ErrorType {
	case PacmanErrorDependencyConflict:
		sb.WriteString("Dependency conflict detected!\n")
		sb.WriteString("  This usually happens when packages in your system are out of date.\n")
	default:
		sb.WriteString(strings.ToUpper(pacErr.ErrorType.String()[:1]) + pacErr.ErrorType.String()[1:] + "\n")
	}
	if pacErr.Suggestion != "" {
		sb.WriteString("-> Suggestion: ")
		sb.WriteString(pacErr.Suggestion)
		sb.WriteString("\n")
	}

	if len(pacErr.Packages) > 0 {
		sb.WriteString("  Affected packages:\n")
		for _, pkg := range pacErr.Packages {
			sb.WriteString("    - ")
			sb.WriteString(pkg)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
