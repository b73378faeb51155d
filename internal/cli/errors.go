package cli

import "errors"

var (
	// ErrUnknownPackage is returned when a key is not in the catalog.
	ErrUnknownPackage = errors.New("no such package in the catalog")

	// ErrUnknownCategory is returned for an unrecognised --category.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownRemote is returned for a --remote the package is not published on.
	ErrUnknownRemote = errors.New("package is not published on that remote")

	// ErrUnsupportedDesktop is returned when setting up a desktop that is not running.
	ErrUnsupportedDesktop = errors.New("desktop environment not detected")

	// ErrConfigExists is returned by `config init` when a file is already there.
	ErrConfigExists = errors.New("config file already exists")
)
