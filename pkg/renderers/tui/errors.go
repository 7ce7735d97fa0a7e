package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined
	// the final confirmation.
	ErrAborted = errors.New("tui: aborted")
	// ErrUnknownFormat is returned when the output format is not supported.
	ErrUnknownFormat = errors.New("tui: unknown output format")
)
