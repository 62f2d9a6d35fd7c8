package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C). The renderer
	// translates it into a cancelled outcome.
	ErrAborted = errors.New("tui: aborted")
)
