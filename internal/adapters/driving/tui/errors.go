package tui

import "errors"

// ErrNoResult is returned when the browser is started without an analysis result.
var ErrNoResult = errors.New("tui: analysis result is required")
