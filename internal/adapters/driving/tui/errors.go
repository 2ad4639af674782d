package tui

import "errors"

// ErrMissingRunner is returned when the sync runner is not provided.
var ErrMissingRunner = errors.New("tui: sync runner is required")

// ErrMissingRecords is returned when the record reader is not provided.
var ErrMissingRecords = errors.New("tui: record reader is required")
