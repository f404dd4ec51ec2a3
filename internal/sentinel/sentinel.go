package sentinel

import "errors"

// Sentinel dependency errors. Stores and sinks return these (optionally
// wrapped) so the workflow service can translate them into domain errors
// exactly once.
var (
	ErrNotFound     = errors.New("not found")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
