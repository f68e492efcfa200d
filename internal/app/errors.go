package service

import "errors"

// Sentinel errors returned by the service.
var (
	// ErrPersist wraps a failed save. The in-memory update it accompanies
	// has already been applied.
	ErrPersist      = errors.New("persist roster failed")
	ErrNotFound     = errors.New("student not found")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
	ErrClosed       = errors.New("service closed")
)
