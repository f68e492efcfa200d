package repository

import "errors"

// Sentinel kinds for persistence errors.
var (
	ErrNotFound = errors.New("key not found")
	ErrDecode   = errors.New("decode stored value")
	ErrClosed   = errors.New("store closed")
)
