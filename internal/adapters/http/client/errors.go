package client

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the client.
var (
	ErrRequest      = errors.New("request failed")
	ErrUnexpected   = errors.New("unexpected response")
	ErrNotFound     = errors.New("not found")
	ErrNotPersisted = errors.New("applied but not persisted")
)

// StatusError is returned for non-2xx responses that carry an error body.
type StatusError struct {
	Status  int
	Code    string
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s: %s", e.Status, e.Code, e.Message)
}

// Is maps well-known codes to the package sentinels.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnexpected:
		return true
	case ErrNotFound:
		return e.Code == "not_found"
	case ErrNotPersisted:
		return e.Code == "persist_failed"
	}
	return false
}
