package seed

import "errors"

// ErrMismatch reports a server ranking that disagrees with the expected one.
var ErrMismatch = errors.New("ranking mismatch")
