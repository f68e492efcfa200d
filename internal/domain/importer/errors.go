package importer

import "errors"

// Sentinel errors for import.
var (
	ErrTextTooShort = errors.New("text is too short")
	ErrParse        = errors.New("parse failed")
)
