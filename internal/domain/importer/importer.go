// Package importer turns pasted free text into student records.
package importer

import (
	"context"
	"unicode/utf8"

	"github.com/okian/podium/internal/domain/model"
)

// MinTextLength is the shortest input, in characters, worth parsing.
const MinTextLength = 5

// TooShortWarning is the user-facing message for ErrTextTooShort.
const TooShortWarning = "Text is too short"

// Result is the outcome of a parse. Students are not ranked.
type Result struct {
	Students []model.Student `json:"students"`
	Warnings []string        `json:"warnings"`
}

// Parser extracts students from raw text.
type Parser interface {
	Parse(ctx context.Context, raw string) (Result, error)
}

// CheckText rejects input shorter than MinTextLength characters.
func CheckText(raw string) error {
	if utf8.RuneCountInString(raw) < MinTextLength {
		return ErrTextTooShort
	}
	return nil
}
