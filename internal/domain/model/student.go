// Package model contains domain models passed between layers.
package model

import "strings"

// Student is one scored participant. JSON names match the persisted blobs.
type Student struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FullName   string `json:"fullName"`
	Points     int    `json:"points"`
	ClassLabel string `json:"classLabel"`
	// Diff is carried through untouched; nothing in the core reads it.
	Diff *int `json:"diff,omitempty"`
}

// RankedStudent is a Student with its computed 1-based rank.
type RankedStudent struct {
	Student
	Rank int `json:"rank"`
}

// Normalize fills whichever name form is missing. An empty FullName is
// composed as "LastName FirstName"; empty name parts are split from FullName
// with the first token taken as the family name. ClassLabel is left as is.
func (s Student) Normalize() Student {
	s.FullName = strings.TrimSpace(s.FullName)
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)

	if s.FirstName == "" && s.LastName == "" && s.FullName != "" {
		s.LastName, s.FirstName = SplitFullName(s.FullName)
	}
	if s.FullName == "" {
		s.FullName = strings.TrimSpace(s.LastName + " " + s.FirstName)
	}
	return s
}

// SplitFullName splits "Family Given Names" into the family name and the rest.
func SplitFullName(full string) (last, first string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// Roster is the persisted state: the student list and presentation settings.
type Roster struct {
	Students []Student `json:"students"`
	Settings Settings  `json:"settings"`
}
