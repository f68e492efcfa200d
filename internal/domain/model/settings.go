package model

import (
	"strings"
	"time"
)

// TieBreaker selects how equal scores are ranked.
type TieBreaker string

const (
	// TieShared gives equal scores the same rank ("1, 1, 3").
	TieShared TieBreaker = "shared"
	// TieStable gives every record a distinct rank ("1, 2, 3").
	TieStable TieBreaker = "stable"
)

// Normalize maps unknown or empty values to TieShared.
func (t TieBreaker) Normalize() TieBreaker {
	if TieBreaker(strings.ToLower(strings.TrimSpace(string(t)))) == TieStable {
		return TieStable
	}
	return TieShared
}

// Defaults for Settings.
const (
	DefaultSlideDuration = 10
	DefaultTitleTop      = "ШАХОВИЙ РЕЙТИНГ УЧНІВ"
	DefaultTitleBottom   = "АВТОРСЬКОЇ ШКОЛИ БОЙКА"
)

// Settings controls the presentation.
type Settings struct {
	// SlideDuration is in seconds.
	SlideDuration float64    `json:"slideDuration"`
	TieBreaker    TieBreaker `json:"tieBreaker"`
	TitleTop      string     `json:"titleTop"`
	TitleBottom   string     `json:"titleBottom"`
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		SlideDuration: DefaultSlideDuration,
		TieBreaker:    TieShared,
		TitleTop:      DefaultTitleTop,
		TitleBottom:   DefaultTitleBottom,
	}
}

// SlideDurationValue converts SlideDuration to a time.Duration. The value is
// not clamped here.
func (s Settings) SlideDurationValue() time.Duration {
	return time.Duration(s.SlideDuration * float64(time.Second))
}

// SettingsPatch is a partial update. Nil fields are left unchanged.
type SettingsPatch struct {
	SlideDuration *float64    `json:"slideDuration,omitempty"`
	TieBreaker    *TieBreaker `json:"tieBreaker,omitempty"`
	TitleTop      *string     `json:"titleTop,omitempty"`
	TitleBottom   *string     `json:"titleBottom,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p SettingsPatch) Empty() bool {
	return p.SlideDuration == nil && p.TieBreaker == nil && p.TitleTop == nil && p.TitleBottom == nil
}

// Apply merges the patch over s and normalizes the tie breaker.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.SlideDuration != nil {
		s.SlideDuration = *p.SlideDuration
	}
	if p.TieBreaker != nil {
		s.TieBreaker = *p.TieBreaker
	}
	if p.TitleTop != nil {
		s.TitleTop = *p.TitleTop
	}
	if p.TitleBottom != nil {
		s.TitleBottom = *p.TitleBottom
	}
	s.TieBreaker = s.TieBreaker.Normalize()
	return s
}
