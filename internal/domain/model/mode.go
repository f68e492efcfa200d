package model

// DisplayMode is one phase of the presentation cycle.
type DisplayMode string

const (
	ModeIntro     DisplayMode = "INTRO"
	ModeTop3      DisplayMode = "TOP3"
	ModeRanks4_7  DisplayMode = "RANKS_4_7"
	ModeRanks8_10 DisplayMode = "RANKS_8_10"
)

// Modes lists the cycle in order.
var Modes = []DisplayMode{ModeIntro, ModeTop3, ModeRanks4_7, ModeRanks8_10} //nolint:gochecknoglobals // fixed cycle

// Next returns the following mode in the cycle
// INTRO -> TOP3 -> RANKS_4_7 -> RANKS_8_10 -> INTRO. Unknown modes restart
// at INTRO.
func (m DisplayMode) Next() DisplayMode {
	switch m {
	case ModeIntro:
		return ModeTop3
	case ModeTop3:
		return ModeRanks4_7
	case ModeRanks4_7:
		return ModeRanks8_10
	default:
		return ModeIntro
	}
}

// ModeNames returns the cycle as strings, e.g. for metric labels.
func ModeNames() []string {
	out := make([]string, len(Modes))
	for i, m := range Modes {
		out[i] = string(m)
	}
	return out
}
