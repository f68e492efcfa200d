package scheduler

import (
	"github.com/okian/podium/internal/domain/model"
)

// Frame is what a renderer needs to draw one moment of the presentation.
type Frame struct {
	Mode model.DisplayMode `json:"mode"`
	// Elapsed, Remaining and Duration are in seconds.
	Elapsed     float64    `json:"elapsed"`
	Remaining   float64    `json:"remaining"`
	Duration    float64    `json:"duration"`
	Camera      Camera     `json:"camera"`
	TitleTop    string     `json:"titleTop,omitempty"`
	TitleBottom string     `json:"titleBottom,omitempty"`
	Pedestals   []Pedestal `json:"pedestals"`
}

// BuildFrame combines scheduler state with the current ranking. Titles are
// only set for INTRO.
func BuildFrame(st State, ranked []model.RankedStudent, settings model.Settings) Frame {
	f := Frame{
		Mode:      st.Mode,
		Elapsed:   st.Elapsed.Seconds(),
		Remaining: st.Remaining().Seconds(),
		Duration:  st.Duration.Seconds(),
		Camera:    st.Camera,
		Pedestals: Layout(st.Mode, Subset(st.Mode, ranked)),
	}
	if st.Mode == model.ModeIntro {
		f.TitleTop = settings.TitleTop
		f.TitleBottom = settings.TitleBottom
	}
	return f
}
