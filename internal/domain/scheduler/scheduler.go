// Package scheduler drives the presentation cycle
// INTRO -> TOP3 -> RANKS_4_7 -> RANKS_8_10 -> INTRO.
//
// A Scheduler is advanced by its host once per rendered frame. It is owned by
// a single goroutine; it performs no I/O and never blocks.
package scheduler

import (
	"time"

	"github.com/okian/podium/internal/domain/model"
)

// MinSlideDuration is the effective duration used when the configured one is
// zero or negative.
const MinSlideDuration = time.Second

// DefaultSmoothing is the per-tick camera interpolation factor.
const DefaultSmoothing = 0.02

// DurationSource supplies the current slide duration. It is consulted on
// every tick.
type DurationSource interface {
	SlideDuration() time.Duration
}

// DurationFunc adapts a function to DurationSource.
type DurationFunc func() time.Duration

// SlideDuration implements DurationSource.
func (f DurationFunc) SlideDuration() time.Duration { return f() }

// FixedDuration is a DurationSource that never changes.
type FixedDuration time.Duration

// SlideDuration implements DurationSource.
func (d FixedDuration) SlideDuration() time.Duration { return time.Duration(d) }

// State is the scheduler state after a tick.
type State struct {
	Mode model.DisplayMode
	// Elapsed is the time spent in Mode.
	Elapsed time.Duration
	// Duration is the effective slide duration used by the last tick.
	Duration time.Duration
	// Clock is the total time since the scheduler started.
	Clock  time.Duration
	Camera Camera
	// Transitioned is set when the last tick changed Mode.
	Transitioned bool
}

// Remaining is the time left before the next transition.
func (s State) Remaining() time.Duration {
	if r := s.Duration - s.Elapsed; r > 0 {
		return r
	}
	return 0
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithSmoothing sets the per-tick camera interpolation factor in (0,1].
func WithSmoothing(f float64) Option {
	return func(s *Scheduler) {
		if f > 0 && f <= 1 {
			s.smoothing = f
		}
	}
}

// WithInitialMode starts the cycle somewhere other than INTRO.
func WithInitialMode(m model.DisplayMode) Option {
	return func(s *Scheduler) {
		for _, known := range model.Modes {
			if m == known {
				s.state.Mode = m
				return
			}
		}
	}
}

// Scheduler is the presentation state machine.
type Scheduler struct {
	src       DurationSource
	smoothing float64
	state     State
	lastTick  time.Duration
}

// New creates a Scheduler in INTRO with the camera at its start pose.
func New(src DurationSource, opts ...Option) *Scheduler {
	if src == nil {
		src = FixedDuration(model.DefaultSlideDuration * time.Second)
	}
	s := &Scheduler{
		src:       src,
		smoothing: DefaultSmoothing,
		state: State{
			Mode:   model.ModeIntro,
			Camera: InitialCamera(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Duration = s.duration()
	return s
}

// State returns the state after the last tick.
func (s *Scheduler) State() State {
	return s.state
}

// Advance moves the scheduler forward by dt. Negative deltas count as zero.
// At most one transition happens per call.
func (s *Scheduler) Advance(dt time.Duration) State {
	if dt < 0 {
		dt = 0
	}
	st := &s.state
	st.Transitioned = false
	st.Clock += dt
	st.Elapsed += dt
	st.Duration = s.duration()

	// Inclusive bound: a slide ends once its full duration has been shown, so
	// a tick landing exactly on the duration transitions. A strict bound would
	// only differ by holding the slide for one more frame.
	if st.Elapsed >= st.Duration {
		st.Mode = st.Mode.Next()
		st.Elapsed = 0
		st.Transitioned = true
	}

	st.Camera = st.Camera.Step(TargetFor(st.Mode), st.Clock, s.smoothing)
	return *st
}

// TickAt advances the scheduler to now, measured from when it started.
// Calls with a time earlier than the previous one advance by zero.
func (s *Scheduler) TickAt(now time.Duration) State {
	dt := now - s.lastTick
	if dt < 0 {
		dt = 0
	} else {
		s.lastTick = now
	}
	return s.Advance(dt)
}

func (s *Scheduler) duration() time.Duration {
	d := s.src.SlideDuration()
	if d < MinSlideDuration {
		return MinSlideDuration
	}
	return d
}
