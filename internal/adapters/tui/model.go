// Package tui renders the leaderboard presentation in a terminal.
//
// The model follows bubbletea's Elm loop: frame ticks advance a local
// Scheduler, roster messages replace the ranking, and View draws the current
// tier as a row of pedestals.
package tui

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/okian/podium/internal/adapters/http/client"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/ranking"
	"github.com/okian/podium/internal/domain/scheduler"
)

const (
	defaultFrameInterval  = time.Second / 30
	defaultReloadInterval = 30 * time.Second
	loadTimeout           = 10 * time.Second
)

// RosterSource loads the roster from the server.
type RosterSource interface {
	Load(ctx context.Context) (client.Rankings, error)
}

type frameMsg time.Time

type rosterMsg struct {
	rankings client.Rankings
	err      error
}

type reloadMsg struct{}

// Option configures the Model.
type Option func(*Model)

// WithFrameInterval sets how often the scheduler advances.
func WithFrameInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.frameInterval = d
		}
	}
}

// WithReloadInterval sets how often the roster is fetched again.
func WithReloadInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.reloadInterval = d
		}
	}
}

// WithRanker sets the ranking engine used for the loaded roster.
func WithRanker(r *ranking.Ranker) Option {
	return func(m *Model) {
		if r != nil {
			m.ranker = r
		}
	}
}

// Model is the bubbletea model of the terminal display.
type Model struct {
	src    RosterSource
	ranker *ranking.Ranker
	sched  *scheduler.Scheduler

	// slide holds the configured duration for the scheduler's DurationFunc.
	slide atomic.Int64

	settings model.Settings
	ranked   []model.RankedStudent
	frame    scheduler.Frame

	frameInterval  time.Duration
	reloadInterval time.Duration
	lastFrame      time.Time

	spinner spinner.Model
	loaded  bool
	err     error

	width  int
	height int
}

// New creates a display model reading from src.
func New(src RosterSource, opts ...Option) *Model {
	m := &Model{
		src:            src,
		ranker:         ranking.NewRanker(),
		settings:       model.DefaultSettings(),
		ranked:         []model.RankedStudent{},
		frameInterval:  defaultFrameInterval,
		reloadInterval: defaultReloadInterval,
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.slide.Store(int64(m.settings.SlideDurationValue()))
	m.sched = scheduler.New(scheduler.DurationFunc(func() time.Duration {
		return time.Duration(m.slide.Load())
	}))
	m.frame = scheduler.BuildFrame(m.sched.State(), m.ranked, m.settings)
	return m
}

// Init starts the spinner, the first load, the frame clock and the reload
// clock.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(), m.nextFrame(), m.nextReload())
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.load()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case frameMsg:
		now := time.Time(msg)
		var dt time.Duration
		if !m.lastFrame.IsZero() && now.After(m.lastFrame) {
			dt = now.Sub(m.lastFrame)
		}
		m.lastFrame = now
		m.advance(dt)
		return m, m.nextFrame()

	case rosterMsg:
		m.applyRoster(msg)
		return m, nil

	// Only the reload clock reschedules itself, so manual reloads never
	// start a second chain.
	case reloadMsg:
		return m, tea.Batch(m.load(), m.nextReload())

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Frame returns the frame drawn by View.
func (m *Model) Frame() scheduler.Frame { return m.frame }

// Err returns the last load error, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) advance(dt time.Duration) {
	st := m.sched.Advance(dt)
	m.frame = scheduler.BuildFrame(st, m.ranked, m.settings)
}

func (m *Model) applyRoster(msg rosterMsg) {
	if msg.err != nil {
		m.err = msg.err
		return
	}
	m.err = nil
	m.loaded = true
	m.settings = msg.rankings.Settings
	m.slide.Store(int64(m.settings.SlideDurationValue()))
	roster := msg.rankings.Roster()
	m.ranked = m.ranker.Compute(roster.Students, m.settings.TieBreaker)
	m.frame = scheduler.BuildFrame(m.sched.State(), m.ranked, m.settings)
}

func (m *Model) load() tea.Cmd {
	src := m.src
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		r, err := src.Load(ctx)
		return rosterMsg{rankings: r, err: err}
	}
}

func (m *Model) nextReload() tea.Cmd {
	return tea.Tick(m.reloadInterval, func(time.Time) tea.Msg { return reloadMsg{} })
}

func (m *Model) nextFrame() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}
