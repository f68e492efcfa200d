// Package service holds the application state: the roster, the presentation
// settings and the ranking derived from them.
//
// Writes (roster replacement, settings updates) are serialized by a mutex and
// recompute the ranking synchronously before they return. The result is
// published as an immutable snapshot that readers load without locking.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/domain/importer"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/ranking"
	"github.com/okian/podium/internal/domain/scheduler"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Persistence loads and saves the roster.
type Persistence interface {
	Load(ctx context.Context) (model.Roster, error)
	Save(ctx context.Context, roster model.Roster) error
	Backend() string
}

// snapshot is an immutable view of the state after one write.
type snapshot struct {
	students  []model.Student
	ranked    []model.RankedStudent
	byID      map[string]int
	settings  model.Settings
	updatedAt time.Time
}

// Service implements the API dependencies for the leaderboard.
type Service struct {
	mu sync.Mutex

	snap atomic.Pointer[snapshot]

	store   Persistence
	parser  importer.Parser
	ranker  *ranking.Ranker
	display *Display

	frameInterval time.Duration

	started bool
	loaded  bool
	closed  bool

	saves        atomic.Int64
	saveFailures atomic.Int64
	imports      atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the persistence collaborator.
func WithStore(p Persistence) Option {
	return func(s *Service) {
		if p != nil {
			s.store = p
		}
	}
}

// WithParser sets the import collaborator.
func WithParser(p importer.Parser) Option {
	return func(s *Service) {
		if p != nil {
			s.parser = p
		}
	}
}

// WithRanker sets the ranking engine.
func WithRanker(r *ranking.Ranker) Option {
	return func(s *Service) {
		if r != nil {
			s.ranker = r
		}
	}
}

// WithFrameInterval sets the display driver tick period. Zero disables the
// driver.
func WithFrameInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.frameInterval = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Without options it keeps the roster in memory
// and imports with the offline parser.
func New(opts ...Option) *Service {
	s := &Service{
		ranker:        ranking.NewRanker(),
		frameInterval: time.Second / 30,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewStore(repository.NewMemoryKV())
	}
	if s.parser == nil {
		s.parser = importer.NewFallback(nil, nil)
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}

	s.publish(context.Background(), []model.Student{}, model.DefaultSettings())
	s.display = NewDisplay(s, s.frameInterval)
	return s
}

// Start loads the stored roster and starts the display driver. A failed load
// is logged and the service continues with an empty roster and default
// settings. The roster is loaded only on the first start; a restarted service
// keeps its in-memory state.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.closed:
		return ErrClosed
	case s.started:
		return nil
	}

	s.logger.Info(ctx, "starting leaderboard service...", logger.String("store", s.store.Backend()))

	if !s.loaded {
		roster, err := s.store.Load(ctx)
		if err != nil {
			s.logger.Warn(ctx, "could not load roster, starting empty", logger.Error(err))
			roster = model.Roster{Students: []model.Student{}, Settings: model.DefaultSettings()}
		}
		s.publish(ctx, roster.Students, roster.Settings)
		s.loaded = true
	}

	if s.frameInterval > 0 {
		s.display.Start(ctx)
	}

	s.started = true
	snap := s.snap.Load()
	s.logger.Info(ctx, "leaderboard service started",
		logger.Int("students", len(snap.students)),
		logger.String("tieBreaker", string(snap.settings.TieBreaker)),
	)
	return nil
}

// Stop stops the display driver. The service can be started again.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop()
}

func (s *Service) stop() {
	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping leaderboard service...")
	s.display.Stop()
	s.started = false
	s.logger.Info(context.Background(), "leaderboard service stopped")
}

// Close stops the service and releases the store. It is safe to call more
// than once; a closed service cannot be started again.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stop()
	if s.closed {
		return nil
	}
	s.closed = true

	if closer, ok := s.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			s.logger.Warn(context.Background(), "close store", logger.Error(err))
			return fmt.Errorf("close store: %w", err)
		}
	}
	return nil
}

// ReplaceRoster replaces every student, recomputes the ranking and persists.
// Students without an id get a new UUID. A persistence failure is returned
// wrapped in ErrPersist; the new roster stays applied.
func (s *Service) ReplaceRoster(ctx context.Context, students []model.Student) error {
	if students == nil {
		students = []model.Student{}
	}
	return s.Save(ctx, students, nil)
}

// UpdateSettings merges patch into the settings, recomputes the ranking and
// persists. It returns the merged settings, also when persisting fails.
func (s *Service) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.Settings, error) {
	err := s.Save(ctx, nil, &patch)
	return s.Settings(), err
}

// Save applies a roster replacement and/or a settings patch as one write.
// A nil students slice keeps the current roster; an empty one clears it.
func (s *Service) Save(ctx context.Context, students []model.Student, patch *model.SettingsPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.snap.Load()
	next := cur.students
	if students != nil {
		next = make([]model.Student, len(students))
		for i, st := range students {
			st = st.Normalize()
			if st.ID == "" {
				st.ID = uuid.NewString()
			}
			next[i] = st
		}
	}
	settings := cur.settings
	if patch != nil {
		settings = patch.Apply(settings)
	}

	s.publish(ctx, next, settings)

	if err := s.store.Save(ctx, model.Roster{Students: next, Settings: settings}); err != nil {
		s.saveFailures.Add(1)
		s.logger.Error(ctx, "failed to persist roster", logger.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.saves.Add(1)
	return nil
}

// publish recomputes the ranking and swaps the snapshot. Callers hold s.mu,
// except New which runs before the service is shared.
func (s *Service) publish(ctx context.Context, students []model.Student, settings model.Settings) {
	start := time.Now()
	ranked := s.ranker.Compute(students, settings.TieBreaker)
	byID := make(map[string]int, len(ranked))
	for i, r := range ranked {
		if _, dup := byID[r.ID]; !dup {
			byID[r.ID] = i
		}
	}
	s.snap.Store(&snapshot{
		students:  students,
		ranked:    ranked,
		byID:      byID,
		settings:  settings,
		updatedAt: time.Now(),
	})

	metrics.RecordRankRecompute(string(settings.TieBreaker), float64(time.Since(start).Microseconds())/1000)
	metrics.UpdateRosterSize(len(students))
	metrics.UpdateSlideDuration(s.SlideDuration())
	if s.logger != nil {
		s.logger.Debug(ctx, "ranking recomputed",
			logger.Int("students", len(students)),
			logger.String("tieBreaker", string(settings.TieBreaker)),
		)
	}
}

// Roster returns the students in stored order with the settings.
func (s *Service) Roster() model.Roster {
	snap := s.snap.Load()
	return model.Roster{Students: snap.students, Settings: snap.settings}
}

// Ranked returns the current ranking. The slice is shared and must not be
// modified.
func (s *Service) Ranked() []model.RankedStudent {
	return s.snap.Load().ranked
}

// Rank returns the ranked entry for id.
func (s *Service) Rank(_ context.Context, id string) (model.RankedStudent, error) {
	snap := s.snap.Load()
	i, ok := snap.byID[id]
	if !ok {
		return model.RankedStudent{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return snap.ranked[i], nil
}

// TopN returns up to n entries from the top of the ranking.
func (s *Service) TopN(_ context.Context, n int) ([]model.RankedStudent, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	ranked := s.snap.Load().ranked
	n = min(n, len(ranked))
	out := make([]model.RankedStudent, n)
	copy(out, ranked[:n])
	return out, nil
}

// Settings returns the current presentation settings.
func (s *Service) Settings() model.Settings {
	return s.snap.Load().settings
}

// SlideDuration implements scheduler.DurationSource with the clamped value.
func (s *Service) SlideDuration() time.Duration {
	d := s.snap.Load().settings.SlideDurationValue()
	if d < scheduler.MinSlideDuration {
		return scheduler.MinSlideDuration
	}
	return d
}

// Import parses free text into students. Nothing is stored.
func (s *Service) Import(ctx context.Context, text string) (importer.Result, error) {
	res, err := s.parser.Parse(ctx, text)
	if err == nil {
		s.imports.Add(1)
	}
	return res, err
}

// Frame returns the latest display frame.
func (s *Service) Frame() scheduler.Frame {
	return s.display.Frame()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	snap := s.snap.Load()
	frame := s.display.Frame()
	return map[string]interface{}{
		"started":       started,
		"store":         s.store.Backend(),
		"students":      len(snap.students),
		"tieBreaker":    string(snap.settings.TieBreaker),
		"slideDuration": s.SlideDuration().Seconds(),
		"mode":          string(frame.Mode),
		"saves":         s.saves.Load(),
		"saveFailures":  s.saveFailures.Load(),
		"imports":       s.imports.Load(),
		"updatedAt":     snap.updatedAt.UTC().Format(time.RFC3339),
	}
}
