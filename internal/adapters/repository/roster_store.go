package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Keys of the two persisted blobs.
const (
	KeyStudents = "students"
	KeySettings = "settings"
)

// Store loads and saves the roster through a KV backend.
type Store struct {
	kv     KV
	prefix string
	log    logger.Logger
}

// NewStore wraps kv.
func NewStore(kv KV, opts ...Option) *Store {
	s := &Store{kv: kv, log: logger.Named("repository")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend names the underlying KV implementation.
func (s *Store) Backend() string {
	return s.kv.Backend()
}

// Load reads the roster. Missing keys yield an empty roster and default
// settings; stored settings are merged over the defaults. On error the
// returned roster still holds those defaults.
func (s *Store) Load(ctx context.Context) (roster model.Roster, err error) {
	start := time.Now()
	defer s.observe("load", start, &err)

	roster = model.Roster{Students: []model.Student{}, Settings: model.DefaultSettings()}

	students, err := s.get(ctx, KeyStudents)
	if err != nil {
		return roster, err
	}
	if students != nil {
		var decoded []model.Student
		if err := json.Unmarshal(students, &decoded); err != nil {
			return roster, fmt.Errorf("%w: %s: %w", ErrDecode, KeyStudents, err)
		}
		for _, st := range decoded {
			roster.Students = append(roster.Students, st.Normalize())
		}
	}

	settings, err := s.get(ctx, KeySettings)
	if err != nil {
		return roster, err
	}
	if settings != nil {
		merged := model.DefaultSettings()
		if err := json.Unmarshal(settings, &merged); err != nil {
			return roster, fmt.Errorf("%w: %s: %w", ErrDecode, KeySettings, err)
		}
		merged.TieBreaker = merged.TieBreaker.Normalize()
		roster.Settings = merged
	}
	return roster, nil
}

// Save writes both blobs in one call.
func (s *Store) Save(ctx context.Context, roster model.Roster) (err error) {
	start := time.Now()
	defer s.observe("save", start, &err)

	students := roster.Students
	if students == nil {
		students = []model.Student{}
	}
	sb, err := json.Marshal(students)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyStudents, err)
	}
	cb, err := json.Marshal(roster.Settings)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeySettings, err)
	}
	return s.kv.SetMany(ctx, map[string][]byte{
		s.prefix + KeyStudents: sb,
		s.prefix + KeySettings: cb,
	})
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

// get returns nil, nil for a missing key.
func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.kv.Get(ctx, s.prefix+key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return v, err
}

func (s *Store) observe(op string, start time.Time, err *error) {
	backend := s.kv.Backend()
	metrics.RecordStoreLatency(backend, op, float64(time.Since(start).Microseconds())/1000)
	if *err != nil {
		metrics.RecordStoreError(backend, op)
		s.log.Warn(context.Background(), "roster "+op+" failed", logger.String("backend", backend), logger.Error(*err))
	}
}
