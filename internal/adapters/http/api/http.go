// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/podium/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RankingsDependencies
	LeaderboardDependencies
	RankDependencies
	ImportDependencies
	DisplayDependencies
	StatsProvider
}

const (
	defaultMaxLimit       = 100
	defaultMaxImportBytes = 1 << 20
)

// Option configures the Server.
type Option func(*Server)

// WithMaxLeaderboardLimit caps GET /leaderboard?limit.
func WithMaxLeaderboardLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithMaxImportBytes caps the body of POST /import and POST /rankings.
func WithMaxImportBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	maxLimit     int
	maxBodyBytes int64

	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	rankingsHandler    *RankingsHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	importHandler      *ImportHandler
	displayHandler     *DisplayHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{maxLimit: defaultMaxLimit, maxBodyBytes: defaultMaxImportBytes}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler(deps)
	s.statsHandler = NewStatsHandler(deps)
	s.rankingsHandler = NewRankingsHandler(deps, s.maxBodyBytes)
	s.leaderboardHandler = NewLeaderboardHandler(deps, s.maxLimit)
	s.rankHandler = NewRankHandler(deps)
	s.importHandler = NewImportHandler(deps, s.maxBodyBytes)
	s.displayHandler = NewDisplayHandler(deps)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	log := logger.Named("api")
	wrap := func(h http.HandlerFunc, endpoint string) http.HandlerFunc {
		return RecoverMiddleware(MetricsMiddleware(h, endpoint), log)
	}

	mux.HandleFunc("/healthz", wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/rankings", wrap(s.rankingsHandler.HandleRankings, "rankings"))
	mux.HandleFunc("/settings", wrap(s.rankingsHandler.HandleSettings, "settings"))
	mux.HandleFunc("/leaderboard", wrap(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/rank/", wrap(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/import", wrap(s.importHandler.HandleImport, "import"))
	mux.HandleFunc("/display", wrap(s.displayHandler.HandleDisplay, "display"))

	log.Debug(ctx, "api routes registered")
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeBody reads a JSON body of at most limit bytes into v.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrTooLarge
		}
		return err
	}
	return nil
}
