package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/podium/internal/adapters/http/api"
	"github.com/okian/podium/internal/adapters/http/site"
	"github.com/okian/podium/internal/adapters/http/swagger"
	"github.com/okian/podium/internal/adapters/llm"
	"github.com/okian/podium/internal/adapters/repository"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/config"
	"github.com/okian/podium/internal/domain/importer"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 60 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(metricsOptions(cfg)...)

	if err := run(ctx, cfg); err != nil {
		log.Error(ctx, "server failed", logger.Error(err))
		os.Exit(1)
	}
}

// run wires the service and serves HTTP until ctx is done.
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	svc, err := newService(ctx, cfg)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Error(ctx, "service close failed", logger.Error(err))
		}
	}()

	go startSystemMetricsUpdater(ctx, metrics.RefreshInterval())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, cfg, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

// newService builds the service with the configured store and parser.
func newService(ctx context.Context, cfg *config.Config) (*service.Service, error) {
	kv, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return service.New(
		service.WithLogger(logger.Named("service")),
		service.WithStore(repository.NewStore(kv)),
		service.WithParser(newParser(cfg)),
		service.WithFrameInterval(cfg.FrameInterval()),
	), nil
}

// newParser returns the LLM-backed parser with the offline fallback, or the
// offline parser alone when no API key is configured.
func newParser(cfg *config.Config) *importer.Fallback {
	var primary importer.Parser
	if cfg.OpenAIAPIKey != "" {
		primary = llm.New(cfg.OpenAIAPIKey,
			llm.WithModel(cfg.OpenAIModel),
			llm.WithBaseURL(cfg.OpenAIBaseURL),
		)
	}
	return importer.NewFallback(primary, nil)
}

// newMux registers docs, API and admin routes.
func newMux(ctx context.Context, cfg *config.Config, svc *service.Service) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc,
		api.WithMaxLeaderboardLimit(cfg.MaxLeaderboardLimit),
		api.WithMaxImportBytes(cfg.MaxImportBytes),
	).Register(ctx, mux)
	site.Register(ctx, mux)
	return mux
}

// metricsOptions maps the metrics settings onto the Prometheus manager.
func metricsOptions(cfg *config.Config) []metrics.Option {
	return []metrics.Option{
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithRefreshInterval(cfg.MetricsRefreshInterval),
	}
}

// startSystemMetricsUpdater updates system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if m.NumGC > 0 {
		metrics.RecordSystemGCPauseTime(float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond)
	}
}
