package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/podium/internal/config"
	"github.com/okian/podium/internal/domain/importer"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

func init() {
	_ = logger.Init()
	_ = logger.SetLevelString("error")
}

func TestConfigFromEnvironment(t *testing.T) {
	convey.Convey("Given PODIUM_ environment variables", t, func() {
		_ = os.Setenv("PODIUM_ADDR", ":8080")
		_ = os.Setenv("PODIUM_STORE", "sqlite")
		_ = os.Setenv("PODIUM_MAX_LEADERBOARD_LIMIT", "25")
		defer func() {
			_ = os.Unsetenv("PODIUM_ADDR")
			_ = os.Unsetenv("PODIUM_STORE")
			_ = os.Unsetenv("PODIUM_MAX_LEADERBOARD_LIMIT")
		}()

		convey.Convey("Then the configuration reflects them", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.Store, convey.ShouldEqual, config.StoreSQLite)
			convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 25)
		})
	})
}

func TestParserSelection(t *testing.T) {
	convey.Convey("Given a configuration", t, func() {
		cfg := config.New()

		convey.Convey("Without an API key the offline parser is used", func() {
			convey.So(newParser(cfg).Online(), convey.ShouldBeFalse)
		})

		convey.Convey("With an API key the LLM parser is primary", func() {
			cfg.OpenAIAPIKey = "sk-test"
			convey.So(newParser(cfg).Online(), convey.ShouldBeTrue)
		})
	})
}

func TestWiredMux(t *testing.T) {
	convey.Convey("Given a service wired from configuration", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.FrameRate = 1
		cfg.Store = config.StoreSQLite
		cfg.SQLitePath = filepath.Join(t.TempDir(), "podium.db")

		svc, err := newService(ctx, cfg)
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer func() { _ = svc.Close() }()

		srv := httptest.NewServer(newMux(ctx, cfg, svc))
		defer srv.Close()

		convey.Convey("Then every surface answers", func() {
			for _, path := range []string{"/", "/api-docs", "/openapi.yaml", "/rankings", "/leaderboard", "/display", "/stats", "/healthz"} {
				resp, err := http.Get(srv.URL + path)
				convey.So(err, convey.ShouldBeNil)
				_ = resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Then a saved roster survives a restart", func() {
			body := `{"students":[{"id":"x","lastName":"Бойко","firstName":"Іван","points":150}]}`
			resp, err := http.Post(srv.URL+"/rankings", "application/json", strings.NewReader(body))
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

			convey.So(svc.Close(), convey.ShouldBeNil)
			again, err := newService(ctx, cfg)
			convey.So(err, convey.ShouldBeNil)
			convey.So(again.Start(ctx), convey.ShouldBeNil)
			defer func() { _ = again.Close() }()
			convey.So(again.Ranked(), convey.ShouldHaveLength, 1)
			convey.So(again.Ranked()[0].LastName, convey.ShouldEqual, "Бойко")
		})

		convey.Convey("Then import uses the offline parser", func() {
			resp, err := http.Post(srv.URL+"/import", "application/json", strings.NewReader(`{"text":"Бойко Іван - 150 - 5А"}`))
			convey.So(err, convey.ShouldBeNil)
			data, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(data), convey.ShouldContainSubstring, importer.OfflineWarning)
		})
	})

	convey.Convey("Given a redis store", t, func() {
		mr := miniredis.RunT(t)
		cfg := config.New()
		cfg.FrameRate = 1
		cfg.Store = config.StoreRedis
		cfg.RedisAddr = mr.Addr()

		svc, err := newService(context.Background(), cfg)
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.GetStats()["store"], convey.ShouldEqual, "redis")
		convey.So(svc.Close(), convey.ShouldBeNil)
	})

	convey.Convey("Given an unknown store", t, func() {
		cfg := config.New()
		cfg.Store = "etcd"
		_, err := newService(context.Background(), cfg)
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestRunShutsDown(t *testing.T) {
	convey.Convey("Given run on a free port", t, func() {
		cfg := config.New()
		cfg.Addr = "127.0.0.1:0"
		cfg.FrameRate = 1
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- run(ctx, cfg) }()

		convey.Convey("When the context is cancelled it returns cleanly", func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
			select {
			case err := <-done:
				convey.So(err, convey.ShouldBeNil)
			case <-time.After(5 * time.Second):
				t.Fatal("run did not stop")
			}
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.So(updateSystemMetrics, convey.ShouldNotPanic)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		convey.So(func() { startSystemMetricsUpdater(ctx, 5*time.Millisecond) }, convey.ShouldNotPanic)
	})
}

func TestMetricsOptions(t *testing.T) {
	convey.Convey("Given metrics settings in the configuration", t, func() {
		cfg := config.New()
		cfg.MetricsNamespace = "chess"
		cfg.MetricsRefreshInterval = 2 * time.Second

		metrics.Init(metricsOptions(cfg)...)
		defer metrics.Init()

		convey.Convey("Then the global manager follows them", func() {
			convey.So(metrics.RefreshInterval(), convey.ShouldEqual, 2*time.Second)

			metrics.UpdateRosterSize(1)
			families, err := metrics.GetRegistry().Gather()
			convey.So(err, convey.ShouldBeNil)
			found := false
			for _, f := range families {
				if f.GetName() == "chess_leaderboard_roster_size" {
					found = true
				}
			}
			convey.So(found, convey.ShouldBeTrue)
		})
	})
}
