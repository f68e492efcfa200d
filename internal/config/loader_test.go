package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/podium/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"PODIUM_CONFIG",
	"PODIUM_ADDR",
	"PODIUM_STORE",
	"PODIUM_SQLITE_PATH",
	"PODIUM_REDIS_ADDR",
	"PODIUM_REDIS_DB",
	"PODIUM_FRAME_RATE",
	"PODIUM_LOG_FORMAT",
	"PODIUM_OPENAI_API_KEY",
	"PODIUM_REFRESH_INTERVAL",
	"PODIUM_MAX_LEADERBOARD_LIMIT",
}

func clearConfigEnvVars() {
	for _, v := range configEnvVars {
		_ = os.Unsetenv(v)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "podium.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Store, convey.ShouldEqual, config.StoreMemory)
				convey.So(cfg.FrameRate, convey.ShouldEqual, 30)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PODIUM_ADDR", ":8080")
			_ = os.Setenv("PODIUM_STORE", "Redis")
			_ = os.Setenv("PODIUM_REDIS_ADDR", "cache:6379")
			_ = os.Setenv("PODIUM_REDIS_DB", "3")
			_ = os.Setenv("PODIUM_OPENAI_API_KEY", "sk-test")
			_ = os.Setenv("PODIUM_REFRESH_INTERVAL", "5s")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Store, convey.ShouldEqual, config.StoreRedis)
				convey.So(cfg.RedisAddr, convey.ShouldEqual, "cache:6379")
				convey.So(cfg.RedisDB, convey.ShouldEqual, 3)
				convey.So(cfg.OpenAIAPIKey, convey.ShouldEqual, "sk-test")
				convey.So(cfg.RefreshInterval, convey.ShouldEqual, 5*time.Second)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := writeConfigFile(t, `
addr: ":9090"
store: sqlite
sqlite_path: /tmp/podium-test.db
frame_rate: 60
max_leaderboard_limit: 20
`)
			_ = os.Setenv("PODIUM_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Store, convey.ShouldEqual, config.StoreSQLite)
				convey.So(cfg.SQLitePath, convey.ShouldEqual, "/tmp/podium-test.db")
				convey.So(cfg.FrameRate, convey.ShouldEqual, 60)
				convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 20)
			})

			convey.Convey("Then environment variables override file values", func() {
				_ = os.Setenv("PODIUM_FRAME_RATE", "24")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.FrameRate, convey.ShouldEqual, 24)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("PODIUM_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a value fails validation", func() {
			_ = os.Setenv("PODIUM_LOG_FORMAT", "xml")

			_, err := config.Load(ctx)

			convey.Convey("Then an invalid config error is returned", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
