package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the logger package", t, func() {
		Convey("When initialized with defaults", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get returns a usable logger", func() {
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initialized with an unknown format", func() {
			err := Init(WithFormat("xml"))

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown log format")
			})
		})
	})
}

func TestLoggerJSONOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithFormat(FormatJSON), WithOutput(&buf)), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields through a named logger", func() {
			Named("ranking").With(String("policy", "shared")).Info(ctx, "ranks computed", Int("count", 3), Error(errors.New("boom")))

			Convey("Then the record carries every field and the caller", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "ranks computed")
				So(rec["logger"], ShouldEqual, "ranking")
				So(rec["policy"], ShouldEqual, "shared")
				So(rec["count"], ShouldEqual, float64(3))
				So(rec["error"], ShouldEqual, "boom")
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level is raised to warn", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Warn(ctx, "shown")

			Convey("Then info records are dropped", func() {
				out := buf.String()
				So(out, ShouldNotContainSubstring, "hidden")
				So(strings.Count(out, "\n"), ShouldEqual, 1)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		for _, lvl := range []string{"debug", "INFO", " warn ", "warning", "error", ""} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("verbose"), ShouldNotBeNil)
		_ = SetLevelString("info")
	})
}
