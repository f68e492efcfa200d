package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should use the podium namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "podium")
				So(manager.refreshInterval, ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithRefreshInterval(5*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.refreshInterval, ShouldEqual, 5*time.Second)
			})

			Convey("Then collector names carry the namespace", func() {
				manager.rosterSize.Set(4)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_leaderboard_roster_size" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty option values are passed", func() {
			manager := NewManager(
				WithNamespace(""),
				WithRefreshInterval(0),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "podium")
				So(manager.refreshInterval, ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestDomainMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		modes := []string{"INTRO", "TOP3", "RANKS_4_7", "RANKS_8_10"}

		Convey("When a rank recompute is recorded", func() {
			before := testutil.ToFloat64(globalManager.rankRecomputes.WithLabelValues("stable"))
			RecordRankRecompute("stable", 0.3)

			Convey("Then the policy counter increases", func() {
				So(testutil.ToFloat64(globalManager.rankRecomputes.WithLabelValues("stable")), ShouldEqual, before+1)
			})
		})

		Convey("When a mode transition is recorded", func() {
			RecordModeTransition("TOP3", modes)

			Convey("Then only that mode is active", func() {
				So(testutil.ToFloat64(globalManager.activeMode.WithLabelValues("TOP3")), ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.activeMode.WithLabelValues("INTRO")), ShouldEqual, 0)
				So(testutil.ToFloat64(globalManager.activeMode.WithLabelValues("RANKS_8_10")), ShouldEqual, 0)
			})
		})

		Convey("When gauges are updated", func() {
			UpdateRosterSize(12)
			UpdateSlideDuration(7 * time.Second)

			Convey("Then their values are visible", func() {
				So(testutil.ToFloat64(globalManager.rosterSize), ShouldEqual, 12)
				So(testutil.ToFloat64(globalManager.slideDuration), ShouldEqual, 7)
			})
		})

		Convey("When store and import events are recorded", func() {
			errBefore := testutil.ToFloat64(globalManager.storeErrors.WithLabelValues("redis", "save"))
			studentsBefore := testutil.ToFloat64(globalManager.importStudents)
			RecordStoreLatency("redis", "save", 1.5)
			RecordStoreError("redis", "save")
			RecordImport("heuristic", 3, 1)

			Convey("Then counters move", func() {
				So(testutil.ToFloat64(globalManager.storeErrors.WithLabelValues("redis", "save")), ShouldEqual, errBefore+1)
				So(testutil.ToFloat64(globalManager.importStudents), ShouldEqual, studentsBefore+3)
			})
		})

		Convey("When the remaining recorders are called", func() {
			So(func() {
				RecordTickLatency(0.2)
				RecordHTTPRequest("/rankings", "GET", "200")
				RecordHTTPRequestDuration("/rankings", "GET", "200", 2)
				RecordErrorByComponent("api", "bad_request")
				RecordErrorByType("bad_request", "warning")
				RecordErrorByEndpoint("/rankings", "POST", "bad_request")
				RecordErrorLatency("api", "bad_request", 1)
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
				RecordSystemGCPauseTime(0.5)
			}, ShouldNotPanic)

			Convey("Then the custom registry exposes podium metrics", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				joined := strings.Join(names, ",")
				So(joined, ShouldContainSubstring, "podium_leaderboard_http_requests_total")
				So(joined, ShouldContainSubstring, "podium_leaderboard_tick_latency_milliseconds")
				So(joined, ShouldNotContainSubstring, "go_goroutines")
			})
		})

		Convey("Then the refresh interval has a default", func() {
			So(RefreshInterval(), ShouldEqual, defaultRefreshInterval)
		})
	})
}

func TestInit(t *testing.T) {
	Convey("Given the metrics package is initialised from configuration", t, func() {
		Init(WithNamespace("school"), WithRefreshInterval(time.Minute))
		defer Init()

		Convey("Then recorders write to the new registry under the new namespace", func() {
			UpdateRosterSize(3)
			So(RefreshInterval(), ShouldEqual, time.Minute)

			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			So(names, ShouldContain, "school_leaderboard_roster_size")
			So(testutil.ToFloat64(globalManager.rosterSize), ShouldEqual, 3)
		})
	})
}
