package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			metricPrefixOpt := WithMetricPrefix("test-prefix")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(metricPrefixOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithMetricPrefix("test-prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording business metrics", func() {
			Convey("Then it should record generated datasets", func() {
				So(func() {
					RecordDatasetGenerated()
				}, ShouldNotPanic)
			})

			Convey("And it should record filter latency", func() {
				So(func() {
					RecordFilterLatency(1.5)
				}, ShouldNotPanic)
			})

			Convey("And it should record aggregation latency", func() {
				So(func() {
					RecordAggregationLatency(2.5)
				}, ShouldNotPanic)
			})

			Convey("And it should record leaderboard builds", func() {
				So(func() {
					RecordLeaderboardBuild()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording export metrics", func() {
			Convey("Then it should record requests and rows", func() {
				So(func() {
					RecordExportRequest()
					RecordExportRows(90)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording snapshot cache metrics", func() {
			Convey("Then it should record hits, misses, and size", func() {
				So(func() {
					RecordSnapshotCacheHit()
					RecordSnapshotCacheMiss()
					UpdateSnapshotCacheSize(3)
				}, ShouldNotPanic)
			})
		})

		Convey("When updating operational gauges", func() {
			Convey("Then it should update session and dataset gauges", func() {
				So(func() {
					UpdateSessionCount(2)
					UpdateDatasetRecords(90)
					UpdateVendorCount(15)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record requests and durations", func() {
				So(func() {
					RecordHTTPRequest("kpis", "GET", "200")
					RecordHTTPRequestDuration("kpis", "GET", "200", 3.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording error metrics", func() {
			Convey("Then it should record errors across dimensions", func() {
				So(func() {
					RecordErrorByComponent("export", "write_failed")
					RecordErrorByType("client_error", "medium")
					RecordErrorByEndpoint("leaderboard", "GET", "client_error")
					RecordErrorLatency("http", "client_error", 1.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording system metrics", func() {
			Convey("Then it should record memory, goroutines, and GC", func() {
				So(func() {
					UpdateSystemMemoryUsage(1024 * 1024)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the metrics package", t, func() {
		Convey("When getting the registry", func() {
			registry := GetRegistry()

			Convey("Then it should not be nil", func() {
				So(registry, ShouldNotBeNil)
			})

			Convey("And it should be gatherable", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeNil)
			})
		})
	})
}
