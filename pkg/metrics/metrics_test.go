package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then defaults should be applied", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "medailles")
				So(manager.subsystem, ShouldEqual, "dashboard")
				So(manager.histogramBuckets, ShouldNotBeEmpty)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.exportsRendered.Inc()

			Convey("Then metrics should carry the custom names and labels", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, f := range families {
					if f.GetName() != "test_namespace_test_subsystem_exports_rendered_total" {
						continue
					}
					found = true
					So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					So(f.GetMetric()[0].GetLabel()[0].GetValue(), ShouldEqual, "test")
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty options are passed", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithConstLabels(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "medailles")
				So(manager.subsystem, ShouldEqual, "dashboard")
				So(manager.histogramBuckets, ShouldNotBeEmpty)
				So(manager.constLabels, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording group loads", func() {
			before := testutil.ToFloat64(globalManager.groupLoads.WithLabelValues("sports", OutcomeError))
			RecordGroupLoad("sports", OutcomeError, 12)

			Convey("Then the labelled counter should increase by one", func() {
				after := testutil.ToFloat64(globalManager.groupLoads.WithLabelValues("sports", OutcomeError))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When recording a build", func() {
			before := testutil.ToFloat64(globalManager.buildsTotal.WithLabelValues(OutcomeOK))
			RecordBuild(OutcomeOK, 42, 1_700_000_000)

			Convey("Then the build counter and timestamp should be updated", func() {
				So(testutil.ToFloat64(globalManager.buildsTotal.WithLabelValues(OutcomeOK))-before, ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.lastBuildUnix), ShouldEqual, 1_700_000_000)
			})
		})

		Convey("When recording charts and exports", func() {
			charts := testutil.ToFloat64(globalManager.chartsRendered.WithLabelValues("raster"))
			exports := testutil.ToFloat64(globalManager.exportsRendered)
			RecordChartRendered("raster")
			RecordExport()

			Convey("Then both counters should increase", func() {
				So(testutil.ToFloat64(globalManager.chartsRendered.WithLabelValues("raster"))-charts, ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.exportsRendered)-exports, ShouldEqual, 1)
			})
		})

		Convey("When recording HTTP traffic and errors", func() {
			RecordHTTPRequest("/", "GET", "200")
			RecordHTTPRequestDuration("/", "GET", "200", 3.5)
			RecordErrorByComponent("loader", "decode")
			UpdateSystemMemoryUsage(1024)
			UpdateSystemGoroutineCount(7)

			Convey("Then the private registry should expose them", func() {
				count, err := testutil.GatherAndCount(GetRegistry(),
					"medailles_dashboard_http_requests_total",
					"medailles_dashboard_errors_by_component_total",
				)
				So(err, ShouldBeNil)
				So(count, ShouldBeGreaterThanOrEqualTo, 2)
				So(testutil.ToFloat64(globalManager.systemMemoryUsage), ShouldEqual, 1024)
				So(testutil.ToFloat64(globalManager.systemGoroutineCount), ShouldEqual, 7)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent metric recording", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(registry))

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					manager.groupLoads.WithLabelValues("editions", OutcomeOK).Inc()
				}
			}()
		}
		wg.Wait()

		Convey("Then no increments should be lost", func() {
			So(testutil.ToFloat64(manager.groupLoads.WithLabelValues("editions", OutcomeOK)), ShouldEqual, 1000)
		})
	})
}
