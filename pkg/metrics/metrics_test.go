package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/okian/paddock/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGlobalManager(t *testing.T) {
	Convey("Given the package-level metrics", t, func() {
		reg := metrics.GetRegistry()
		So(reg, ShouldNotBeNil)

		Convey("When recording engine activity", func() {
			before := counterValue(reg, "paddock_engine_rankings_computed_total", "operation", "rank")
			metrics.RecordRanking("rank")
			metrics.RecordInstructions("consolidate", "kill", 2)
			metrics.RecordInstructions("consolidate", "move", 0)
			metrics.RecordEngineLatency("rank", 1.5)
			metrics.ObserveHerdSize(20)
			metrics.RecordRequestRejected("rank")

			Convey("Then the counters advance", func() {
				after := counterValue(reg, "paddock_engine_rankings_computed_total", "operation", "rank")
				So(after, ShouldEqual, before+1)
			})

			Convey("And zero instruction counts add no samples", func() {
				moves := counterValue(reg, "paddock_engine_plan_instructions_total", "kind", "move")
				So(moves, ShouldEqual, 0)
			})
		})

		Convey("When recording HTTP and system activity", func() {
			So(func() {
				metrics.RecordHTTPRequest("rank", "POST", "200")
				metrics.RecordHTTPRequestDuration("rank", "POST", "200", 3.2)
				metrics.RecordHTTPError("rank", "client_error")
				metrics.UpdateSystemMemoryUsage(1 << 20)
				metrics.UpdateSystemGoroutineCount(12)
				metrics.RecordSystemGCPauseTime(0.2)
			}, ShouldNotPanic)
		})
	})
}

func TestNewManagerIsolation(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithPrometheusRegistry(reg),
			metrics.WithNamespace("test"),
			metrics.WithSubsystem("unit"),
			metrics.WithHistogramBuckets([]float64{1, 10, 100}),
		)

		Convey("Then construction registers without collisions", func() {
			So(m, ShouldNotBeNil)
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["test_unit_rankings_computed_total"], ShouldBeFalse) // counters appear only once used
		})
	})
}

// counterValue sums a counter family filtered on one label pair.
func counterValue(reg *prometheus.Registry, name, label, value string) float64 {
	families, err := reg.Gather()
	So(err, ShouldBeNil)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		var sum float64
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					sum += m.GetCounter().GetValue()
				}
			}
		}
		return sum
	}
	return 0
}
