package metrics

import (
	"os"
	"path/filepath"
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
			manager := NewManager()

			Convey("Then it should own a fresh registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
				So(manager.Registry(), ShouldNotEqual, GetRegistry())
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("clean"),
				WithHistogramBuckets([]float64{1, 10}),
				WithCustomLabels(map[string]string{"dataset": "fifa"}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordRowsLoaded(3)

			Convey("Then metrics carry the namespace and constant labels", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)
				So(families[0].GetName(), ShouldStartWith, "test_clean_")
				So(families[0].GetMetric()[0].GetLabel()[0].GetValue(), ShouldEqual, "fifa")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When recording pipeline activity", func() {
			m.RecordRowsLoaded(10)
			m.RecordCellsImputed("impute_value", "value", 4)
			m.RecordCellsImputed("impute_value", "value", 0)
			m.RecordParseFailures("birth_date", 2)
			m.UpdateRemainingNulls("club", 7)
			m.RecordStageFailure("persist")
			m.RecordStageDuration("normalize_date", 3*time.Millisecond)
			m.RecordRun(OutcomeSuccess, time.Unix(1700000000, 0))

			Convey("Then the counters reflect it", func() {
				So(testutil.ToFloat64(m.rowsLoaded), ShouldEqual, 10)
				So(testutil.ToFloat64(m.duplicateObservations), ShouldEqual, 2)
				So(testutil.ToFloat64(m.cellsImputed.WithLabelValues("impute_value", "value")), ShouldEqual, 4)
				So(testutil.ToFloat64(m.parseFailures.WithLabelValues("birth_date")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.remainingNulls.WithLabelValues("club")), ShouldEqual, 7)
				So(testutil.ToFloat64(m.stageFailures.WithLabelValues("persist")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.runs.WithLabelValues(OutcomeSuccess)), ShouldEqual, 1)
				So(testutil.ToFloat64(m.lastRunUnixTS), ShouldEqual, 1700000000)
				So(testutil.CollectAndCount(m.stageDuration), ShouldEqual, 1)
			})

			Convey("And zero counts do not create series", func() {
				So(testutil.CollectAndCount(m.cellsImputed), ShouldEqual, 1)
			})
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given recorded metrics", t, func() {
		m := NewManager()
		m.RecordRowsLoaded(2)

		Convey("When writing them to a file", func() {
			path := filepath.Join(t.TempDir(), "fifaclean.prom")
			err := m.WriteTextfile(path)

			Convey("Then the exposition format is written", func() {
				So(err, ShouldBeNil)
				raw, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(raw), ShouldContainSubstring, "fifaclean_pipeline_rows_loaded_total 2")
			})
		})

		Convey("When the directory does not exist", func() {
			err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))

			Convey("Then ErrWriteMetrics is returned", func() {
				So(err, ShouldNotBeNil)
				So(strings.Contains(err.Error(), ErrWriteMetrics.Error()), ShouldBeTrue)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then the package helpers do not panic", func() {
			So(func() {
				RecordRowsLoaded(1)
				RecordCellsImputed("impute_work_rate", "work_rate", 1)
				RecordParseFailures("value", 1)
				UpdateRemainingNulls("value", 0)
				RecordStageDuration("persist", time.Millisecond)
				RecordStageFailure("load")
				RecordRun(OutcomeFailure, time.Now())
			}, ShouldNotPanic)
			So(Default().Registry(), ShouldEqual, GetRegistry())
		})
	})
}
