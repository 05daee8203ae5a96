// Package metrics provides prometheus collectors for the summary pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Summary status label values
const (
	StatusOK    = "ok"
	StatusError = "error"
)

type Manager struct {
	// counters
	CounterSummaries *prometheus.CounterVec
	CounterAnomalies *prometheus.CounterVec

	// gauges
	GaugeWellnessScore prometheus.Gauge

	// histograms
	HistSummaryDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("pulse", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("pulse", "test", reg), reg
}

// NewRegistry returns a registry with build info, runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterSummaries := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "summaries_total",
		Help:      "The total number of computed wellness summaries",
	}, []string{"status"})
	counterAnomalies := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "anomalies_total",
		Help:      "The total number of reported metric anomalies",
	}, []string{"metric", "direction"})

	gaugeWellnessScore := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "wellness_score",
		Help:      "Wellness score of the last computed summary",
	})

	histSummaryDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Buckets: []float64{
			0.0001, 0.0005, 0.001, 0.005, 0.01,
			0.05, 0.1, 0.5, 1, 5,
		},
		Name: "summary_duration_seconds",
		Help: "Duration of loading and summarizing a dataset in seconds",
	})

	return &Manager{
		CounterSummaries:    counterSummaries,
		CounterAnomalies:    counterAnomalies,
		GaugeWellnessScore:  gaugeWellnessScore,
		HistSummaryDuration: histSummaryDuration,
	}
}
