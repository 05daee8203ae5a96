package wellness

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/pulse/internal/metrics"
	"github.com/aristath/pulse/internal/utils"
	"github.com/rs/zerolog"
)

// DataSource supplies the full dataset for a summary
type DataSource interface {
	Load(ctx context.Context) (Dataset, error)
	Name() string
}

// Service loads a dataset from its source and summarizes it on every call.
// It holds no state between calls.
type Service struct {
	source     DataSource
	summarizer *Summarizer
	metrics    *metrics.Manager
	log        zerolog.Logger
}

// NewService creates a new wellness service. m may be nil.
func NewService(source DataSource, summarizer *Summarizer, m *metrics.Manager, log zerolog.Logger) *Service {
	return &Service{
		source:     source,
		summarizer: summarizer,
		metrics:    m,
		log:        log.With().Str("service", "wellness").Logger(),
	}
}

// SourceName returns the name of the configured data source.
func (s *Service) SourceName() string {
	return s.source.Name()
}

// WeeklySummary loads the dataset and computes its summary. Loader errors
// are returned wrapped but otherwise unchanged.
func (s *Service) WeeklySummary(ctx context.Context) (WellnessSummary, error) {
	timer := utils.NewTimer("weekly_summary", s.log)

	ds, err := s.source.Load(ctx)
	if err != nil {
		s.observeFailure(timer.Elapsed())
		return WellnessSummary{}, fmt.Errorf("failed to load dataset from %s: %w", s.source.Name(), err)
	}

	summary, err := s.summarizer.Summarize(ds)
	if err != nil {
		s.observeFailure(timer.Elapsed())
		return WellnessSummary{}, fmt.Errorf("failed to summarize dataset: %w", err)
	}

	elapsed := timer.Stop()
	s.observeSuccess(summary, elapsed)

	s.log.Debug().
		Str("source", s.source.Name()).
		Int("rows", ds.Len()).
		Float64("wellness_score", summary.WellnessScore).
		Int("anomalies", len(summary.Anomalies)).
		Msg("Computed wellness summary")

	return summary, nil
}

func (s *Service) observeFailure(elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.CounterSummaries.WithLabelValues(metrics.StatusError).Inc()
	s.metrics.HistSummaryDuration.Observe(elapsed.Seconds())
}

func (s *Service) observeSuccess(summary WellnessSummary, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.CounterSummaries.WithLabelValues(metrics.StatusOK).Inc()
	s.metrics.HistSummaryDuration.Observe(elapsed.Seconds())
	s.metrics.GaugeWellnessScore.Set(summary.WellnessScore)
	for _, a := range summary.Anomalies {
		s.metrics.CounterAnomalies.WithLabelValues(string(a.Metric), string(a.Direction)).Inc()
	}
}
