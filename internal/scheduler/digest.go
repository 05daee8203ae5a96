package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/pulse/internal/modules/wellness"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultDigestTimeout bounds a single digest run.
const DefaultDigestTimeout = 30 * time.Second

// SummaryProvider computes the weekly summary
type SummaryProvider interface {
	WeeklySummary(ctx context.Context) (wellness.WellnessSummary, error)
}

// DigestJob computes the weekly summary and writes it to the log
type DigestJob struct {
	log     zerolog.Logger
	service SummaryProvider
	timeout time.Duration
}

// NewDigestJob creates a new DigestJob
func NewDigestJob(service SummaryProvider) *DigestJob {
	return &DigestJob{
		log:     zerolog.Nop(),
		service: service,
		timeout: DefaultDigestTimeout,
	}
}

// SetLogger sets the logger for the job
func (j *DigestJob) SetLogger(log zerolog.Logger) {
	j.log = log.With().Str("job", j.Name()).Logger()
}

// SetTimeout overrides the per-run timeout
func (j *DigestJob) SetTimeout(timeout time.Duration) {
	j.timeout = timeout
}

// Name returns the job name
func (j *DigestJob) Name() string {
	return "weekly_digest"
}

// Run executes the digest job
func (j *DigestJob) Run() error {
	runID := uuid.New().String()
	log := j.log.With().Str("run_id", runID).Logger()

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	summary, err := j.service.WeeklySummary(ctx)
	if err != nil {
		return fmt.Errorf("digest run %s failed: %w", runID, err)
	}

	event := log.Info().
		Str("week_start", summary.WeekRange.Start).
		Str("week_end", summary.WeekRange.End).
		Float64("wellness_score", summary.WellnessScore).
		Int("anomalies", len(summary.Anomalies))
	if focus, score, ok := wellness.FocusCategory(summary.NormalizedMetrics); ok {
		event = event.Str("focus", string(focus)).Float64("focus_score", score)
	}
	event.Str("suggestion", summary.Suggestion.Text).Msg("Weekly wellness digest")

	return nil
}
