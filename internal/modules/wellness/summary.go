package wellness

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// DefaultWeekDays is the length of the week window.
const DefaultWeekDays = 7

// Config tunes the summary computation
type Config struct {
	WeekDays        int     `yaml:"week_days" json:"week_days"`
	ZThreshold      float64 `yaml:"z_threshold" json:"z_threshold"`
	MinBaselineDays int     `yaml:"min_baseline_days" json:"min_baseline_days"`
}

// DefaultConfig returns the standard 7-day week, 1.5 z threshold and 14-day minimum baseline.
func DefaultConfig() Config {
	return Config{
		WeekDays:        DefaultWeekDays,
		ZThreshold:      DefaultZThreshold,
		MinBaselineDays: MinBaselineDays,
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.WeekDays <= 0 {
		return fmt.Errorf("week_days must be positive, got %d", c.WeekDays)
	}
	if c.ZThreshold <= 0 || math.IsNaN(c.ZThreshold) || math.IsInf(c.ZThreshold, 0) {
		return fmt.Errorf("z_threshold must be a positive number, got %v", c.ZThreshold)
	}
	if c.MinBaselineDays < 0 {
		return fmt.Errorf("min_baseline_days cannot be negative, got %d", c.MinBaselineDays)
	}
	return nil
}

// Summarizer turns a dataset into a WellnessSummary
type Summarizer struct {
	cfg Config
}

// NewSummarizer creates a summarizer, rejecting an invalid config.
func NewSummarizer(cfg Config) (*Summarizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid summary config: %w", err)
	}
	return &Summarizer{cfg: cfg}, nil
}

// Config returns the summarizer configuration.
func (s *Summarizer) Config() Config {
	return s.cfg
}

// Summarize computes the weekly summary with the default configuration.
func Summarize(ds Dataset) (WellnessSummary, error) {
	return (&Summarizer{cfg: DefaultConfig()}).Summarize(ds)
}

// Summarize computes the weekly summary. The week window is the last
// WeekDays records, the baseline is the whole dataset.
func (s *Summarizer) Summarize(ds Dataset) (WellnessSummary, error) {
	if ds.Len() == 0 {
		return WellnessSummary{}, ErrEmptyDataset
	}

	week := ds.Week(s.cfg.WeekDays)
	baseline := ds.Baseline()

	normalized := make(map[Category]float64, len(Categories))
	scores := make([]float64, 0, len(Categories))
	for _, category := range Categories {
		metric := CategoryMetrics[category]
		weekValue := stat.Mean(week.Series(metric), nil)
		score := Normalize(weekValue, baseline.Series(metric))
		normalized[category] = score
		scores = append(scores, score)
	}

	anomalies := detectAnomalies(week, baseline, s.cfg.ZThreshold, s.cfg.MinBaselineDays)

	return WellnessSummary{
		WeekRange: WeekRange{
			Start: week.Start().Format(DateLayout),
			End:   week.End().Format(DateLayout),
		},
		WellnessScore:     roundTo1(stat.Mean(scores, nil)),
		NormalizedMetrics: normalized,
		Anomalies:         anomalies,
		Suggestion:        Suggest(normalized, anomalies),
	}, nil
}

// roundTo1 rounds to one decimal through a correctly rounded decimal
// conversion, so values just below a tie are not pushed over it.
func roundTo1(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
