// Package wellness computes the weekly wellness summary from a window of daily health metrics.
package wellness

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for record dates and the week range.
const DateLayout = "2006-01-02"

// Metric identifies one of the numeric fields of a daily record
type Metric string

const (
	MetricCaloriesOut    Metric = "calories_out"
	MetricCaloriesIn     Metric = "calories_in"
	MetricTotalSleepMins Metric = "total_sleep_mins"
	MetricRHR            Metric = "rhr"
	MetricHRV            Metric = "hrv"
)

// MetricFields lists the required metric fields in declared order.
// Anomaly output follows this order.
var MetricFields = []Metric{
	MetricCaloriesOut,
	MetricCaloriesIn,
	MetricTotalSleepMins,
	MetricRHR,
	MetricHRV,
}

// Category is a wellness category reported in the normalized metrics
type Category string

const (
	CategoryExercise  Category = "exercise"
	CategorySleep     Category = "sleep"
	CategoryNutrition Category = "nutrition"
	CategoryFatigue   Category = "fatigue"
)

// Categories lists the categories in iteration order. Ties for the focus
// category are broken by this order.
var Categories = []Category{
	CategoryExercise,
	CategorySleep,
	CategoryNutrition,
	CategoryFatigue,
}

// CategoryMetrics maps every category to the metric it is scored from.
// rhr is intentionally absent: it only feeds anomaly detection.
var CategoryMetrics = map[Category]Metric{
	CategoryExercise:  MetricCaloriesOut,
	CategorySleep:     MetricTotalSleepMins,
	CategoryNutrition: MetricCaloriesIn,
	CategoryFatigue:   MetricHRV,
}

// DailyRecord is one day of health metrics
type DailyRecord struct {
	Date           time.Time `json:"date"`
	CaloriesOut    float64   `json:"calories_out"`
	CaloriesIn     float64   `json:"calories_in"`
	TotalSleepMins float64   `json:"total_sleep_mins"`
	RHR            float64   `json:"rhr"`
	HRV            float64   `json:"hrv"`
}

// Value returns the value of the given metric field.
func (r DailyRecord) Value(m Metric) (float64, error) {
	switch m {
	case MetricCaloriesOut:
		return r.CaloriesOut, nil
	case MetricCaloriesIn:
		return r.CaloriesIn, nil
	case MetricTotalSleepMins:
		return r.TotalSleepMins, nil
	case MetricRHR:
		return r.RHR, nil
	case MetricHRV:
		return r.HRV, nil
	default:
		return 0, fmt.Errorf("unknown metric %q", m)
	}
}

// Set assigns the value of the given metric field.
func (r *DailyRecord) Set(m Metric, v float64) error {
	switch m {
	case MetricCaloriesOut:
		r.CaloriesOut = v
	case MetricCaloriesIn:
		r.CaloriesIn = v
	case MetricTotalSleepMins:
		r.TotalSleepMins = v
	case MetricRHR:
		r.RHR = v
	case MetricHRV:
		r.HRV = v
	default:
		return fmt.Errorf("unknown metric %q", m)
	}
	return nil
}

// Direction describes on which side of the baseline an anomaly sits
type Direction string

const (
	DirectionHigher Direction = "higher"
	DirectionLower  Direction = "lower"
)

// Anomaly is a metric whose week average deviates from its baseline
type Anomaly struct {
	Metric       Metric    `json:"metric"`
	Value        float64   `json:"value"`
	BaselineMean float64   `json:"baseline_mean"`
	ZScore       float64   `json:"z_score"`
	Direction    Direction `json:"direction"`
}

// WeekRange is the first and last calendar date of the week window
type WeekRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Suggestion is the generated recommendation
type Suggestion struct {
	Text    string `json:"text"`
	Caveats string `json:"caveats"`
}

// WellnessSummary is the result of one summary computation
type WellnessSummary struct {
	WeekRange         WeekRange            `json:"week_range"`
	WellnessScore     float64              `json:"wellness_score"`
	NormalizedMetrics map[Category]float64 `json:"normalized_metrics"`
	Anomalies         []Anomaly            `json:"anomalies"`
	Suggestion        Suggestion           `json:"suggestion"`
}
