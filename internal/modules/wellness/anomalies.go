package wellness

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultZThreshold is the minimum |z| flagged as an anomaly.
	DefaultZThreshold = 1.5

	// MinBaselineDays is the baseline length below which no anomalies are reported.
	MinBaselineDays = 14
)

// DetectAnomalies flags metrics whose week average sits at least zThreshold
// population standard deviations away from the baseline mean. Metrics are
// checked in MetricFields order, which is also the output order.
func DetectAnomalies(week, baseline Window, zThreshold float64) []Anomaly {
	return detectAnomalies(week, baseline, zThreshold, MinBaselineDays)
}

func detectAnomalies(week, baseline Window, zThreshold float64, minBaseline int) []Anomaly {
	anomalies := []Anomaly{}
	if baseline.Len() < minBaseline || week.Len() == 0 {
		return anomalies
	}

	for _, metric := range MetricFields {
		series := baseline.Series(metric)
		baselineMean, baselineStd := stat.PopMeanStdDev(series, nil)
		if isClose(baselineStd, 0) {
			continue
		}

		weekValue := stat.Mean(week.Series(metric), nil)
		z := (weekValue - baselineMean) / baselineStd
		// NaN z-scores from non-finite inputs never qualify
		if !(math.Abs(z) >= zThreshold) {
			continue
		}

		direction := DirectionLower
		if z > 0 {
			direction = DirectionHigher
		}
		anomalies = append(anomalies, Anomaly{
			Metric:       metric,
			Value:        weekValue,
			BaselineMean: baselineMean,
			ZScore:       z,
			Direction:    direction,
		})
	}

	return anomalies
}
