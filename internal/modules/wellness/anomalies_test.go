package wellness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alternatingBaseline returns n records whose calories_out alternates
// between 1900 and 2100 (mean 2000, population std 100).
func alternatingBaseline(n int) []DailyRecord {
	records := constantRecords(n)
	for i := range records {
		if i%2 == 0 {
			records[i].CaloriesOut = 1900
		} else {
			records[i].CaloriesOut = 2100
		}
	}
	return records
}

func weekWith(t *testing.T, n int, mutate func(r *DailyRecord)) Window {
	t.Helper()
	records := constantRecords(n)
	for i := range records {
		mutate(&records[i])
	}
	return mustDataset(t, records).Baseline()
}

func TestDetectAnomalies_ShortBaseline(t *testing.T) {
	records := alternatingBaseline(13)
	baseline := mustDataset(t, records).Baseline()
	week := weekWith(t, 7, func(r *DailyRecord) {
		r.CaloriesOut = 1e6
		r.RHR = 500
	})

	anomalies := DetectAnomalies(week, baseline, DefaultZThreshold)

	assert.NotNil(t, anomalies)
	assert.Empty(t, anomalies, "baselines shorter than 14 records never report anomalies")
}

func TestDetectAnomalies_DetectsShift(t *testing.T) {
	baseline := mustDataset(t, alternatingBaseline(28)).Baseline()

	testCases := []struct {
		name      string
		weekValue float64
		zScore    float64
		direction Direction
	}{
		{"higher", 2300, 3.0, DirectionHigher},
		{"lower", 1800, -2.0, DirectionLower},
		{"exactly at threshold", 2150, 1.5, DirectionHigher},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			week := weekWith(t, 7, func(r *DailyRecord) { r.CaloriesOut = tc.weekValue })

			anomalies := DetectAnomalies(week, baseline, DefaultZThreshold)

			require.Len(t, anomalies, 1)
			a := anomalies[0]
			assert.Equal(t, MetricCaloriesOut, a.Metric)
			assert.InDelta(t, tc.weekValue, a.Value, 1e-9)
			assert.InDelta(t, 2000.0, a.BaselineMean, 1e-9)
			assert.InDelta(t, tc.zScore, a.ZScore, 1e-9)
			assert.Equal(t, tc.direction, a.Direction)
		})
	}
}

func TestDetectAnomalies_BelowThreshold(t *testing.T) {
	baseline := mustDataset(t, alternatingBaseline(28)).Baseline()
	week := weekWith(t, 7, func(r *DailyRecord) { r.CaloriesOut = 2140 })

	assert.Empty(t, DetectAnomalies(week, baseline, DefaultZThreshold))
}

func TestDetectAnomalies_ZeroVarianceMetricSkipped(t *testing.T) {
	// Flat 2000 baseline; the shifted week does not produce a calories_out anomaly
	baseline := mustDataset(t, constantRecords(28)).Baseline()
	week := weekWith(t, 7, func(r *DailyRecord) { r.CaloriesOut = 2600 })

	anomalies := DetectAnomalies(week, baseline, DefaultZThreshold)

	for _, a := range anomalies {
		assert.NotEqual(t, MetricCaloriesOut, a.Metric)
	}
	assert.Empty(t, anomalies)
}

func TestDetectAnomalies_NonFiniteNeverFlagged(t *testing.T) {
	// An infinite value makes the baseline std NaN, so z is NaN
	records := alternatingBaseline(28)
	records[27].CaloriesOut = math.Inf(1)
	ds := mustDataset(t, records)

	anomalies := DetectAnomalies(ds.Week(7), ds.Baseline(), DefaultZThreshold)

	assert.Empty(t, anomalies)
	for _, a := range anomalies {
		assert.False(t, math.IsNaN(a.ZScore))
	}
}

func TestDetectAnomalies_FollowsMetricOrder(t *testing.T) {
	records := alternatingBaseline(28)
	for i := range records {
		if i%2 == 0 {
			records[i].RHR = 58
		} else {
			records[i].RHR = 62
		}
	}
	baseline := mustDataset(t, records).Baseline()

	// rhr deviates far more than calories_out, but calories_out is declared first
	week := weekWith(t, 7, func(r *DailyRecord) {
		r.CaloriesOut = 2200
		r.RHR = 80
	})

	anomalies := DetectAnomalies(week, baseline, DefaultZThreshold)

	require.Len(t, anomalies, 2)
	assert.Equal(t, MetricCaloriesOut, anomalies[0].Metric)
	assert.Equal(t, MetricRHR, anomalies[1].Metric)
	assert.Greater(t, anomalies[1].ZScore, anomalies[0].ZScore)
}

func TestDetectAnomalies_DirectionMatchesSign(t *testing.T) {
	baseline := mustDataset(t, alternatingBaseline(28)).Baseline()

	for _, value := range []float64{1500, 1700, 2400, 2600} {
		week := weekWith(t, 7, func(r *DailyRecord) { r.CaloriesOut = value })
		anomalies := DetectAnomalies(week, baseline, DefaultZThreshold)
		require.Len(t, anomalies, 1)

		a := anomalies[0]
		if a.Value > a.BaselineMean {
			assert.Equal(t, DirectionHigher, a.Direction)
			assert.Greater(t, a.ZScore, 0.0)
		} else {
			assert.Equal(t, DirectionLower, a.Direction)
			assert.Less(t, a.ZScore, 0.0)
		}
	}
}

func TestDetectAnomalies_Deterministic(t *testing.T) {
	baseline := mustDataset(t, alternatingBaseline(30)).Baseline()
	week := weekWith(t, 7, func(r *DailyRecord) { r.CaloriesOut = 2500 })

	first := DetectAnomalies(week, baseline, DefaultZThreshold)
	second := DetectAnomalies(week, baseline, DefaultZThreshold)

	assert.Equal(t, first, second)
}
