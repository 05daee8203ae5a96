package testing

import (
	"context"
	"testing"
	"time"

	"github.com/aristath/pulse/internal/database"
	"github.com/aristath/pulse/internal/modules/wellness"
)

// FixtureStart is the first date of generated daily records.
var FixtureStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NewDailyRecordFixtures returns n consecutive days of plausible metrics.
// Values cycle with a short period so every metric has a non-zero spread.
func NewDailyRecordFixtures(n int) []wellness.DailyRecord {
	records := make([]wellness.DailyRecord, n)
	for i := range records {
		k := float64(i % 4)
		records[i] = wellness.DailyRecord{
			Date:           FixtureStart.AddDate(0, 0, i),
			CaloriesOut:    2100 + 50*k,
			CaloriesIn:     1950 + 40*k,
			TotalSleepMins: 400 + 10*k,
			RHR:            58 + k,
			HRV:            60 + 2*k,
		}
	}
	return records
}

// InsertDailyRecords writes records into the daily_metrics table.
func InsertDailyRecords(t *testing.T, db *database.DB, records []wellness.DailyRecord) {
	t.Helper()

	for _, r := range records {
		_, err := db.ExecContext(context.Background(),
			`INSERT INTO daily_metrics (date, calories_out, calories_in, total_sleep_mins, rhr, hrv)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.Date.Format(wellness.DateLayout), r.CaloriesOut, r.CaloriesIn, r.TotalSleepMins, r.RHR, r.HRV)
		if err != nil {
			t.Fatalf("Failed to insert record for %s: %v", r.Date.Format(wellness.DateLayout), err)
		}
	}
}
