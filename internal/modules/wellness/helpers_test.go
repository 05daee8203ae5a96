package wellness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// constantRecords returns n flat records starting at testStart.
func constantRecords(n int) []DailyRecord {
	records := make([]DailyRecord, n)
	for i := range records {
		records[i] = DailyRecord{
			Date:           testStart.AddDate(0, 0, i),
			CaloriesOut:    2000,
			CaloriesIn:     2000,
			TotalSleepMins: 400,
			RHR:            60,
			HRV:            50,
		}
	}
	return records
}

func mustDataset(t *testing.T, records []DailyRecord) Dataset {
	t.Helper()
	ds, err := NewDataset(records)
	require.NoError(t, err)
	return ds
}
