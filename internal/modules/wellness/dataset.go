package wellness

import (
	"fmt"
	"time"
)

// Dataset is a chronological, non-empty sequence of daily records.
// It is never mutated after construction.
type Dataset struct {
	records []DailyRecord
}

// NewDataset validates records and returns a dataset holding a copy of them.
func NewDataset(records []DailyRecord) (Dataset, error) {
	if len(records) == 0 {
		return Dataset{}, ErrEmptyDataset
	}

	for i := 1; i < len(records); i++ {
		if !records[i].Date.After(records[i-1].Date) {
			return Dataset{}, fmt.Errorf("%w: row %d (%s) follows %s",
				ErrUnorderedDates, i+1,
				records[i].Date.Format(DateLayout),
				records[i-1].Date.Format(DateLayout))
		}
	}

	copied := make([]DailyRecord, len(records))
	copy(copied, records)
	return Dataset{records: copied}, nil
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of the records.
func (d Dataset) Records() []DailyRecord {
	out := make([]DailyRecord, len(d.records))
	copy(out, d.records)
	return out
}

// Baseline returns a window over the entire dataset.
func (d Dataset) Baseline() Window {
	return Window{records: d.records}
}

// Week returns a window over the last n records, or all of them when the
// dataset is shorter than n.
func (d Dataset) Week(n int) Window {
	if n < 0 {
		n = 0
	}
	if n > len(d.records) {
		n = len(d.records)
	}
	return Window{records: d.records[len(d.records)-n:]}
}

// Window is a read-only view over a contiguous range of dataset records
type Window struct {
	records []DailyRecord
}

// Len returns the number of records in the window.
func (w Window) Len() int {
	return len(w.records)
}

// Series returns the values of metric m, oldest first.
func (w Window) Series(m Metric) []float64 {
	out := make([]float64, 0, len(w.records))
	for _, r := range w.records {
		v, err := r.Value(m)
		if err != nil {
			return nil
		}
		out = append(out, v)
	}
	return out
}

// Start returns the date of the first record.
func (w Window) Start() time.Time {
	if len(w.records) == 0 {
		return time.Time{}
	}
	return w.records[0].Date
}

// End returns the date of the last record.
func (w Window) End() time.Time {
	if len(w.records) == 0 {
		return time.Time{}
	}
	return w.records[len(w.records)-1].Date
}
