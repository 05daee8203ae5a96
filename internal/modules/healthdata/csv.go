package healthdata

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/pulse/internal/modules/wellness"
)

// DateColumn is the optional column holding each row's calendar date.
const DateColumn = "date"

// CSVSource reads the dataset from a CSV file on every Load
type CSVSource struct {
	Path  string
	Clock Clock
}

// NewCSVSource creates a CSV source using the wall clock for synthesized dates.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path, Clock: time.Now}
}

// Name returns a description of the source for logs.
func (s *CSVSource) Name() string {
	return "csv:" + s.Path
}

// Load opens and parses the file.
func (s *CSVSource) Load(ctx context.Context) (wellness.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return wellness.Dataset{}, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return wellness.Dataset{}, fmt.Errorf("%w: %s", ErrSourceNotFound, s.Path)
		}
		return wellness.Dataset{}, fmt.Errorf("failed to open %s: %w", s.Path, err)
	}
	defer f.Close()

	clock := s.Clock
	if clock == nil {
		clock = time.Now
	}
	return ParseCSV(f, clock())
}

// ParseCSV parses a header row followed by one row per day. The five metric
// columns are required, in any order; extra columns are ignored. Without a
// date column, dates are synthesized so the last row falls on today.
func ParseCSV(r io.Reader, today time.Time) (wellness.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return wellness.Dataset{}, &wellness.SchemaError{Missing: wellness.MissingFields(nil)}
	}
	if err != nil {
		return wellness.Dataset{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		columns[name] = i
	}

	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	if missing := wellness.MissingFields(names); len(missing) > 0 {
		return wellness.Dataset{}, &wellness.SchemaError{Missing: missing}
	}

	dateIdx, hasDates := columns[DateColumn]

	var records []wellness.DailyRecord
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return wellness.Dataset{}, fmt.Errorf("failed to read CSV row %d: %w", row, err)
		}

		var rec wellness.DailyRecord
		for _, m := range wellness.MetricFields {
			v, err := parseMetric(fields[columns[string(m)]])
			if err != nil {
				return wellness.Dataset{}, &wellness.RowError{Row: row, Column: string(m), Err: err}
			}
			if err := rec.Set(m, v); err != nil {
				return wellness.Dataset{}, err
			}
		}

		if hasDates {
			d, err := time.Parse(wellness.DateLayout, strings.TrimSpace(fields[dateIdx]))
			if err != nil {
				return wellness.Dataset{}, &wellness.RowError{Row: row, Column: DateColumn, Err: err}
			}
			rec.Date = d
		}

		records = append(records, rec)
	}

	if len(records) == 0 {
		return wellness.Dataset{}, wellness.ErrEmptyDataset
	}

	if !hasDates {
		synthesizeDates(records, today)
	}

	return wellness.NewDataset(records)
}

func parseMetric(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, errors.New("value is empty")
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", cell)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", cell)
	}
	return v, nil
}

// synthesizeDates assigns consecutive days ending on today's calendar date.
func synthesizeDates(records []wellness.DailyRecord, today time.Time) {
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(len(records) - 1))
	for i := range records {
		records[i].Date = start.AddDate(0, 0, i)
	}
}
