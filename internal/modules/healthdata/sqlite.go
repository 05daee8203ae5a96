package healthdata

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aristath/pulse/internal/database"
	"github.com/aristath/pulse/internal/modules/wellness"
)

// MetricsTable is the table read by SQLiteSource.
const MetricsTable = "daily_metrics"

// SQLiteSource reads the dataset from the daily_metrics table
type SQLiteSource struct {
	db *database.DB
}

// NewSQLiteSource creates a source over an open database.
func NewSQLiteSource(db *database.DB) *SQLiteSource {
	return &SQLiteSource{db: db}
}

// Name returns a description of the source for logs.
func (s *SQLiteSource) Name() string {
	return "sqlite:" + s.db.Path()
}

// Load validates the table columns and reads all rows ordered by date.
func (s *SQLiteSource) Load(ctx context.Context) (wellness.Dataset, error) {
	columns, err := s.columns(ctx)
	if err != nil {
		return wellness.Dataset{}, err
	}
	if len(columns) == 0 {
		return wellness.Dataset{}, fmt.Errorf("%w: table %s", ErrSourceNotFound, MetricsTable)
	}

	missing := wellness.MissingFields(columns)
	if !contains(columns, DateColumn) {
		missing = append([]string{DateColumn}, missing...)
	}
	if len(missing) > 0 {
		return wellness.Dataset{}, &wellness.SchemaError{Missing: missing}
	}

	selected := make([]string, 0, len(wellness.MetricFields)+1)
	selected = append(selected, DateColumn)
	for _, m := range wellness.MetricFields {
		selected = append(selected, string(m))
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s ASC",
		strings.Join(selected, ", "), MetricsTable, DateColumn)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return wellness.Dataset{}, fmt.Errorf("failed to query %s: %w", MetricsTable, err)
	}
	defer rows.Close()

	var records []wellness.DailyRecord
	for row := 1; rows.Next(); row++ {
		var date string
		values := make([]sql.NullFloat64, len(wellness.MetricFields))
		dest := []interface{}{&date}
		for i := range values {
			dest = append(dest, &values[i])
		}

		if err := rows.Scan(dest...); err != nil {
			return wellness.Dataset{}, &wellness.RowError{Row: row, Column: strings.Join(selected, ","), Err: err}
		}

		var rec wellness.DailyRecord
		d, err := time.Parse(wellness.DateLayout, strings.TrimSpace(date))
		if err != nil {
			return wellness.Dataset{}, &wellness.RowError{Row: row, Column: DateColumn, Err: err}
		}
		rec.Date = d

		for i, m := range wellness.MetricFields {
			if !values[i].Valid {
				return wellness.Dataset{}, &wellness.RowError{Row: row, Column: string(m), Err: fmt.Errorf("value is NULL")}
			}
			if math.IsNaN(values[i].Float64) || math.IsInf(values[i].Float64, 0) {
				return wellness.Dataset{}, &wellness.RowError{Row: row, Column: string(m), Err: fmt.Errorf("%v is not a finite number", values[i].Float64)}
			}
			if err := rec.Set(m, values[i].Float64); err != nil {
				return wellness.Dataset{}, err
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return wellness.Dataset{}, fmt.Errorf("failed to read %s: %w", MetricsTable, err)
	}

	if len(records) == 0 {
		return wellness.Dataset{}, wellness.ErrEmptyDataset
	}
	return wellness.NewDataset(records)
}

func (s *SQLiteSource) columns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", MetricsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", MetricsTable, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column info: %w", err)
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
