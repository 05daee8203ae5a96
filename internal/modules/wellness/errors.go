package wellness

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyDataset is returned when a dataset has no records.
	ErrEmptyDataset = errors.New("dataset has no records")

	// ErrUnorderedDates is returned when record dates are not strictly increasing.
	ErrUnorderedDates = errors.New("record dates must be strictly increasing")
)

// SchemaError reports required metric fields missing from a data source.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required fields: [%s]", strings.Join(e.Missing, ", "))
}

// RowError reports a value in a data source row that could not be loaded.
// Row is 1-based and counts data rows only.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %s: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// MissingFields returns the metric fields not present in columns, in declared order.
func MissingFields(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	var missing []string
	for _, m := range MetricFields {
		if !present[string(m)] {
			missing = append(missing, string(m))
		}
	}
	return missing
}

// IsValidationError reports whether err is a data validation failure
// (schema, row, ordering or empty dataset) rather than an I/O failure.
func IsValidationError(err error) bool {
	var schemaErr *SchemaError
	var rowErr *RowError
	return errors.As(err, &schemaErr) ||
		errors.As(err, &rowErr) ||
		errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrUnorderedDates)
}
