// Package healthdata loads daily health records from CSV files, SQLite
// databases and S3 objects.
package healthdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/aristath/pulse/internal/database"
	"github.com/aristath/pulse/internal/modules/wellness"
)

// ErrSourceNotFound is returned when the configured file, table or object does not exist.
var ErrSourceNotFound = errors.New("data source not found")

// Source kinds
const (
	KindCSV    = "csv"
	KindSQLite = "sqlite"
	KindS3     = "s3"
)

// Clock returns the current time. Used to synthesize dates for files without a date column.
type Clock func() time.Time

// Options selects and configures a data source
type Options struct {
	Kind     string
	CSVPath  string
	DBPath   string
	S3Bucket string
	S3Key    string
	S3Region string
	Clock    Clock
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the data source described by opts. The returned closer
// releases any connection held by the source.
func Open(ctx context.Context, opts Options) (wellness.DataSource, io.Closer, error) {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	switch opts.Kind {
	case KindCSV, "":
		return &CSVSource{Path: opts.CSVPath, Clock: clock}, nopCloser{}, nil

	case KindSQLite:
		db, err := database.New(database.Config{
			Path:    opts.DBPath,
			Profile: database.ProfileReadOnly,
			Name:    "health",
		})
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, nil, fmt.Errorf("%w: %v", ErrSourceNotFound, err)
			}
			return nil, nil, err
		}
		return NewSQLiteSource(db), db, nil

	case KindS3:
		client, err := NewS3Client(ctx, opts.S3Region)
		if err != nil {
			return nil, nil, err
		}
		return NewS3Source(client, opts.S3Bucket, opts.S3Key, clock), nopCloser{}, nil

	default:
		return nil, nil, fmt.Errorf("unknown data source kind %q", opts.Kind)
	}
}
