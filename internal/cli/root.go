// Package cli implements the pulse command-line commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aristath/pulse/internal/modules/healthdata"
	"github.com/aristath/pulse/internal/modules/wellness"
	"github.com/rs/zerolog"
)

// Context is passed to every command's Run method
type Context struct {
	Ctx context.Context
	Out io.Writer
	Log zerolog.Logger
}

// SourceFlags selects the dataset to read. Exactly one must be set.
type SourceFlags struct {
	CSV    string `help:"CSV file with daily metrics." type:"path" xor:"source"`
	SQLite string `name:"sqlite" help:"SQLite database with a daily_metrics table." type:"path" xor:"source"`
	S3     string `name:"s3" help:"CSV object on S3, as s3://bucket/key." xor:"source"`
	Region string `help:"AWS region for --s3." default:"us-east-1"`
}

func (f SourceFlags) options() (healthdata.Options, error) {
	set := 0
	for _, v := range []string{f.CSV, f.SQLite, f.S3} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return healthdata.Options{}, errors.New("exactly one of --csv, --sqlite or --s3 is required")
	}

	switch {
	case f.CSV != "":
		return healthdata.Options{Kind: healthdata.KindCSV, CSVPath: f.CSV}, nil
	case f.SQLite != "":
		return healthdata.Options{Kind: healthdata.KindSQLite, DBPath: f.SQLite}, nil
	default:
		bucket, key, err := parseS3URL(f.S3)
		if err != nil {
			return healthdata.Options{}, err
		}
		return healthdata.Options{Kind: healthdata.KindS3, S3Bucket: bucket, S3Key: key, S3Region: f.Region}, nil
	}
}

func parseS3URL(raw string) (string, string, error) {
	rest, ok := strings.CutPrefix(raw, "s3://")
	if !ok {
		return "", "", fmt.Errorf("invalid S3 location %q: expected s3://bucket/key", raw)
	}
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 location %q: expected s3://bucket/key", raw)
	}
	return bucket, key, nil
}

// open builds the data source and returns a function releasing it.
func (f SourceFlags) open(ctx *Context) (wellness.DataSource, func(), error) {
	opts, err := f.options()
	if err != nil {
		return nil, nil, err
	}

	source, closer, err := healthdata.Open(ctx.Ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open data source: %w", err)
	}

	release := func() {
		if err := closer.Close(); err != nil {
			ctx.Log.Warn().Err(err).Msg("Failed to close data source")
		}
	}
	return source, release, nil
}

// AnalysisFlags tune the summary computation
type AnalysisFlags struct {
	WeekDays        int     `help:"Number of trailing days in the week window." default:"7"`
	ZThreshold      float64 `name:"z-threshold" help:"Absolute z-score at which a metric is flagged." default:"1.5"`
	MinBaselineDays int     `help:"Minimum baseline length before anomalies are reported." default:"14"`
}

func (f AnalysisFlags) config() wellness.Config {
	return wellness.Config{
		WeekDays:        f.WeekDays,
		ZThreshold:      f.ZThreshold,
		MinBaselineDays: f.MinBaselineDays,
	}
}
