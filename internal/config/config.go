// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aristath/pulse/internal/modules/healthdata"
	"github.com/aristath/pulse/internal/modules/wellness"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Port           int
	LogLevel       string
	DevMode        bool
	DataSource     string // csv, sqlite or s3
	DataPath       string // CSV file path
	DBPath         string // SQLite database path
	S3             S3Config
	DigestSchedule string // Cron schedule with seconds; empty disables the digest job
	DigestTimeout  time.Duration
	AnalysisFile   string // Optional YAML file overriding Analysis
	Analysis       wellness.Config
}

// S3Config locates the CSV object read by the s3 data source
type S3Config struct {
	Bucket string
	Key    string
	Region string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:       getEnvAsInt("PULSE_PORT", 8000),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DevMode:    getEnvAsBool("DEV_MODE", false),
		DataSource: getEnv("PULSE_DATA_SOURCE", healthdata.KindCSV),
		DataPath:   getEnv("PULSE_DATA_PATH", "data/mock_health_metrics.csv"),
		DBPath:     getEnv("PULSE_DB_PATH", "data/health.db"),
		S3: S3Config{
			Bucket: getEnv("PULSE_S3_BUCKET", ""),
			Key:    getEnv("PULSE_S3_KEY", ""),
			Region: getEnv("PULSE_S3_REGION", "us-east-1"),
		},
		DigestSchedule: getEnv("PULSE_DIGEST_SCHEDULE", ""),
		DigestTimeout:  getEnvAsDuration("PULSE_DIGEST_TIMEOUT", 30*time.Second),
		AnalysisFile:   getEnv("PULSE_ANALYSIS_FILE", ""),
		Analysis:       wellness.DefaultConfig(),
	}

	if cfg.AnalysisFile != "" {
		analysis, err := LoadAnalysis(cfg.AnalysisFile)
		if err != nil {
			return nil, err
		}
		cfg.Analysis = analysis
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadAnalysis reads analysis tuning from a YAML file. Keys absent from the
// file keep their defaults.
func LoadAnalysis(path string) (wellness.Config, error) {
	analysis := wellness.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return analysis, fmt.Errorf("failed to read analysis file: %w", err)
	}
	if err := yaml.Unmarshal(data, &analysis); err != nil {
		return analysis, fmt.Errorf("failed to parse analysis file %s: %w", path, err)
	}
	return analysis, nil
}

// SourceOptions converts the data source settings into loader options
func (c *Config) SourceOptions() healthdata.Options {
	return healthdata.Options{
		Kind:     c.DataSource,
		CSVPath:  c.DataPath,
		DBPath:   c.DBPath,
		S3Bucket: c.S3.Bucket,
		S3Key:    c.S3.Key,
		S3Region: c.S3.Region,
	}
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	switch c.DataSource {
	case healthdata.KindCSV:
		if c.DataPath == "" {
			return fmt.Errorf("PULSE_DATA_PATH is required for the csv data source")
		}
	case healthdata.KindSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("PULSE_DB_PATH is required for the sqlite data source")
		}
	case healthdata.KindS3:
		if c.S3.Bucket == "" || c.S3.Key == "" {
			return fmt.Errorf("PULSE_S3_BUCKET and PULSE_S3_KEY are required for the s3 data source")
		}
	default:
		return fmt.Errorf("unknown data source %q", c.DataSource)
	}

	if c.DigestTimeout <= 0 {
		return fmt.Errorf("digest timeout must be positive, got %s", c.DigestTimeout)
	}

	if err := c.Analysis.Validate(); err != nil {
		return fmt.Errorf("invalid analysis config: %w", err)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
