// Package utils holds small helpers shared across packages.
package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// SlowOperationThreshold is the duration above which a timed operation is logged as slow.
const SlowOperationThreshold = 2 * time.Second

// Timer is a simple performance timer for measuring operation duration
type Timer struct {
	start time.Time
	name  string
	log   zerolog.Logger
	now   func() time.Time
}

// NewTimer creates a new timer with the given name
func NewTimer(name string, log zerolog.Logger) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
		log:   log,
		now:   time.Now,
	}
}

// Elapsed returns the time since the timer started without logging.
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Stop logs the duration and returns it
func (t *Timer) Stop() time.Duration {
	duration := t.Elapsed()

	t.log.Debug().
		Str("operation", t.name).
		Dur("duration_ms", duration).
		Msg("Performance measurement")

	if duration > SlowOperationThreshold {
		t.log.Warn().
			Str("operation", t.name).
			Dur("duration", duration).
			Msg("Slow operation detected")
	}

	return duration
}
