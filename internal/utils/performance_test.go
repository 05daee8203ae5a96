package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestTimer_Stop(t *testing.T) {
	var buf bytes.Buffer
	timer := NewTimer("load", zerolog.New(&buf).Level(zerolog.DebugLevel))
	timer.start = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	timer.now = func() time.Time { return timer.start.Add(150 * time.Millisecond) }

	assert.Equal(t, 150*time.Millisecond, timer.Stop())
	assert.Contains(t, buf.String(), `"operation":"load"`)
	assert.NotContains(t, buf.String(), "Slow operation detected")
}

func TestTimer_StopWarnsWhenSlow(t *testing.T) {
	var buf bytes.Buffer
	timer := NewTimer("load", zerolog.New(&buf))
	timer.now = func() time.Time { return timer.start.Add(SlowOperationThreshold + time.Second) }

	timer.Stop()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"level":"warn"`)
}
