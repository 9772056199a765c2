package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickWaitsForInterval(t *testing.T) {
	var logs bytes.Buffer
	p := NewProfiler(
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		WithInterval(time.Hour),
	)

	assert.False(t, p.Tick())
	assert.False(t, p.Tick())
	assert.Equal(t, 2, p.Count())
	assert.Empty(t, logs.String())
}

func TestTickLogsAndResets(t *testing.T) {
	var logs bytes.Buffer
	p := NewProfiler(
		WithName("projection_vertex"),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		WithInterval(0),
	)

	assert.True(t, p.Tick())
	assert.Zero(t, p.Count())
	assert.Contains(t, logs.String(), "[Profiler] stats")
	assert.Contains(t, logs.String(), "name=projection_vertex")
	assert.Contains(t, logs.String(), "per_second=")
}
