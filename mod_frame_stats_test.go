package snowfall

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameStats_Record(t *testing.T) {
	stats := &FrameStats{Interval: time.Second}

	for i := 0; i < 59; i++ {
		assert.False(t, stats.Record(16*time.Millisecond))
	}
	// 60 frames of 16ms do not reach a second yet.
	assert.False(t, stats.Record(16*time.Millisecond))
	assert.True(t, stats.Record(40*time.Millisecond))
	assert.InDelta(t, 1000.0/61.0, stats.MsPerFrame, 1e-9)

	// The window restarts after a report.
	assert.False(t, stats.Record(500*time.Millisecond))
	assert.True(t, stats.Record(500*time.Millisecond))
	assert.InDelta(t, 500.0, stats.MsPerFrame, 1e-9)
}

func TestFrameStatsModule_LogsMsPerFrame(t *testing.T) {
	var out bytes.Buffer
	app := NewAppBuilder().
		UseModule(FrameStatsModule{Interval: 10 * time.Millisecond}).
		Build()
	app.addResources(NewLogger("snowfall", false, &out, &out), &Time{Dt: 25 * time.Millisecond})

	app.Step()

	stats := Resource[FrameStats](app)
	assert.InDelta(t, 25.0, stats.MsPerFrame, 1e-9)
	assert.Contains(t, out.String(), "[snowfall] INFO: 25.000 ms/frame")
}

func TestFrameStatsModule_DefaultInterval(t *testing.T) {
	app := NewAppBuilder().UseModule(FrameStatsModule{}).Build()
	assert.Equal(t, time.Second, Resource[FrameStats](app).Interval)
}
