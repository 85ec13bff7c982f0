package profiler

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-frame/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTickReportsAfterInterval(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	clock := time.Unix(0, 0)
	p := NewProfiler(
		WithLogger(zap.New(core)),
		WithInterval(time.Second),
		WithClock(func() time.Time { return clock }),
	)

	frame := renderer.FrameStats{Draws: 10, ProgramSwitches: 2, Skipped: 1}
	for i := 0; i < 3; i++ {
		clock = clock.Add(250 * time.Millisecond)
		assert.False(t, p.Tick(frame))
	}
	clock = clock.Add(250 * time.Millisecond)
	require.True(t, p.Tick(frame))

	r := p.Last()
	assert.Equal(t, 4, r.Frames)
	assert.InDelta(t, 4.0, r.FPS, 1e-9)
	assert.Equal(t, 40, r.Totals.Draws)
	assert.Equal(t, 4, r.Totals.Skipped)
	assert.InDelta(t, 10.0, r.PerFrame(r.Totals.Draws), 1e-9)

	entries := logs.FilterMessage("frame stats").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "profiler", entries[0].LoggerName)
	assert.Equal(t, int64(4), entries[0].ContextMap()["skipped"])

	// totals start over
	clock = clock.Add(time.Second)
	require.True(t, p.Tick(renderer.FrameStats{Draws: 1}))
	assert.Equal(t, 1, p.Last().Totals.Draws)
}

func TestPerFrameWithoutFrames(t *testing.T) {
	assert.Zero(t, Report{}.PerFrame(5))
}
