package renderer

import (
	"errors"
	"testing"
	"weak"

	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
)

func TestPrepareBindsOnlyOnChange(t *testing.T) {
	var slot weak.Pointer[shader.Program]
	a, b := testProgram(1), testProgram(2)
	binds := 0
	bind := func() error { binds++; return nil }

	assert.NoError(t, prepare(&slot, a, bind))
	assert.NoError(t, prepare(&slot, a, bind))
	assert.Equal(t, 1, binds)

	assert.NoError(t, prepare(&slot, b, bind))
	assert.NoError(t, prepare(&slot, a, bind))
	assert.Equal(t, 3, binds)
}

func TestPrepareKeepsSlotOnFailure(t *testing.T) {
	var slot weak.Pointer[buffer.MeshBuffer]
	a, b := testMesh(1), testMesh(2)
	boom := errors.New("boom")

	assert.NoError(t, prepare(&slot, a, func() error { return nil }))
	assert.ErrorIs(t, prepare(&slot, b, func() error { return boom }), boom)
	assert.Same(t, a, slot.Value())
}

func TestPrepareRebindsReleasedResource(t *testing.T) {
	var slot weak.Pointer[buffer.MeshBuffer]
	a := testMesh(1)
	binds := 0
	bind := func() error { binds++; return nil }

	assert.NoError(t, prepare(&slot, a, bind))
	a.Release()
	assert.NoError(t, prepare(&slot, a, bind))
	assert.Equal(t, 2, binds)
}

func TestFrameStatsAdd(t *testing.T) {
	total := FrameStats{Draws: 1, Skipped: 2}
	total.Add(FrameStats{Draws: 3, ProgramSwitches: 1, Contended: 1})
	assert.Equal(t, FrameStats{Draws: 4, Skipped: 2, ProgramSwitches: 1, Contended: 1}, total)
}
