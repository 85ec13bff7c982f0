package shader

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-frame/engine/gfx"
	"github.com/Carmen-Shannon/oxy-frame/engine/gfx/gfxtest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramBind(t *testing.T) {
	dev := gfxtest.NewRecorder()
	p := NewProgram("lit", 3)

	require.NoError(t, p.Bind(dev))
	assert.Equal(t, []string{"UseProgram"}, dev.Ops())
}

func TestProgramBindNotReady(t *testing.T) {
	dev := gfxtest.NewRecorder()
	p := NewProgram("lit", 0)

	err := p.Bind(dev)
	assert.ErrorIs(t, err, gfx.ErrNotReady)
	assert.Empty(t, dev.Calls())

	p.Resolve(9)
	require.NoError(t, p.Bind(dev))
}

func TestProgramWithPending(t *testing.T) {
	p := NewProgram("lit", 4, WithPending())
	assert.ErrorIs(t, p.Bind(gfxtest.NewRecorder()), gfx.ErrNotReady)
}

func TestProgramBindFailure(t *testing.T) {
	p := NewProgram("broken", 0)
	p.SetReady(true)

	err := p.Bind(gfxtest.NewRecorder())
	require.Error(t, err)
	assert.True(t, errors.Is(err, gfx.ErrBindFailure))
	assert.False(t, errors.Is(err, gfx.ErrNotReady))
	assert.Contains(t, err.Error(), `program "broken"`)
}

func TestProgramBindAfterRelease(t *testing.T) {
	p := NewProgram("lit", 2)
	p.Release()
	assert.ErrorIs(t, p.Bind(gfxtest.NewRecorder()), gfx.ErrBindFailure)
}

func TestProgramCommitUploadsStagedOnce(t *testing.T) {
	dev := gfxtest.NewRecorder()
	p := NewProgram("lit", 5)

	p.SetFloat("uShininess", 16)
	p.SetFloat("uShininess", 32)
	p.SetVec3("uViewPos", mgl32.Vec3{1, 2, 3})
	p.SetMat4("uMMatrix", mgl32.Ident4())
	assert.Equal(t, 3, p.Staged())

	p.Commit(dev)

	assert.Equal(t, []string{"Uniform1f", "Uniform3f", "UniformMatrix4"}, dev.Ops())
	v, ok := dev.Uniform(5, "uShininess")
	require.True(t, ok)
	assert.Equal(t, float32(32), v)
	assert.Equal(t, 0, p.Staged())

	dev.Reset()
	p.Commit(dev)
	assert.Empty(t, dev.Calls())
}

func TestProgramCommitSkipsUnknownUniforms(t *testing.T) {
	dev := gfxtest.NewRecorder()
	dev.Missing["uUnused"] = true
	p := NewProgram("lit", 5)

	p.SetInt("uUnused", 1)
	p.SetInt("uTexture", 0)
	p.Commit(dev)

	assert.Equal(t, 1, dev.Count("Uniform1i"))
}
