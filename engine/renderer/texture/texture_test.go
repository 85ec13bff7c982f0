package texture

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-frame/engine/gfx"
	"github.com/Carmen-Shannon/oxy-frame/engine/gfx/gfxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextureBind(t *testing.T) {
	dev := gfxtest.NewRecorder()
	tex := NewTexture("albedo", 11)

	require.NoError(t, tex.Bind(dev, 3))
	calls := dev.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "ActiveTexture", calls[0].Op)
	assert.Equal(t, []any{3}, calls[0].Args)
	assert.Equal(t, []any{uint32(11)}, calls[1].Args)
}

func TestTextureBindErrors(t *testing.T) {
	dev := gfxtest.NewRecorder()

	loading := NewTexture("loading", 0)
	assert.ErrorIs(t, loading.Bind(dev, 0), gfx.ErrNotReady)

	released := NewTexture("gone", 4)
	released.Release()
	assert.ErrorIs(t, released.Bind(dev, 0), gfx.ErrBindFailure)

	assert.Empty(t, dev.Calls())

	loading.Resolve(8)
	assert.NoError(t, loading.Bind(dev, 0))
}
