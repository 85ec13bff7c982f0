package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fill assigns MaxTextureUnits fresh textures and returns them in unit order.
func fill(t *testing.T, u *textureUnits) []*texture.Texture {
	t.Helper()
	texs := make([]*texture.Texture, MaxTextureUnits)
	for i := range texs {
		texs[i] = testTexture(uint32(i + 1))
		unit, err := u.assign(texs[i], func(int) error { return nil })
		require.NoError(t, err)
		require.Equal(t, i, unit)
	}
	return texs
}

func TestTextureUnitsHitSkipsBind(t *testing.T) {
	var u textureUnits
	tex := testTexture(1)
	binds := 0
	bind := func(int) error { binds++; return nil }

	first, err := u.assign(tex, bind)
	require.NoError(t, err)
	second, err := u.assign(tex, bind)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, binds)
}

func TestTextureUnitsEvictOldestWhenFull(t *testing.T) {
	var u textureUnits
	texs := fill(t, &u)

	unit, err := u.assign(testTexture(100), func(int) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 0, unit)

	unit, err = u.assign(testTexture(101), func(int) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, unit)

	// the rest are still resident
	unit, err = u.assign(texs[2], func(int) error { t.Fatal("unexpected bind"); return nil })
	require.NoError(t, err)
	assert.Equal(t, 2, unit)
}

func TestTextureUnitsPreferExpiredEntry(t *testing.T) {
	var u textureUnits
	texs := fill(t, &u)
	texs[5].Release()

	unit, err := u.assign(testTexture(100), func(int) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 5, unit)
	assert.Same(t, texs[0], u.bound(0))
}

func TestTextureUnitsUnchangedOnBindFailure(t *testing.T) {
	var u textureUnits
	texs := fill(t, &u)
	boom := errors.New("boom")

	_, err := u.assign(testTexture(100), func(int) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Len(t, u.entries, MaxTextureUnits)
	for i, tex := range texs {
		assert.Same(t, tex, u.bound(i))
	}
}

func TestTextureUnitsStayUnique(t *testing.T) {
	var u textureUnits
	for i := 0; i < 3*MaxTextureUnits; i++ {
		_, err := u.assign(testTexture(uint32(i+1)), func(int) error { return nil })
		require.NoError(t, err)

		seen := make(map[int]bool)
		for _, e := range u.entries {
			assert.False(t, seen[e.unit], "unit %d assigned twice", e.unit)
			assert.Less(t, e.unit, MaxTextureUnits)
			seen[e.unit] = true
		}
	}
}
