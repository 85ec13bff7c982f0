package model

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelSurfacesInOrder(t *testing.T) {
	body := buffer.NewMeshBuffer("body", 1, 36)
	glass := buffer.NewMeshBuffer("glass", 2, 6)
	opaque := material.NewMaterial(material.WithName("paint"))
	clear := material.NewMaterial(material.WithQueue(material.QueueTransparent))

	m := NewModel(WithName("car"), WithSurface(body, opaque), WithSurface(glass, clear))

	surfaces := m.Surfaces()
	require.Len(t, surfaces, 2)
	assert.Same(t, body, surfaces[0].Buffer)
	assert.Equal(t, material.QueueTransparent, surfaces[1].Material.Queue())
	assert.Equal(t, 2, m.SurfaceCount())
}

func TestModelReleaseDropsBufferReferences(t *testing.T) {
	shared := buffer.NewMeshBuffer("cube", 3, 36)
	mat := material.NewMaterial()

	a := NewModel(WithSurface(shared, mat))
	b := NewModel(WithSurface(shared, mat))
	shared.Release()

	a.Release()
	assert.True(t, shared.Alive())
	b.Release()
	b.Release()
	assert.False(t, shared.Alive())
}

func TestAddSurfacePanicsWithoutMaterial(t *testing.T) {
	assert.Panics(t, func() {
		NewModel().AddSurface(buffer.NewMeshBuffer("x", 1, 3), nil)
	})
}
