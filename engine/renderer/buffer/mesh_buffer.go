// Package buffer holds the GPU-side geometry handle shared by mesh surfaces.
package buffer

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-frame/engine/gfx"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/resource"
)

// MeshBuffer is a shared, reference-counted vertex array plus its index count.
// Many surfaces may reference the same MeshBuffer; the renderer binds it only
// when the previous draw used a different one.
type MeshBuffer struct {
	resource.RefCount
	resource.Readiness

	name       string
	vao        atomic.Uint32
	indexCount atomic.Int32
}

// NewMeshBuffer creates a MeshBuffer holding one strong reference for the caller.
// A non-zero vao marks the buffer ready.
//
// Parameters:
//   - name: identifier used in diagnostics
//   - vao: the vertex array id, or 0 if not yet uploaded
//   - indexCount: number of indices drawn by Render
//
// Returns:
//   - *MeshBuffer: the buffer
func NewMeshBuffer(name string, vao uint32, indexCount int32) *MeshBuffer {
	b := &MeshBuffer{name: name}
	b.vao.Store(vao)
	b.indexCount.Store(indexCount)
	b.Retain()
	b.SetReady(vao != 0)
	return b
}

// Name returns the buffer's identifier.
func (b *MeshBuffer) Name() string {
	return b.name
}

// VAO returns the vertex array id.
func (b *MeshBuffer) VAO() uint32 {
	return b.vao.Load()
}

// IndexCount returns the number of indices drawn by Render.
func (b *MeshBuffer) IndexCount() int32 {
	return b.indexCount.Load()
}

// Resolve stores the uploaded vertex array and marks the buffer ready.
//
// Parameters:
//   - vao: the vertex array id
//   - indexCount: number of indices
func (b *MeshBuffer) Resolve(vao uint32, indexCount int32) {
	b.vao.Store(vao)
	b.indexCount.Store(indexCount)
	b.SetReady(true)
}

// Bind makes b the device's active vertex array.
//
// Parameters:
//   - d: the device to bind on
//
// Returns:
//   - error: gfx.ErrNotReady while uploading, a *gfx.BindError if released or without a handle
func (b *MeshBuffer) Bind(d gfx.Device) error {
	if !b.Ready() {
		return fmt.Errorf("mesh buffer %q: %w", b.name, gfx.ErrNotReady)
	}
	if !b.Alive() {
		return gfx.NewBindError(fmt.Sprintf("mesh buffer %q", b.name), fmt.Errorf("buffer was released"))
	}
	vao := b.VAO()
	if vao == 0 {
		return gfx.NewBindError(fmt.Sprintf("mesh buffer %q", b.name), fmt.Errorf("no vertex array handle"))
	}
	d.BindVertexArray(vao)
	return nil
}

// Render draws the bound buffer's indices.
func (b *MeshBuffer) Render(d gfx.Device) {
	d.DrawElements(b.IndexCount())
}

// Unbind clears the device's active vertex array.
func (b *MeshBuffer) Unbind(d gfx.Device) {
	d.BindVertexArray(0)
}
