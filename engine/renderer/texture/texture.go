// Package texture holds the shared 2D texture handle sampled by materials.
package texture

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-frame/engine/gfx"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/resource"
)

// Texture is a shared, reference-counted 2D texture handle.
type Texture struct {
	resource.RefCount
	resource.Readiness

	name string
	id   atomic.Uint32
}

// NewTexture creates a Texture holding one strong reference for the caller.
// A non-zero id marks the texture ready.
//
// Parameters:
//   - name: identifier used in diagnostics
//   - id: the GPU texture id, or 0 while the image is loading
//
// Returns:
//   - *Texture: the texture
func NewTexture(name string, id uint32) *Texture {
	t := &Texture{name: name}
	t.id.Store(id)
	t.Retain()
	t.SetReady(id != 0)
	return t
}

// Name returns the texture's identifier.
func (t *Texture) Name() string {
	return t.name
}

// ID returns the GPU texture id.
func (t *Texture) ID() uint32 {
	return t.id.Load()
}

// Resolve stores the uploaded texture id and marks the texture ready.
func (t *Texture) Resolve(id uint32) {
	t.id.Store(id)
	t.SetReady(true)
}

// Bind assigns t to texture unit on the device.
//
// Parameters:
//   - d: the device to bind on
//   - unit: the texture unit index
//
// Returns:
//   - error: gfx.ErrNotReady while loading, a *gfx.BindError if released or without a handle
func (t *Texture) Bind(d gfx.Device, unit int) error {
	if !t.Ready() {
		return fmt.Errorf("texture %q: %w", t.name, gfx.ErrNotReady)
	}
	if !t.Alive() {
		return gfx.NewBindError(fmt.Sprintf("texture %q", t.name), fmt.Errorf("texture was released"))
	}
	id := t.ID()
	if id == 0 {
		return gfx.NewBindError(fmt.Sprintf("texture %q", t.name), fmt.Errorf("no GPU texture handle"))
	}
	d.ActiveTexture(unit)
	d.BindTexture2D(id)
	return nil
}
