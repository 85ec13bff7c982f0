// Package resource holds the ownership primitives shared by the GPU resource types
// (shader programs, mesh buffers, textures).
//
// Resources are shared by many materials and meshes. Owners hold strong references
// counted by RefCount; the renderer's identity caches hold weak.Pointers and treat a
// released resource as expired.
package resource

import (
	"sync/atomic"
)

// RefCount is an explicit strong reference count. The zero value holds no
// references; constructors call Retain once for their caller.
type RefCount struct {
	refs     atomic.Int32
	released atomic.Bool
}

// Retain adds a strong reference.
//
// Returns:
//   - int32: the new reference count
func (r *RefCount) Retain() int32 {
	return r.refs.Add(1)
}

// Release drops a strong reference. When the count reaches zero the resource is
// marked released and Alive reports false from then on.
//
// Returns:
//   - bool: true if this call released the last reference
func (r *RefCount) Release() bool {
	n := r.refs.Add(-1)
	if n <= 0 {
		return r.released.CompareAndSwap(false, true)
	}
	return false
}

// Refs returns the current strong reference count.
func (r *RefCount) Refs() int32 {
	return r.refs.Load()
}

// Alive reports whether the resource still has owners.
func (r *RefCount) Alive() bool {
	return !r.released.Load()
}

// Readiness is the asset system's readiness signal. The zero value is not ready.
type Readiness struct {
	ready atomic.Bool
}

// Ready reports whether the asset behind the resource has finished loading.
func (r *Readiness) Ready() bool {
	return r.ready.Load()
}

// SetReady is called by the asset collaborator once the GPU object exists.
func (r *Readiness) SetReady(ready bool) {
	r.ready.Store(ready)
}
