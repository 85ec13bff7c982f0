package scene

import (
	"github.com/Carmen-Shannon/oxy-frame/engine/game_object"
	"github.com/Carmen-Shannon/oxy-frame/engine/registry"
)

// Ref is a strong reference to an object in a Scene. The object stays in the scene
// until every Ref to it has been released. The zero Ref refers to nothing.
type Ref struct {
	handle  registry.Handle
	objects *registry.Registry[game_object.GameObject]
}

// Handle returns the registry handle behind r.
func (r Ref) Handle() registry.Handle {
	return r.handle
}

// Get returns the referenced object.
//
// Returns:
//   - game_object.GameObject: the object, or nil once it has left the scene
//   - bool: false once the object has left the scene
func (r Ref) Get() (game_object.GameObject, bool) {
	if r.objects == nil {
		return nil, false
	}
	return r.objects.Get(r.handle)
}

// Retain takes another strong reference to the same object.
//
// Returns:
//   - Ref: the new reference
//   - bool: false if the object has already left the scene
func (r Ref) Retain() (Ref, bool) {
	if r.objects == nil || !r.objects.Retain(r.handle) {
		return Ref{}, false
	}
	return r, true
}

// Release drops this strong reference. Releasing the last one removes the object
// from the scene.
//
// Returns:
//   - bool: true if this call removed the object
func (r Ref) Release() bool {
	if r.objects == nil {
		return false
	}
	return r.objects.Release(r.handle)
}
