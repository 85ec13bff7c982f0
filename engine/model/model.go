package model

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/material"
)

// Surface is one drawable piece of a Model: a shared mesh buffer drawn with a material.
// Surfaces are the unit the renderer submits to its queues.
type Surface struct {
	Buffer   *buffer.MeshBuffer
	Material material.Material
}

// model is the implementation of the Model interface.
type model struct {
	mu       sync.RWMutex
	name     string
	surfaces []Surface
	released bool
}

// Model defines the interface for the mesh component of a game object.
// A Model owns an ordered list of surfaces and shares ownership of each surface's
// mesh buffer with every other model that draws it.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Surfaces retrieves a snapshot of the model's surfaces in draw order.
	//
	// Returns:
	//   - []Surface: the surfaces
	Surfaces() []Surface

	// AddSurface appends a surface and retains its mesh buffer.
	//
	// Parameters:
	//   - buf: the shared mesh buffer
	//   - mat: the material the buffer is drawn with
	AddSurface(buf *buffer.MeshBuffer, mat material.Material)

	// SurfaceCount returns the number of surfaces.
	//
	// Returns:
	//   - int: the surface count
	SurfaceCount() int

	// Release drops the model's references to its mesh buffers.
	// Materials are owned by whoever built them and are not released here.
	Release()
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Surfaces() []Surface {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Surface, len(m.surfaces))
	copy(out, m.surfaces)
	return out
}

func (m *model) AddSurface(buf *buffer.MeshBuffer, mat material.Material) {
	if buf == nil || mat == nil {
		panic("model: surface needs a mesh buffer and a material")
	}
	buf.Retain()
	m.mu.Lock()
	m.surfaces = append(m.surfaces, Surface{Buffer: buf, Material: mat})
	m.mu.Unlock()
}

func (m *model) SurfaceCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.surfaces)
}

func (m *model) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.released {
		return
	}
	m.released = true
	for _, s := range m.surfaces {
		s.Buffer.Release()
	}
}
