package model

import (
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/material"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithSurface is an option builder that appends a surface to the Model.
//
// Parameters:
//   - buf: the shared mesh buffer
//   - mat: the material the buffer is drawn with
//
// Returns:
//   - ModelBuilderOption: a function that applies the surface option to a model
func WithSurface(buf *buffer.MeshBuffer, mat material.Material) ModelBuilderOption {
	return func(m *model) {
		m.AddSurface(buf, mat)
	}
}
