package material

import (
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/texture"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithProgram is an option builder that sets the shader program the material draws with.
//
// Parameters:
//   - program: the shared shader program
//
// Returns:
//   - MaterialBuilderOption: a function that applies the program option to a material
func WithProgram(program *shader.Program) MaterialBuilderOption {
	return func(m *material) {
		m.program = program
	}
}

// WithQueue is an option builder that sets the render queue of the material.
// An out-of-range tag panics.
//
// Parameters:
//   - queue: the render queue tag
//
// Returns:
//   - MaterialBuilderOption: a function that applies the queue option to a material
func WithQueue(queue QueueTag) MaterialBuilderOption {
	if !queue.Valid() {
		panic("material: invalid queue tag " + queue.String())
	}
	return func(m *material) {
		m.queue = queue
	}
}

// WithTexture is an option builder that appends a texture binding. Bindings are bound
// in the order the options are given.
//
// Parameters:
//   - slot: the sampler uniform name
//   - tex: the shared texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(slot string, tex *texture.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.textures = append(m.textures, TextureBinding{Slot: slot, Texture: tex})
	}
}

// WithShininess is an option builder that sets the specular exponent.
//
// Parameters:
//   - shininess: the specular exponent
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shininess option to a material
func WithShininess(shininess float32) MaterialBuilderOption {
	return func(m *material) {
		m.shininess = shininess
	}
}
