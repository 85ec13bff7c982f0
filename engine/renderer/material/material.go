package material

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/texture"
)

// QueueTag names the render queue a surface is drawn in. The declaration order is
// the order the renderer walks the queues in.
type QueueTag int

const (
	QueueOpaque QueueTag = iota
	QueueSkybox
	QueueTransparent

	// QueueCount is the number of render queues.
	QueueCount = int(QueueTransparent) + 1
)

// DefaultShininess is the specular exponent used when a material does not set one.
const DefaultShininess float32 = 32

func (q QueueTag) String() string {
	switch q {
	case QueueOpaque:
		return "opaque"
	case QueueSkybox:
		return "skybox"
	case QueueTransparent:
		return "transparent"
	default:
		return fmt.Sprintf("QueueTag(%d)", int(q))
	}
}

// Valid reports whether q is one of the fixed render queues.
func (q QueueTag) Valid() bool {
	return q >= QueueOpaque && q <= QueueTransparent
}

// TextureBinding pairs a sampler uniform name with the texture sampled through it.
type TextureBinding struct {
	Slot    string
	Texture *texture.Texture
}

// material is the implementation of the Material interface.
type material struct {
	name      string
	program   *shader.Program
	queue     QueueTag
	textures  []TextureBinding
	shininess float32
	released  bool
}

// Material defines the interface for a surface material: the shader program that draws it,
// the render queue it belongs to and the textures it samples.
//
// A Material shares ownership of its program and textures. It retains them when built and
// drops its references on Release. Materials are not mutated while a frame is rendering.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Program retrieves the shader program the material draws with.
	//
	// Returns:
	//   - *shader.Program: the program, or nil if none is set
	Program() *shader.Program

	// Queue retrieves the render queue the material's surfaces are drawn in.
	//
	// Returns:
	//   - QueueTag: the queue tag
	Queue() QueueTag

	// Textures retrieves the material's texture bindings in declaration order.
	//
	// Returns:
	//   - []TextureBinding: the bindings
	Textures() []TextureBinding

	// Shininess retrieves the specular exponent.
	//
	// Returns:
	//   - float32: the shininess
	Shininess() float32

	// Release drops the material's references to its program and textures.
	// Calling Release more than once has no further effect.
	Release()
}

var _ Material = &material{}

// NewMaterial creates a new Material configured by the given options.
// The program and every texture passed through options are retained.
//
// Parameters:
//   - options: builder options applied in order
//
// Returns:
//   - Material: the new material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		queue:     QueueOpaque,
		shininess: DefaultShininess,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.program != nil {
		m.program.Retain()
	}
	for _, b := range m.textures {
		b.Texture.Retain()
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Program() *shader.Program {
	return m.program
}

func (m *material) Queue() QueueTag {
	return m.queue
}

func (m *material) Textures() []TextureBinding {
	return m.textures
}

func (m *material) Shininess() float32 {
	return m.shininess
}

func (m *material) Release() {
	if m.released {
		return
	}
	m.released = true
	if m.program != nil {
		m.program.Release()
	}
	for _, b := range m.textures {
		b.Texture.Release()
	}
}
