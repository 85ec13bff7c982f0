package light

import (
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Params is a frame snapshot of one light's shading terms.
type Params struct {
	Type      LightType
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Constant  float32
	Linear    float32
	Quadratic float32
}

// DefaultDirectional returns the directional light used when a scene has none:
// a white key light pointing down and away from the viewer.
func DefaultDirectional() Params {
	return Params{
		Type:      LightTypeDirectional,
		Direction: mgl32.Vec3{0.5, -1, 1}.Normalize(),
		Ambient:   mgl32.Vec3{0.2, 0.2, 0.2},
		Diffuse:   mgl32.Vec3{0.5, 0.5, 0.5},
		Specular:  mgl32.Vec3{1, 1, 1},
	}
}

// Bind stages the light's uniforms on program under the struct uniform prefix,
// for example "uDirectionalLight" or "uPointLights[2]".
//
// Parameters:
//   - prefix: the GLSL struct uniform name
//   - program: the program to stage the values on
func (p Params) Bind(prefix string, program *shader.Program) {
	switch p.Type {
	case LightTypeDirectional:
		program.SetVec3(prefix+".direction", p.Direction)
	case LightTypePoint:
		program.SetVec3(prefix+".position", p.Position)
		program.SetFloat(prefix+".constant", p.Constant)
		program.SetFloat(prefix+".linear", p.Linear)
		program.SetFloat(prefix+".quadratic", p.Quadratic)
	}
	program.SetVec3(prefix+".ambient", p.Ambient)
	program.SetVec3(prefix+".diffuse", p.Diffuse)
	program.SetVec3(prefix+".specular", p.Specular)
}
