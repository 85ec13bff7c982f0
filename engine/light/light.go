package light

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon. Affects all fragments
	// uniformly with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance using constant, linear and quadratic terms.
	LightTypePoint
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu        sync.RWMutex
	lightType LightType
	position  mgl32.Vec3
	direction mgl32.Vec3
	ambient   mgl32.Vec3
	diffuse   mgl32.Vec3
	specular  mgl32.Vec3
	constant  float32
	linear    float32
	quadratic float32
	enabled   bool
}

// Light defines the interface for the light component of a game object.
//
// Lights use the Phong model: ambient, diffuse and specular terms per light. A
// directional light only carries a direction. A point light carries a position
// relative to its owning object and attenuation coefficients.
//
// The renderer reads a light through Params once per pass and binds the snapshot
// onto every program it draws with.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional or point)
	Type() LightType

	// Params returns a snapshot of the light's shading terms. For point lights the
	// position is offset by origin, which is normally the owning object's world translation.
	//
	// Parameters:
	//   - origin: world-space offset applied to a point light's position
	//
	// Returns:
	//   - Params: the snapshot
	Params(origin mgl32.Vec3) Params

	// Enabled returns whether this light is active for rendering.
	// Disabled lights are skipped when the renderer collects lights.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition sets the position of the light relative to its owning object.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetDirection sets the direction of the light and normalizes it.
	//
	// Parameters:
	//   - x, y, z: direction components (will be normalized)
	SetDirection(x, y, z float32)

	// SetColors sets the ambient, diffuse and specular terms.
	//
	// Parameters:
	//   - ambient: the ambient term
	//   - diffuse: the diffuse term
	//   - specular: the specular term
	SetColors(ambient, diffuse, specular mgl32.Vec3)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create (directional or point)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		direction: mgl32.Vec3{0, -1, 0},
		ambient:   mgl32.Vec3{0.05, 0.05, 0.05},
		diffuse:   mgl32.Vec3{0.8, 0.8, 0.8},
		specular:  mgl32.Vec3{1, 1, 1},
		constant:  1.0,
		linear:    0.09,
		quadratic: 0.032,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Params(origin mgl32.Vec3) Params {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p := Params{
		Type:      l.lightType,
		Direction: l.direction,
		Ambient:   l.ambient,
		Diffuse:   l.diffuse,
		Specular:  l.specular,
		Constant:  l.constant,
		Linear:    l.linear,
		Quadratic: l.quadratic,
	}
	if l.lightType == LightTypePoint {
		p.Position = origin.Add(l.position)
	}
	return p
}

func (l *lightImpl) Enabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.mu.Lock()
	l.position = mgl32.Vec3{x, y, z}
	l.mu.Unlock()
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.mu.Lock()
	l.direction = normalize3(x, y, z)
	l.mu.Unlock()
}

func (l *lightImpl) SetColors(ambient, diffuse, specular mgl32.Vec3) {
	l.mu.Lock()
	l.ambient, l.diffuse, l.specular = ambient, diffuse, specular
	l.mu.Unlock()
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	l.enabled = enabled
	l.mu.Unlock()
}
