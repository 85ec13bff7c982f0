package game_object

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-frame/common"
	"github.com/Carmen-Shannon/oxy-frame/engine/camera"
	"github.com/Carmen-Shannon/oxy-frame/engine/light"
	"github.com/Carmen-Shannon/oxy-frame/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrBorrowUnavailable is returned by TryBorrow while another caller holds the object.
var ErrBorrowUnavailable = errors.New("game_object: borrow unavailable")

// ComponentKind tags the component slots a GameObject can fill.
type ComponentKind int

const (
	ComponentMesh ComponentKind = iota
	ComponentLight
	ComponentCamera
)

func (k ComponentKind) String() string {
	switch k {
	case ComponentMesh:
		return "mesh"
	case ComponentLight:
		return "light"
	case ComponentCamera:
		return "camera"
	default:
		return "unknown"
	}
}

// Behaviour is per-object game logic run once per engine tick while the object is borrowed.
type Behaviour func(obj GameObject, dt float32)

// nextID hands out object ids.
var nextID atomic.Uint64

type gameObject struct {
	id      uint64
	name    string
	enabled atomic.Bool

	// borrow guards the object against the renderer while game logic mutates it
	borrow sync.Mutex

	mu            sync.RWMutex
	position      mgl32.Vec3
	rotation      mgl32.Vec3
	rotationSpeed mgl32.Vec3
	scale         mgl32.Vec3
	parent        GameObject

	mdl        model.Model
	lgt        light.Light
	cam        camera.Camera
	components []ComponentKind
	behaviour  Behaviour
}

// GameObject defines the interface for a scene entity: a world transform, an active
// flag and a fixed table of optional component slots (mesh, light, camera).
//
// Access from game logic and from the renderer is coordinated through the borrow
// guard. Logic takes it with Borrow; the renderer uses TryBorrow and skips the
// object for the frame when it is held.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether this object is active for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is active for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// TryBorrow acquires the object without blocking.
	//
	// Returns:
	//   - error: ErrBorrowUnavailable if another caller holds the object
	TryBorrow() error

	// Borrow acquires the object, blocking until it is free.
	Borrow()

	// Return releases a borrow taken with TryBorrow or Borrow.
	Return()

	// Position returns the local translation.
	//
	// Returns:
	//   - mgl32.Vec3: the translation
	Position() mgl32.Vec3

	// Rotation returns the local Euler rotation in radians.
	//
	// Returns:
	//   - mgl32.Vec3: the rotation
	Rotation() mgl32.Vec3

	// Scale returns the local scale.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// SetPosition sets the local translation.
	//
	// Parameters:
	//   - x, y, z: translation components
	SetPosition(x, y, z float32)

	// SetRotation sets the local Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: rotation angles
	SetRotation(rx, ry, rz float32)

	// SetRotationSpeed sets the spin applied by Tick, in radians per second per axis.
	//
	// Parameters:
	//   - rx, ry, rz: angular speeds
	SetRotationSpeed(rx, ry, rz float32)

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - sx, sy, sz: scale factors
	SetScale(sx, sy, sz float32)

	// Parent returns the parent object, or nil.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// SetParent attaches the object under parent, or detaches it with nil.
	//
	// Parameters:
	//   - parent: the new parent or nil
	SetParent(parent GameObject)

	// LocalMatrix returns the object's own transform as T * R * S.
	//
	// Returns:
	//   - mgl32.Mat4: the local model matrix
	LocalMatrix() mgl32.Mat4

	// WorldMatrix returns the local matrix premultiplied by every ancestor's.
	//
	// Returns:
	//   - mgl32.Mat4: the world model matrix
	WorldMatrix() mgl32.Mat4

	// Model returns the mesh component, or nil.
	//
	// Returns:
	//   - model.Model: the mesh component or nil
	Model() model.Model

	// SetModel fills or clears the mesh slot.
	//
	// Parameters:
	//   - m: the mesh component, or nil to clear
	SetModel(m model.Model)

	// Light returns the light component, or nil.
	//
	// Returns:
	//   - light.Light: the light component or nil
	Light() light.Light

	// SetLight fills or clears the light slot.
	//
	// Parameters:
	//   - l: the light component, or nil to clear
	SetLight(l light.Light)

	// Camera returns the camera component, or nil.
	//
	// Returns:
	//   - camera.Camera: the camera component or nil
	Camera() camera.Camera

	// SetCamera fills or clears the camera slot.
	//
	// Parameters:
	//   - c: the camera component, or nil to clear
	SetCamera(c camera.Camera)

	// Components returns the filled slots in the order they were attached.
	//
	// Returns:
	//   - []ComponentKind: the attached component kinds
	Components() []ComponentKind

	// Behaviour returns the per-tick logic, or nil.
	//
	// Returns:
	//   - Behaviour: the behaviour or nil
	Behaviour() Behaviour

	// Tick advances the rotation by the rotation speed and runs the behaviour.
	// The caller must hold the object's borrow.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Tick(dt float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject with an identity transform and a
// fresh unique ID.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the new object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	g := &gameObject{
		id:    nextID.Add(1),
		scale: mgl32.Vec3{1, 1, 1},
	}
	g.enabled.Store(true)
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) TryBorrow() error {
	if !g.borrow.TryLock() {
		return ErrBorrowUnavailable
	}
	return nil
}

func (g *gameObject) Borrow() {
	g.borrow.Lock()
}

func (g *gameObject) Return() {
	g.borrow.Unlock()
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rotation
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scale
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	g.position = mgl32.Vec3{x, y, z}
	g.mu.Unlock()
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	g.rotation = mgl32.Vec3{rx, ry, rz}
	g.mu.Unlock()
}

func (g *gameObject) SetRotationSpeed(rx, ry, rz float32) {
	g.mu.Lock()
	g.rotationSpeed = mgl32.Vec3{rx, ry, rz}
	g.mu.Unlock()
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	g.scale = mgl32.Vec3{sx, sy, sz}
	g.mu.Unlock()
}

func (g *gameObject) Parent() GameObject {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.parent
}

func (g *gameObject) SetParent(parent GameObject) {
	for p := parent; p != nil; p = p.Parent() {
		if p == GameObject(g) {
			panic("game_object: parent cycle")
		}
	}
	g.mu.Lock()
	g.parent = parent
	g.mu.Unlock()
}

func (g *gameObject) LocalMatrix() mgl32.Mat4 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return common.BuildModelMatrix(g.position, g.rotation, g.scale)
}

func (g *gameObject) WorldMatrix() mgl32.Mat4 {
	local := g.LocalMatrix()
	if parent := g.Parent(); parent != nil {
		return parent.WorldMatrix().Mul4(local)
	}
	return local
}

func (g *gameObject) Model() model.Model {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mdl
}

func (g *gameObject) SetModel(m model.Model) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mdl = m
	g.track(ComponentMesh, m != nil)
}

func (g *gameObject) Light() light.Light {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.lgt
}

func (g *gameObject) SetLight(l light.Light) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lgt = l
	g.track(ComponentLight, l != nil)
}

func (g *gameObject) Camera() camera.Camera {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cam
}

func (g *gameObject) SetCamera(c camera.Camera) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cam = c
	g.track(ComponentCamera, c != nil)
}

func (g *gameObject) Components() []ComponentKind {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]ComponentKind, len(g.components))
	copy(out, g.components)
	return out
}

func (g *gameObject) Behaviour() Behaviour {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.behaviour
}

func (g *gameObject) Tick(dt float32) {
	g.mu.Lock()
	g.rotation = g.rotation.Add(g.rotationSpeed.Mul(dt))
	b := g.behaviour
	g.mu.Unlock()
	if b != nil {
		b(g, dt)
	}
}

// track keeps the attachment order list in step with the slots. Caller must hold mu.
func (g *gameObject) track(kind ComponentKind, present bool) {
	for i, k := range g.components {
		if k == kind {
			if !present {
				g.components = append(g.components[:i], g.components[i+1:]...)
			}
			return
		}
	}
	if present {
		g.components = append(g.components, kind)
	}
}
