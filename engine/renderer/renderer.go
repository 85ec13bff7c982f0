package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-frame/common"
	"github.com/Carmen-Shannon/oxy-frame/engine/camera"
	"github.com/Carmen-Shannon/oxy-frame/engine/game_object"
	"github.com/Carmen-Shannon/oxy-frame/engine/gfx"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ClearOptions selects which buffers a pass clears and the color it clears to.
type ClearOptions struct {
	Color      bool
	Depth      bool
	Stencil    bool
	ClearColor wgpu.Color
}

// DefaultClearOptions clears color and depth to a dark grey.
func DefaultClearOptions() ClearOptions {
	return ClearOptions{
		Color:      true,
		Depth:      true,
		ClearColor: wgpu.Color{R: 0.2, G: 0.2, B: 0.2, A: 1},
	}
}

func (c ClearOptions) mask() gfx.ClearMask {
	var m gfx.ClearMask
	if c.Color {
		m |= gfx.ClearColorBit
	}
	if c.Depth {
		m |= gfx.ClearDepthBit
	}
	if c.Stencil {
		m |= gfx.ClearStencilBit
	}
	return m
}

// Objects is the live object set a pass draws. Each visits objects in insertion order
// and skips any that have been dropped; Prune forgets the dropped ones.
type Objects interface {
	Each(fn func(obj game_object.GameObject) bool)
	Prune() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu sync.Mutex

	device gfx.Device
	logger *zap.Logger

	width, height int

	programCache map[string]*shader.Program
}

// Renderer turns a set of game objects into draw calls on a gfx.Device.
//
// Each pass gathers the lights and the surfaces of every live object, partitions the
// surfaces into the Opaque, Skybox and Transparent queues, sorts the transparent queue
// back to front and draws the queues in that order. Program, mesh and texture binds go
// through per-pass identity caches so a resource is bound only when it changes.
//
// A draw whose program, texture or mesh is not ready yet is skipped for the pass. Any
// other bind failure stops the pass and is returned.
type Renderer interface {
	// Device returns the graphics sink the renderer draws through.
	//
	// Returns:
	//   - gfx.Device: the device
	Device() gfx.Device

	// Size returns the size of the default render target in pixels.
	//
	// Returns:
	//   - width, height: the target size
	Size() (width, height int)

	// Resize updates the size of the default render target.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// RenderPass draws objs as seen from cam.
	//
	// Parameters:
	//   - objs: the live objects
	//   - cam: the camera to draw from (must not be nil)
	//   - clear: which buffers to clear first
	//
	// Returns:
	//   - FrameStats: what the pass did
	//   - error: a bind failure that aborted the pass (matches gfx.ErrBindFailure)
	RenderPass(objs Objects, cam camera.Camera, clear ClearOptions) (FrameStats, error)

	// Render runs one pass through cam, or only clears the default target when cam is nil,
	// then prunes dropped objects from objs.
	//
	// Parameters:
	//   - objs: the live objects
	//   - cam: the main camera, or nil
	//   - clear: which buffers to clear first
	//
	// Returns:
	//   - FrameStats: what the pass did
	//   - error: a bind failure that aborted the pass
	Render(objs Objects, cam camera.Camera, clear ClearOptions) (FrameStats, error)

	// Program retrieves a cached shader program by name, or nil if none is registered.
	//
	// Parameters:
	//   - name: the program name
	//
	// Returns:
	//   - *shader.Program: the program or nil
	Program(name string) *shader.Program

	// Programs returns a copy of the program cache.
	//
	// Returns:
	//   - map[string]*shader.Program: programs keyed by name
	Programs() map[string]*shader.Program

	// RegisterProgram caches p under its name. A program already cached under that name
	// is kept and returned instead, so shared shaders are linked once.
	//
	// Parameters:
	//   - p: the program to cache
	//
	// Returns:
	//   - *shader.Program: the cached program for p's name
	RegisterProgram(p *shader.Program) *shader.Program
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing through device. Panics if device is nil.
//
// Parameters:
//   - device: the graphics sink
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
func NewRenderer(device gfx.Device, options ...RendererBuilderOption) Renderer {
	if device == nil {
		panic("renderer: NewRenderer requires a non-nil Device")
	}
	r := &renderer{
		device:       device,
		logger:       zap.NewNop(),
		width:        800,
		height:       600,
		programCache: make(map[string]*shader.Program),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) Device() gfx.Device {
	return r.device
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
}

func (r *renderer) Program(name string) *shader.Program {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.programCache[name]
}

func (r *renderer) Programs() map[string]*shader.Program {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*shader.Program, len(r.programCache))
	for k, v := range r.programCache {
		out[k] = v
	}
	return out
}

func (r *renderer) RegisterProgram(p *shader.Program) *shader.Program {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.programCache[p.Name()]; ok && cached.Alive() {
		return cached
	}
	r.programCache[p.Name()] = p
	return p
}

func (r *renderer) Render(objs Objects, cam camera.Camera, clear ClearOptions) (FrameStats, error) {
	// dropped objects are forgotten after drawing so the list is not mutated mid-walk
	defer objs.Prune()

	if cam == nil {
		w, h := r.Size()
		r.device.BindFramebuffer(gfx.DefaultFramebuffer)
		r.device.Viewport(0, 0, int32(w), int32(h))
		r.clear(clear)
		return FrameStats{}, nil
	}
	return r.RenderPass(objs, cam, clear)
}

func (r *renderer) RenderPass(objs Objects, cam camera.Camera, clear ClearOptions) (FrameStats, error) {
	if cam == nil {
		panic("renderer: RenderPass requires a non-nil Camera")
	}
	ctx := newFrameContext()
	d := r.device

	width, height := r.Size()
	target := cam.RenderTarget()
	if target != nil {
		d.BindFramebuffer(target.Framebuffer)
		width, height = target.Width, target.Height
		defer d.BindFramebuffer(gfx.DefaultFramebuffer)
	} else {
		d.BindFramebuffer(gfx.DefaultFramebuffer)
	}
	d.Viewport(cam.Rect().Pixels(width, height))
	r.clear(clear)

	ctx.lights = gatherLights(objs, &ctx.stats, r.logger)
	eye := cam.Eye()
	queues := gatherCommands(objs, eye, &ctx.stats, r.logger)
	sortTransparent(&queues[material.QueueTransparent])
	ctx.stats.Commands = queues.Len()

	view := cam.View()
	proj := cam.Projection()
	for tag := range queues {
		q := &queues[tag]
		r.applyDepthState(q)
		for _, cmd := range q.Commands {
			err := r.renderCommand(ctx, cmd, view, proj, eye)
			if err == nil {
				continue
			}
			if errors.Is(err, gfx.ErrNotReady) {
				ctx.stats.Skipped++
				r.logger.Debug("draw skipped, resource not ready",
					zap.Uint64("object", cmd.ObjectID),
					zap.Stringer("queue", material.QueueTag(tag)),
					zap.Error(err),
				)
				continue
			}
			r.unbindMesh(ctx)
			return ctx.stats, fmt.Errorf("renderer: object %d: %w", cmd.ObjectID, err)
		}
	}
	r.unbindMesh(ctx)
	return ctx.stats, nil
}

// clear resets the bound target per opts. The depth mask is forced on first because a
// previous transparent queue may have left depth writes disabled.
func (r *renderer) clear(opts ClearOptions) {
	mask := opts.mask()
	if mask == 0 {
		return
	}
	if opts.Depth {
		r.device.DepthMask(true)
	}
	r.device.ClearColor(opts.ClearColor)
	r.device.Clear(mask)
}

func (r *renderer) applyDepthState(q *QueueState) {
	if q.DepthTest {
		r.device.Enable(gfx.CapabilityDepthTest)
	} else {
		r.device.Disable(gfx.CapabilityDepthTest)
	}
	r.device.DepthMask(q.DepthWrite)
	r.device.DepthFunc(q.DepthFunc)
}

// renderCommand binds the command's material, lights and mesh, uploads the per-object
// uniforms and draws.
func (r *renderer) renderCommand(ctx *frameContext, cmd Command, view, proj mgl32.Mat4, eye mgl32.Vec3) error {
	mat := cmd.Surface.Material
	if err := r.setupMaterial(ctx, mat); err != nil {
		return err
	}
	prog := mat.Program()
	r.setupLights(ctx, prog)

	buf := cmd.Surface.Buffer
	err := prepare(&ctx.mesh, buf, func() error {
		if err := buf.Bind(r.device); err != nil {
			return err
		}
		ctx.stats.MeshSwitches++
		return nil
	})
	if err != nil {
		return err
	}

	r.setupCamera(prog, cmd.World, view, proj, eye)
	prog.Commit(r.device)
	buf.Render(r.device)
	ctx.stats.Draws++
	return nil
}

// setupMaterial binds mat's program, then each of its textures in declaration order,
// and stages the sampler units and shininess on the program.
func (r *renderer) setupMaterial(ctx *frameContext, mat material.Material) error {
	prog := mat.Program()
	if prog == nil {
		return gfx.NewBindError(fmt.Sprintf("material %q", mat.Name()), errors.New("material has no shader program"))
	}
	err := prepare(&ctx.program, prog, func() error {
		if err := prog.Bind(r.device); err != nil {
			return err
		}
		ctx.stats.ProgramSwitches++
		return nil
	})
	if err != nil {
		return err
	}

	for _, b := range mat.Textures() {
		tex := b.Texture
		unit, err := ctx.units.assign(tex, func(unit int) error {
			if err := tex.Bind(r.device, unit); err != nil {
				return err
			}
			ctx.stats.TextureSwitches++
			return nil
		})
		if err != nil {
			return err
		}
		prog.SetInt(b.Slot, int32(unit))
	}
	prog.SetFloat("uShininess", mat.Shininess())
	return nil
}

// setupLights stages the pass's lights on the current program.
func (r *renderer) setupLights(ctx *frameContext, prog *shader.Program) {
	ctx.lights.bind(prog)
}

// setupCamera stages the per-object matrices and the eye position.
func (r *renderer) setupCamera(prog *shader.Program, world, view, proj mgl32.Mat4, eye mgl32.Vec3) {
	prog.SetMat4("uMMatrix", world)
	prog.SetMat4("uMVMatrix", view.Mul4(world))
	prog.SetMat4("uPMatrix", proj)
	prog.SetMat4("uNMatrix", common.InverseTranspose(world))
	prog.SetMat3("uNormalMatrix", common.NormalMatrix(world))
	prog.SetVec3("uViewPos", eye)
}

// unbindMesh releases the mesh the pass left bound. Meshes stay bound between draws so
// consecutive surfaces sharing a buffer bind it once.
func (r *renderer) unbindMesh(ctx *frameContext) {
	if buf := ctx.mesh.Value(); buf != nil {
		buf.Unbind(r.device)
	}
}
