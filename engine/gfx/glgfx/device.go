// Package glgfx implements gfx.Device on OpenGL 4.1 core through go-gl.
//
// All functions must be called on the thread that owns the current GL context.
package glgfx

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-frame/engine/gfx"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// device is the OpenGL implementation of gfx.Device.
type device struct {
	logger *zap.Logger

	// uniform locations are resolved once per (program, name)
	locations map[uint32]map[string]int32
}

var _ gfx.Device = &device{}

// New loads the GL function pointers for the current context and applies the
// engine's baseline state: depth testing on, source-alpha blending on.
//
// Parameters:
//   - logger: logger for driver information, nil for none
//
// Returns:
//   - gfx.Device: the device
//   - error: error if the GL bindings could not be initialized
func New(logger *zap.Logger) (gfx.Device, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL bindings: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return &device{
		logger:    logger,
		locations: make(map[uint32]map[string]int32),
	}, nil
}

func (d *device) ClearColor(c wgpu.Color) {
	gl.ClearColor(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
}

func (d *device) Clear(mask gfx.ClearMask) {
	var bits uint32
	if mask&gfx.ClearColorBit != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gfx.ClearDepthBit != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&gfx.ClearStencilBit != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	if bits != 0 {
		gl.Clear(bits)
	}
}

func (d *device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *device) Enable(c gfx.Capability) {
	gl.Enable(capability(c))
}

func (d *device) Disable(c gfx.Capability) {
	gl.Disable(capability(c))
}

func (d *device) DepthFunc(fn wgpu.CompareFunction) {
	gl.DepthFunc(compareFunc(fn))
}

func (d *device) DepthMask(write bool) {
	gl.DepthMask(write)
}

func (d *device) BindFramebuffer(fb uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb)
}

func (d *device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *device) UniformLocation(program uint32, name string) int32 {
	names, ok := d.locations[program]
	if !ok {
		names = make(map[string]int32)
		d.locations[program] = names
	}
	if loc, ok := names[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	names[name] = loc
	return loc
}

func (d *device) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *device) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *device) Uniform3f(location int32, v [3]float32) {
	gl.Uniform3f(location, v[0], v[1], v[2])
}

func (d *device) UniformMatrix3(location int32, m [9]float32) {
	gl.UniformMatrix3fv(location, 1, false, &m[0])
}

func (d *device) UniformMatrix4(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *device) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *device) ActiveTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

func (d *device) BindTexture2D(tex uint32) {
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func (d *device) DrawElements(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

// capability maps a gfx.Capability to its GL enum.
func capability(c gfx.Capability) uint32 {
	switch c {
	case gfx.CapabilityBlend:
		return gl.BLEND
	default:
		return gl.DEPTH_TEST
	}
}

// compareFunc maps a WebGPU compare function to its GL depth function.
// CompareFunctionUndefined maps to GL's default, LESS.
func compareFunc(fn wgpu.CompareFunction) uint32 {
	switch fn {
	case wgpu.CompareFunctionNever:
		return gl.NEVER
	case wgpu.CompareFunctionEqual:
		return gl.EQUAL
	case wgpu.CompareFunctionLessEqual:
		return gl.LEQUAL
	case wgpu.CompareFunctionGreater:
		return gl.GREATER
	case wgpu.CompareFunctionNotEqual:
		return gl.NOTEQUAL
	case wgpu.CompareFunctionGreaterEqual:
		return gl.GEQUAL
	case wgpu.CompareFunctionAlways:
		return gl.ALWAYS
	default:
		return gl.LESS
	}
}
