// Package gfx defines the graphics sink the renderer draws through.
//
// The renderer never talks to a graphics API directly. It issues the primitive
// operations below and leaves their realization to a Device implementation
// (see glgfx for OpenGL and gfxtest for a recording device used in tests).
package gfx

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ClearMask selects which buffers of the bound render target Clear resets.
type ClearMask uint32

const (
	// ClearColorBit clears the color attachment.
	ClearColorBit ClearMask = 1 << iota
	// ClearDepthBit clears the depth attachment.
	ClearDepthBit
	// ClearStencilBit clears the stencil attachment.
	ClearStencilBit
)

// Capability is a fixed-function state that can be toggled with Enable and Disable.
type Capability int

const (
	// CapabilityDepthTest toggles depth testing.
	CapabilityDepthTest Capability = iota
	// CapabilityBlend toggles alpha blending.
	CapabilityBlend
)

// DefaultFramebuffer is the framebuffer id of the on-screen target.
const DefaultFramebuffer uint32 = 0

// Device is the draw-call sink. All calls are made from the render thread.
type Device interface {
	// ClearColor sets the color used by subsequent clears of the color buffer.
	ClearColor(c wgpu.Color)

	// Clear resets the buffers selected by mask on the bound framebuffer.
	Clear(mask ClearMask)

	// Viewport sets the pixel rectangle subsequent draws map to.
	Viewport(x, y, width, height int32)

	// Enable turns a capability on.
	Enable(c Capability)

	// Disable turns a capability off.
	Disable(c Capability)

	// DepthFunc sets the depth comparison used when depth testing is enabled.
	DepthFunc(fn wgpu.CompareFunction)

	// DepthMask enables or disables writes to the depth buffer.
	DepthMask(write bool)

	// BindFramebuffer makes fb the render target. DefaultFramebuffer restores the screen.
	BindFramebuffer(fb uint32)

	// UseProgram makes program the active shader program.
	UseProgram(program uint32)

	// UniformLocation resolves a uniform name on program. A negative location means
	// the program has no such active uniform.
	UniformLocation(program uint32, name string) int32

	// Uniform1i uploads an int (also used for sampler unit indices).
	Uniform1i(location int32, v int32)

	// Uniform1f uploads a float.
	Uniform1f(location int32, v float32)

	// Uniform3f uploads a vec3.
	Uniform3f(location int32, v [3]float32)

	// UniformMatrix3 uploads a column-major mat3.
	UniformMatrix3(location int32, m [9]float32)

	// UniformMatrix4 uploads a column-major mat4.
	UniformMatrix4(location int32, m [16]float32)

	// BindVertexArray makes vao the active vertex array. Zero unbinds.
	BindVertexArray(vao uint32)

	// ActiveTexture selects the texture unit subsequent BindTexture2D calls affect.
	ActiveTexture(unit int)

	// BindTexture2D binds tex to the active texture unit.
	BindTexture2D(tex uint32)

	// DrawElements issues an indexed triangle draw of count indices from the bound vertex array.
	DrawElements(count int32)
}
