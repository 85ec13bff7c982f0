package glgfx

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexStride is the number of floats per interleaved vertex accepted by NewMesh:
// position (3), normal (3), texcoord (2).
const VertexStride = 8

// NewProgram compiles and links a vertex/fragment shader pair.
//
// Parameters:
//   - vertexSource: GLSL vertex shader source
//   - fragmentSource: GLSL fragment shader source
//
// Returns:
//   - uint32: the linked program id
//   - error: the compile or link log on failure
func NewProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %s", log)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile: %s", log)
	}
	return shader, nil
}

// NewMesh uploads interleaved vertices (see VertexStride) and 32-bit indices into a
// new vertex array object.
//
// Parameters:
//   - vertices: interleaved position/normal/texcoord data
//   - indices: triangle list indices
//
// Returns:
//   - vao: the vertex array id
//   - indexCount: the number of indices to draw
func NewMesh(vertices []float32, indices []uint32) (vao uint32, indexCount int32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	stride := int32(VertexStride * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return vao, int32(len(indices))
}

// NewTexture uploads tightly packed RGBA8 pixels into a new mipmapped 2D texture.
//
// Parameters:
//   - pixels: RGBA data, 4 bytes per pixel, row-major
//   - width, height: dimensions in pixels
//
// Returns:
//   - uint32: the texture id
//   - error: error if the pixel slice does not match the dimensions
func NewTexture(pixels []byte, width, height int) (uint32, error) {
	if len(pixels) != width*height*4 || width <= 0 || height <= 0 {
		return 0, fmt.Errorf("texture data is %d bytes, want %dx%dx4", len(pixels), width, height)
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex, nil
}

// NewFramebuffer creates an offscreen color+depth render target.
//
// Parameters:
//   - width, height: dimensions in pixels
//
// Returns:
//   - fb: the framebuffer id
//   - color: the color attachment texture id
//   - error: error if the framebuffer is incomplete
func NewFramebuffer(width, height int) (fb, color uint32, err error) {
	gl.GenFramebuffers(1, &fb)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb)
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	gl.GenTextures(1, &color)
	gl.BindTexture(gl.TEXTURE_2D, color)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, color, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	var depth uint32
	gl.GenRenderbuffers(1, &depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, depth)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return 0, 0, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return fb, color, nil
}

// Uploader creates GL objects for the asset loader. It must be used on the thread
// that owns the GL context.
type Uploader struct{}

// NewProgram compiles and links a shader pair. See the package-level NewProgram.
func (Uploader) NewProgram(vertexSource, fragmentSource string) (uint32, error) {
	return NewProgram(vertexSource, fragmentSource)
}

// NewMesh uploads interleaved vertices and indices. See the package-level NewMesh.
func (Uploader) NewMesh(vertices []float32, indices []uint32) (uint32, int32) {
	return NewMesh(vertices, indices)
}

// NewTexture uploads RGBA8 pixels. See the package-level NewTexture.
func (Uploader) NewTexture(pixels []byte, width, height int) (uint32, error) {
	return NewTexture(pixels, width, height)
}
