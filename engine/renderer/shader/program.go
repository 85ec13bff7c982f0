package shader

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-frame/engine/gfx"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/resource"
	"github.com/go-gl/mathgl/mgl32"
)

// uniformKind identifies which field of a uniformValue holds the staged value.
type uniformKind int

const (
	uniformInt uniformKind = iota
	uniformFloat
	uniformVec3
	uniformMat3
	uniformMat4
)

// uniformValue is a staged uniform upload.
type uniformValue struct {
	kind uniformKind
	i    int32
	f    float32
	v3   [3]float32
	m3   [9]float32
	m4   [16]float32
}

// Program is a shared, reference-counted shader program handle.
//
// Uniform values are staged with the Set* methods and uploaded in one batch by
// Commit right before a draw. Programs are compared by identity: two Programs
// linked from the same sources are still different programs to the renderer.
type Program struct {
	resource.RefCount
	resource.Readiness

	mu sync.Mutex

	name string
	id   uint32

	staged map[string]uniformValue
	order  []string
}

// NewProgram creates a Program holding one strong reference for the caller.
// A non-zero id marks the program ready; pass 0 while the asset is still loading
// and call Resolve once it is linked.
//
// Parameters:
//   - name: identifier used in diagnostics and by the renderer's program cache
//   - id: the linked GPU program id, or 0 if not yet available
//   - options: functional options to configure the program
//
// Returns:
//   - *Program: the program
func NewProgram(name string, id uint32, options ...ProgramBuilderOption) *Program {
	p := &Program{
		name:   name,
		id:     id,
		staged: make(map[string]uniformValue),
	}
	p.Retain()
	p.SetReady(id != 0)
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Name returns the program's identifier.
func (p *Program) Name() string {
	return p.name
}

// ID returns the GPU program id.
func (p *Program) ID() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

// Resolve stores the linked GPU id and marks the program ready.
//
// Parameters:
//   - id: the linked GPU program id
func (p *Program) Resolve(id uint32) {
	p.mu.Lock()
	p.id = id
	p.mu.Unlock()
	p.SetReady(true)
}

// Bind makes p the device's active program.
//
// Parameters:
//   - d: the device to bind on
//
// Returns:
//   - error: gfx.ErrNotReady while loading, a *gfx.BindError if the program is
//     released or has no GPU handle
func (p *Program) Bind(d gfx.Device) error {
	if !p.Ready() {
		return fmt.Errorf("program %q: %w", p.name, gfx.ErrNotReady)
	}
	if !p.Alive() {
		return gfx.NewBindError(fmt.Sprintf("program %q", p.name), fmt.Errorf("program was released"))
	}
	id := p.ID()
	if id == 0 {
		return gfx.NewBindError(fmt.Sprintf("program %q", p.name), fmt.Errorf("no GPU program handle"))
	}
	d.UseProgram(id)
	return nil
}

// SetInt stages an int (or sampler unit) uniform.
func (p *Program) SetInt(name string, v int32) {
	p.stage(name, uniformValue{kind: uniformInt, i: v})
}

// SetFloat stages a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	p.stage(name, uniformValue{kind: uniformFloat, f: v})
}

// SetVec3 stages a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	p.stage(name, uniformValue{kind: uniformVec3, v3: v})
}

// SetMat3 stages a mat3 uniform.
func (p *Program) SetMat3(name string, m mgl32.Mat3) {
	p.stage(name, uniformValue{kind: uniformMat3, m3: m})
}

// SetMat4 stages a mat4 uniform.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	p.stage(name, uniformValue{kind: uniformMat4, m4: m})
}

func (p *Program) stage(name string, v uniformValue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.staged[name]; !exists {
		p.order = append(p.order, name)
	}
	p.staged[name] = v
}

// Staged returns the number of uniforms waiting for Commit.
func (p *Program) Staged() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.order)
}

// Commit uploads every staged uniform to the device in the order they were first
// staged, then clears the stage. Uniforms the program does not declare are dropped.
//
// Parameters:
//   - d: the device; p must be its active program
func (p *Program) Commit(d gfx.Device) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, name := range p.order {
		loc := d.UniformLocation(p.id, name)
		if loc < 0 {
			continue
		}
		v := p.staged[name]
		switch v.kind {
		case uniformInt:
			d.Uniform1i(loc, v.i)
		case uniformFloat:
			d.Uniform1f(loc, v.f)
		case uniformVec3:
			d.Uniform3f(loc, v.v3)
		case uniformMat3:
			d.UniformMatrix3(loc, v.m3)
		case uniformMat4:
			d.UniformMatrix4(loc, v.m4)
		}
	}
	clear(p.staged)
	p.order = p.order[:0]
}
