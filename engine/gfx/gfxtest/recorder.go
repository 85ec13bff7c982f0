// Package gfxtest provides a recording gfx.Device for tests.
package gfxtest

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-frame/engine/gfx"
	"github.com/cogentcore/webgpu/wgpu"
)

// Call is one recorded device operation.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

// uniformKey identifies a uniform location on a program.
type uniformKey struct {
	program uint32
	name    string
}

// Recorder is a gfx.Device that records every call and keeps enough state
// (current program, uniform values per program) for assertions.
type Recorder struct {
	mu sync.Mutex

	calls []Call

	program   uint32
	locations map[uniformKey]int32
	names     map[int32]uniformKey
	nextLoc   int32
	values    map[uniformKey]any

	// Missing lists uniform names that resolve to location -1 on every program.
	Missing map[string]bool
}

var _ gfx.Device = &Recorder{}

// NewRecorder creates an empty Recorder.
//
// Returns:
//   - *Recorder: the recorder
func NewRecorder() *Recorder {
	return &Recorder{
		locations: make(map[uniformKey]int32),
		names:     make(map[int32]uniformKey),
		values:    make(map[uniformKey]any),
		Missing:   make(map[string]bool),
	}
}

// Calls returns a copy of every recorded call in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Ops returns the op names of every recorded call in order.
func (r *Recorder) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Op
	}
	return out
}

// Count returns how many times op was recorded.
func (r *Recorder) Count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls whose op is one of ops.
func (r *Recorder) Filter(ops ...string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[string]bool, len(ops))
	for _, op := range ops {
		want[op] = true
	}
	var out []Call
	for _, c := range r.calls {
		if want[c.Op] {
			out = append(out, c)
		}
	}
	return out
}

// Uniform returns the last value uploaded to name on program.
func (r *Recorder) Uniform(program uint32, name string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[uniformKey{program, name}]
	return v, ok
}

// Reset drops the call log but keeps uniform locations and values.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) record(op string, args ...any) {
	r.calls = append(r.calls, Call{Op: op, Args: args})
}

func (r *Recorder) setUniform(op string, location int32, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(op, location, v)
	if key, ok := r.names[location]; ok {
		r.values[key] = v
	}
}

func (r *Recorder) ClearColor(c wgpu.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ClearColor", c)
}

func (r *Recorder) Clear(mask gfx.ClearMask) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Clear", mask)
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) Enable(c gfx.Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Enable", c)
}

func (r *Recorder) Disable(c gfx.Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Disable", c)
}

func (r *Recorder) DepthFunc(fn wgpu.CompareFunction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("DepthFunc", fn)
}

func (r *Recorder) DepthMask(write bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("DepthMask", write)
}

func (r *Recorder) BindFramebuffer(fb uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("BindFramebuffer", fb)
}

func (r *Recorder) UseProgram(program uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.program = program
	r.record("UseProgram", program)
}

// UniformLocation hands out a stable location per (program, name). It is not
// recorded as a call so that location caching does not change the call log.
func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Missing[name] {
		return -1
	}
	key := uniformKey{program, name}
	if loc, ok := r.locations[key]; ok {
		return loc
	}
	loc := r.nextLoc
	r.nextLoc++
	r.locations[key] = loc
	r.names[loc] = key
	return loc
}

func (r *Recorder) Uniform1i(location int32, v int32) {
	r.setUniform("Uniform1i", location, v)
}

func (r *Recorder) Uniform1f(location int32, v float32) {
	r.setUniform("Uniform1f", location, v)
}

func (r *Recorder) Uniform3f(location int32, v [3]float32) {
	r.setUniform("Uniform3f", location, v)
}

func (r *Recorder) UniformMatrix3(location int32, m [9]float32) {
	r.setUniform("UniformMatrix3", location, m)
}

func (r *Recorder) UniformMatrix4(location int32, m [16]float32) {
	r.setUniform("UniformMatrix4", location, m)
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("BindVertexArray", vao)
}

func (r *Recorder) ActiveTexture(unit int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ActiveTexture", unit)
}

func (r *Recorder) BindTexture2D(tex uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("BindTexture2D", tex)
}

func (r *Recorder) DrawElements(count int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("DrawElements", count, r.program)
}
