package renderer

import (
	"weak"

	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/shader"
)

// FrameStats counts what one render pass did. Switch counts are the binds the identity
// caches let through; a pass over an unchanged scene always reports the same numbers.
type FrameStats struct {
	ProgramSwitches int
	MeshSwitches    int
	TextureSwitches int
	Commands        int
	Draws           int
	// Skipped counts commands dropped because a program, texture or mesh was not ready.
	Skipped int
	// Contended counts objects skipped because game logic held their borrow.
	Contended int
}

// Add accumulates o into s.
func (s *FrameStats) Add(o FrameStats) {
	s.ProgramSwitches += o.ProgramSwitches
	s.MeshSwitches += o.MeshSwitches
	s.TextureSwitches += o.TextureSwitches
	s.Commands += o.Commands
	s.Draws += o.Draws
	s.Skipped += o.Skipped
	s.Contended += o.Contended
}

// frameContext is the per-pass binding state. A new one is built at the start of every
// RenderPass and dropped at the end, so no binding survives into the next pass.
type frameContext struct {
	program weak.Pointer[shader.Program]
	mesh    weak.Pointer[buffer.MeshBuffer]
	units   textureUnits
	lights  lightSet
	stats   FrameStats
}

func newFrameContext() *frameContext {
	return &frameContext{}
}

// identity is what the binding caches need from a shared resource besides its address.
type identity interface {
	Alive() bool
}

// prepare runs bind only when next is not the resource cached in slot. The slot is
// updated after a successful bind; on failure it keeps pointing at the previous resource
// and the error is returned unchanged. A released resource never counts as cached.
//
// Parameters:
//   - slot: the cache entry for one resource category
//   - next: the resource the upcoming draw needs
//   - bind: performs the device bind
//
// Returns:
//   - error: whatever bind returned
func prepare[T any, P interface {
	*T
	identity
}](slot *weak.Pointer[T], next P, bind func() error) error {
	if cur := slot.Value(); cur != nil && cur == (*T)(next) && next.Alive() {
		return nil
	}
	if err := bind(); err != nil {
		return err
	}
	*slot = weak.Make((*T)(next))
	return nil
}
