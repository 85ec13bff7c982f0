package renderer

import (
	"cmp"
	"errors"
	"slices"

	"github.com/Carmen-Shannon/oxy-frame/common"
	"github.com/Carmen-Shannon/oxy-frame/engine/game_object"
	"github.com/Carmen-Shannon/oxy-frame/engine/model"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Command is one surface to draw this pass. The world matrix is captured when the
// command is gathered; moving the object afterwards does not affect this pass.
type Command struct {
	ObjectID   uint64
	Surface    model.Surface
	World      mgl32.Mat4
	DistanceSq float32
}

// QueueState is the depth configuration of one render queue plus its commands.
type QueueState struct {
	DepthWrite bool
	DepthTest  bool
	DepthFunc  wgpu.CompareFunction
	Commands   []Command
}

// QueueList holds one QueueState per material.QueueTag, indexed by tag.
type QueueList [material.QueueCount]QueueState

// newQueueList returns empty queues with the fixed per-tag depth state.
func newQueueList() QueueList {
	var q QueueList
	q[material.QueueOpaque] = QueueState{DepthWrite: true, DepthTest: true, DepthFunc: wgpu.CompareFunctionLess}
	// drawn at maximum depth behind everything already in the buffer
	q[material.QueueSkybox] = QueueState{DepthWrite: false, DepthTest: true, DepthFunc: wgpu.CompareFunctionLessEqual}
	q[material.QueueTransparent] = QueueState{DepthWrite: false, DepthTest: true, DepthFunc: wgpu.CompareFunctionLess}
	return q
}

// Len returns the total number of commands across every queue.
func (q *QueueList) Len() int {
	n := 0
	for i := range q {
		n += len(q[i].Commands)
	}
	return n
}

// gatherCommands builds one Command per surface of every enabled object with a mesh.
// Objects whose borrow is held elsewhere are skipped for this pass. A surface whose
// material names a queue outside the fixed set panics.
func gatherCommands(objs Objects, eye mgl32.Vec3, stats *FrameStats, logger *zap.Logger) QueueList {
	queues := newQueueList()
	objs.Each(func(obj game_object.GameObject) bool {
		if err := obj.TryBorrow(); err != nil {
			if errors.Is(err, game_object.ErrBorrowUnavailable) {
				stats.Contended++
				logger.Debug("object skipped, borrowed", zap.Uint64("object", obj.ID()))
			}
			return true
		}
		defer obj.Return()

		if !obj.Enabled() {
			return true
		}
		mdl := obj.Model()
		if mdl == nil {
			return true
		}
		world := obj.WorldMatrix()
		dist := common.DistanceSq(eye, common.Translation(world))
		for _, s := range mdl.Surfaces() {
			tag := s.Material.Queue()
			if !tag.Valid() {
				panic("renderer: surface material has invalid queue tag " + tag.String())
			}
			queues[tag].Commands = append(queues[tag].Commands, Command{
				ObjectID:   obj.ID(),
				Surface:    s,
				World:      world,
				DistanceSq: dist,
			})
		}
		return true
	})
	return queues
}

// sortTransparent orders q farthest first for back-to-front blending.
func sortTransparent(q *QueueState) {
	slices.SortFunc(q.Commands, func(a, b Command) int {
		return cmp.Compare(b.DistanceSq, a.DistanceSq)
	})
}
