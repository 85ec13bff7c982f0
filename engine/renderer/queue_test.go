package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-frame/engine/game_object"
	"github.com/Carmen-Shannon/oxy-frame/engine/light"
	"github.com/Carmen-Shannon/oxy-frame/engine/model"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// badQueueMaterial reports a queue tag outside the fixed set.
type badQueueMaterial struct{ material.Material }

func (badQueueMaterial) Queue() material.QueueTag { return material.QueueTag(7) }

func TestGatherCommandsPartitionsByQueue(t *testing.T) {
	prog, mesh := testProgram(1), testMesh(2)
	mdl := model.NewModel(
		model.WithSurface(mesh, testMaterial(prog, material.QueueOpaque)),
		model.WithSurface(mesh, testMaterial(prog, material.QueueTransparent)),
	)
	objs := newObjectList(
		game_object.NewGameObject(game_object.WithModel(mdl), game_object.WithPosition(0, 3, 4)),
		meshObject(mesh, testMaterial(prog, material.QueueSkybox), 0, 0, 0),
	)
	var stats FrameStats

	q := gatherCommands(objs, mgl32.Vec3{}, &stats, zap.NewNop())

	require.Len(t, q[material.QueueOpaque].Commands, 1)
	require.Len(t, q[material.QueueSkybox].Commands, 1)
	require.Len(t, q[material.QueueTransparent].Commands, 1)
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, float32(25), q[material.QueueOpaque].Commands[0].DistanceSq)

	assert.True(t, q[material.QueueOpaque].DepthWrite)
	assert.False(t, q[material.QueueSkybox].DepthWrite)
	assert.False(t, q[material.QueueTransparent].DepthWrite)
	for i := range q {
		assert.True(t, q[i].DepthTest)
	}
}

func TestGatherCommandsSkipsInactiveAndMeshless(t *testing.T) {
	prog, mesh := testProgram(1), testMesh(2)
	inactive := meshObject(mesh, testMaterial(prog, material.QueueOpaque), 0, 0, 0)
	inactive.SetEnabled(false)
	objs := newObjectList(
		inactive,
		lightObject(light.NewLight(light.LightTypePoint), 0, 0, 0),
		game_object.NewGameObject(),
	)
	var stats FrameStats

	q := gatherCommands(objs, mgl32.Vec3{}, &stats, zap.NewNop())
	assert.Zero(t, q.Len())
	assert.Zero(t, stats.Contended)
}

func TestGatherCommandsCapturesWorldMatrix(t *testing.T) {
	obj := meshObject(testMesh(2), testMaterial(testProgram(1), material.QueueOpaque), 1, 0, 0)
	var stats FrameStats

	q := gatherCommands(newObjectList(obj), mgl32.Vec3{}, &stats, zap.NewNop())
	obj.SetPosition(9, 9, 9)

	cmd := q[material.QueueOpaque].Commands[0]
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, cmd.World.Col(3).Vec3())
	assert.Equal(t, obj.ID(), cmd.ObjectID)
}

func TestGatherCommandsPanicsOnUnknownQueue(t *testing.T) {
	mat := badQueueMaterial{testMaterial(shader.NewProgram("p", 1), material.QueueOpaque)}
	obj := meshObject(testMesh(2), mat, 0, 0, 0)
	var stats FrameStats

	assert.Panics(t, func() {
		gatherCommands(newObjectList(obj), mgl32.Vec3{}, &stats, zap.NewNop())
	})
}

func TestSortTransparentFarthestFirst(t *testing.T) {
	q := QueueState{Commands: []Command{
		{ObjectID: 1, DistanceSq: 1},
		{ObjectID: 2, DistanceSq: 9},
		{ObjectID: 3, DistanceSq: 4},
	}}

	sortTransparent(&q)

	var got []float32
	for _, c := range q.Commands {
		got = append(got, c.DistanceSq)
	}
	assert.Equal(t, []float32{9, 4, 1}, got)
}
