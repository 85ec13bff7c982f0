package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-frame/engine/game_object"
	"github.com/Carmen-Shannon/oxy-frame/engine/light"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGatherLightsDefaultsWithoutDirectional(t *testing.T) {
	var stats FrameStats
	ls := gatherLights(newObjectList(), &stats, zap.NewNop())

	assert.Equal(t, light.DefaultDirectional(), ls.directional)
	assert.Empty(t, ls.points)
}

func TestGatherLightsKeepsDiscoveryOrder(t *testing.T) {
	var objs []game_object.GameObject
	for i := 0; i < MaxPointLights+2; i++ {
		objs = append(objs, lightObject(light.NewLight(light.LightTypePoint), float32(i), 0, 0))
	}
	sun := light.NewLight(light.LightTypeDirectional, light.WithDirection(0, 0, -1))
	objs = append(objs, lightObject(sun, 0, 0, 0))
	var stats FrameStats

	ls := gatherLights(newObjectList(objs...), &stats, zap.NewNop())

	require.Len(t, ls.points, MaxPointLights)
	for i, p := range ls.points {
		assert.Equal(t, mgl32.Vec3{float32(i), 0, 0}, p.Position)
	}
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, ls.directional.Direction)
}

func TestGatherLightsSkipsDisabledAndBorrowed(t *testing.T) {
	off := lightObject(light.NewLight(light.LightTypePoint, light.WithEnabled(false)), 1, 0, 0)
	hidden := lightObject(light.NewLight(light.LightTypePoint), 2, 0, 0)
	hidden.SetEnabled(false)
	busy := lightObject(light.NewLight(light.LightTypePoint), 3, 0, 0)
	busy.Borrow()
	defer busy.Return()
	live := lightObject(light.NewLight(light.LightTypePoint), 4, 0, 0)
	var stats FrameStats

	ls := gatherLights(newObjectList(off, hidden, busy, live), &stats, zap.NewNop())

	require.Len(t, ls.points, 1)
	assert.Equal(t, mgl32.Vec3{4, 0, 0}, ls.points[0].Position)
	assert.Equal(t, 1, stats.Contended)
}

func TestGatherLightsFollowsParent(t *testing.T) {
	parent := game_object.NewGameObject(game_object.WithPosition(10, 0, 0))
	child := game_object.NewGameObject(
		game_object.WithParent(parent),
		game_object.WithPosition(0, 1, 0),
		game_object.WithLight(light.NewLight(light.LightTypePoint, light.WithPosition(0, 0, 1))),
	)
	var stats FrameStats

	ls := gatherLights(newObjectList(parent, child), &stats, zap.NewNop())

	require.Len(t, ls.points, 1)
	assert.True(t, ls.points[0].Position.ApproxEqual(mgl32.Vec3{10, 1, 1}))
}
