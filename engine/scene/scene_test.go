package scene

import (
	"sync/atomic"
	"testing"

	"github.com/Carmen-Shannon/oxy-frame/engine/camera"
	"github.com/Carmen-Shannon/oxy-frame/engine/game_object"
	"github.com/Carmen-Shannon/oxy-frame/engine/gfx/gfxtest"
	"github.com/Carmen-Shannon/oxy-frame/engine/model"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawable() game_object.GameObject {
	mat := material.NewMaterial(material.WithProgram(shader.NewProgram("lit", 1)))
	mdl := model.NewModel(model.WithSurface(buffer.NewMeshBuffer("cube", 2, 36), mat))
	return game_object.NewGameObject(game_object.WithModel(mdl), game_object.WithPosition(0, 0, -3))
}

func newTestScene(options ...SceneBuilderOption) (Scene, *gfxtest.Recorder) {
	dev := gfxtest.NewRecorder()
	return NewScene("test", renderer.NewRenderer(dev), options...), dev
}

func TestNewScenePanicsWithoutRenderer(t *testing.T) {
	assert.Panics(t, func() { NewScene("x", nil) })
}

func TestNewSceneDefaults(t *testing.T) {
	s, _ := newTestScene(WithZOrder(3))
	assert.Equal(t, "test", s.Name())
	assert.True(t, s.Active())
	assert.Equal(t, 3, s.ZOrder())
	assert.Nil(t, s.MainCamera())
	assert.Zero(t, s.Count())
}

func TestAddGetAndRelease(t *testing.T) {
	s, _ := newTestScene()
	obj := drawable()
	ref := s.Add(obj)

	got, ok := ref.Get()
	require.True(t, ok)
	assert.Same(t, obj, got)
	assert.Same(t, obj, s.Get(obj.ID()))
	assert.Equal(t, 1, s.Count())

	assert.True(t, ref.Release())
	_, ok = ref.Get()
	assert.False(t, ok)
	assert.Nil(t, s.Get(obj.ID()))
	assert.Zero(t, s.Count())
	assert.Equal(t, 1, s.Prune())
}

func TestRetainedRefKeepsObject(t *testing.T) {
	s, _ := newTestScene()
	ref := s.Add(drawable())
	second, ok := ref.Retain()
	require.True(t, ok)

	assert.False(t, ref.Release())
	assert.Equal(t, 1, s.Count())
	assert.True(t, second.Release())
	assert.Zero(t, s.Count())

	_, ok = second.Retain()
	assert.False(t, ok)
}

func TestZeroRef(t *testing.T) {
	var ref Ref
	_, ok := ref.Get()
	assert.False(t, ok)
	assert.False(t, ref.Release())
	assert.True(t, ref.Handle().IsZero())
}

func TestRenderDrawsLiveObjectsAndPrunes(t *testing.T) {
	s, dev := newTestScene(WithMainCamera(camera.NewCamera()))
	a := s.Add(drawable())
	b := s.Add(drawable())
	s.Add(drawable())

	stats, err := s.Render(renderer.DefaultClearOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Draws)

	b.Release()
	dev.Reset()
	stats, err = s.Render(renderer.DefaultClearOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Draws)
	assert.Equal(t, 2, dev.Count("DrawElements"))
	// already pruned by Render
	assert.Zero(t, s.Prune())

	_, ok := a.Get()
	assert.True(t, ok)
}

func TestRenderWithoutMainCameraOnlyClears(t *testing.T) {
	s, dev := newTestScene()
	s.Add(drawable())

	stats, err := s.Render(renderer.DefaultClearOptions())
	require.NoError(t, err)
	assert.Zero(t, stats.Draws)
	assert.Zero(t, dev.Count("DrawElements"))
	assert.Equal(t, 1, dev.Count("Clear"))
}

func TestRenderPassUsesGivenCamera(t *testing.T) {
	s, _ := newTestScene()
	s.Add(drawable())

	stats, err := s.RenderPass(camera.NewCamera(), renderer.ClearOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Draws)
}

func TestClearExpiresHeldRefs(t *testing.T) {
	s, _ := newTestScene(WithObjects(drawable(), drawable()))
	ref := s.Add(drawable())
	require.Equal(t, 3, s.Count())

	s.Clear()
	assert.Zero(t, s.Count())
	_, ok := ref.Get()
	assert.False(t, ok)
	assert.False(t, ref.Release())
}

func TestTickRunsEnabledBehaviours(t *testing.T) {
	s, _ := newTestScene(WithComputeWorkers(2))
	var ran atomic.Int32
	behaviour := func(obj game_object.GameObject, dt float32) {
		ran.Add(1)
		obj.SetPosition(dt, 0, 0)
	}
	var objs []game_object.GameObject
	for i := 0; i < 5; i++ {
		obj := game_object.NewGameObject(game_object.WithBehaviour(behaviour))
		objs = append(objs, obj)
		s.Add(obj)
	}
	objs[4].SetEnabled(false)

	s.Tick(0.25)

	assert.Equal(t, int32(4), ran.Load())
	for _, obj := range objs[:4] {
		assert.Equal(t, float32(0.25), obj.Position().X())
		// borrow was returned
		assert.NoError(t, obj.TryBorrow())
		obj.Return()
	}
	assert.Zero(t, objs[4].Position().X())
}
