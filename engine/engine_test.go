package engine

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-frame/engine/camera"
	"github.com/Carmen-Shannon/oxy-frame/engine/game_object"
	"github.com/Carmen-Shannon/oxy-frame/engine/gfx"
	"github.com/Carmen-Shannon/oxy-frame/engine/gfx/gfxtest"
	"github.com/Carmen-Shannon/oxy-frame/engine/loader"
	"github.com/Carmen-Shannon/oxy-frame/engine/model"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-frame/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingBackend struct{ next uint32 }

func (b *countingBackend) NewProgram(string, string) (uint32, error) {
	b.next++
	return b.next, nil
}

func (b *countingBackend) NewMesh(_ []float32, indices []uint32) (uint32, int32) {
	b.next++
	return b.next, int32(len(indices))
}

func (b *countingBackend) NewTexture([]byte, int, int) (uint32, error) {
	b.next++
	return b.next, nil
}

func cube(prog *shader.Program, mesh *buffer.MeshBuffer) game_object.GameObject {
	mat := material.NewMaterial(material.WithProgram(prog))
	return game_object.NewGameObject(
		game_object.WithModel(model.NewModel(model.WithSurface(mesh, mat))),
		game_object.WithPosition(0, 0, -2),
	)
}

func TestRenderFrameDrawsScenesInZOrder(t *testing.T) {
	dev := gfxtest.NewRecorder()
	r := renderer.NewRenderer(dev)
	mesh := buffer.NewMeshBuffer("cube", 1, 36)

	front := scene.NewScene("front", r, scene.WithZOrder(2), scene.WithMainCamera(camera.NewCamera()))
	front.Add(cube(shader.NewProgram("front", 20), mesh))
	back := scene.NewScene("back", r, scene.WithZOrder(1), scene.WithMainCamera(camera.NewCamera()))
	back.Add(cube(shader.NewProgram("back", 10), mesh))
	hidden := scene.NewScene("hidden", r, scene.WithActive(false), scene.WithMainCamera(camera.NewCamera()))
	hidden.Add(cube(shader.NewProgram("hidden", 30), mesh))

	var order []string
	e := NewEngine(WithScene(front), WithScene(back), WithScene(hidden))
	e.SetPreRenderCallback(func(float32) {
		order = append(order, "pre")
		assert.Empty(t, dev.Calls(), "pre-render runs before any drawing")
	})
	e.SetRenderCallback(func(float32) { order = append(order, "post") })

	stats, err := e.RenderFrame(0.016)
	require.NoError(t, err)
	assert.Equal(t, []string{"pre", "post"}, order)
	assert.Equal(t, 2, stats.Draws)

	draws := dev.Filter("DrawElements")
	require.Len(t, draws, 2)
	assert.Equal(t, uint32(10), draws[0].Args[1])
	assert.Equal(t, uint32(20), draws[1].Args[1])

	clears := dev.Filter("Clear")
	require.Len(t, clears, 2)
	assert.Equal(t, gfx.ClearColorBit|gfx.ClearDepthBit, clears[0].Args[0])
	assert.Equal(t, gfx.ClearDepthBit, clears[1].Args[0])
}

func TestRenderFrameUploadsBeforeDrawing(t *testing.T) {
	dev := gfxtest.NewRecorder()
	r := renderer.NewRenderer(dev)
	l := loader.NewLoader(&countingBackend{})
	prog := l.Program("lit", "vs", "fs")
	mesh := l.Mesh("cube", nil, []uint32{0, 1, 2})

	s := scene.NewScene("main", r, scene.WithMainCamera(camera.NewCamera()))
	s.Add(cube(prog, mesh))
	e := NewEngine(WithScene(s), WithLoader(l, 1))

	stats, err := e.RenderFrame(0)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, l.Pending())

	stats, err = e.RenderFrame(0)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Draws)
	assert.Zero(t, l.Pending())
}

func TestRenderFrameStopsOnBindFailure(t *testing.T) {
	dev := gfxtest.NewRecorder()
	r := renderer.NewRenderer(dev)
	prog := shader.NewProgram("gone", 5)
	s := scene.NewScene("main", r, scene.WithMainCamera(camera.NewCamera()))
	s.Add(cube(prog, buffer.NewMeshBuffer("cube", 1, 36)))
	prog.Release()
	prog.Release()

	after := scene.NewScene("after", r, scene.WithZOrder(1), scene.WithMainCamera(camera.NewCamera()))
	after.Add(cube(shader.NewProgram("ok", 6), buffer.NewMeshBuffer("cube", 1, 36)))

	e := NewEngine(WithScene(s), WithScene(after))
	_, err := e.RenderFrame(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, gfx.ErrBindFailure)
	assert.Contains(t, err.Error(), `scene "main"`)
	assert.Zero(t, dev.Count("DrawElements"))
}

func TestTickOnlyActiveScenes(t *testing.T) {
	r := renderer.NewRenderer(gfxtest.NewRecorder())
	var ticks []string
	mk := func(name string, active bool) scene.Scene {
		s := scene.NewScene(name, r, scene.WithActive(active), scene.WithComputeWorkers(1))
		s.Add(game_object.NewGameObject(game_object.WithBehaviour(func(game_object.GameObject, float32) {
			ticks = append(ticks, name)
		})))
		return s
	}
	e := NewEngine(WithScene(mk("on", true)), WithScene(mk("off", false)))
	callbacks := 0
	e.SetTickCallback(func(float32) { callbacks++ })

	e.Tick(0.1)
	assert.Equal(t, []string{"on"}, ticks)
	assert.Equal(t, 1, callbacks)
}

func TestScenesSortedAndRemovable(t *testing.T) {
	r := renderer.NewRenderer(gfxtest.NewRecorder())
	a := scene.NewScene("a", r, scene.WithZOrder(5))
	b := scene.NewScene("b", r)
	c := scene.NewScene("c", r)
	e := NewEngine()
	e.AddScene(a)
	e.AddScene(b)
	e.AddScene(c)

	names := func() []string {
		var out []string
		for _, s := range e.Scenes() {
			out = append(out, s.Name())
		}
		return out
	}
	assert.Equal(t, []string{"b", "c", "a"}, names())

	e.RemoveScene(b)
	assert.Equal(t, []string{"c", "a"}, names())
}

func TestQuitIsIdempotent(t *testing.T) {
	e := NewEngine()
	e.Quit()
	e.Quit()
	select {
	case <-e.Done():
	default:
		t.Fatal("Done not closed after Quit")
	}
}

func TestRunPanicsWithoutWindow(t *testing.T) {
	assert.Panics(t, func() { NewEngine().Run() })
}
