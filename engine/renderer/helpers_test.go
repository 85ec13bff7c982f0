package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-frame/engine/camera"
	"github.com/Carmen-Shannon/oxy-frame/engine/game_object"
	"github.com/Carmen-Shannon/oxy-frame/engine/light"
	"github.com/Carmen-Shannon/oxy-frame/engine/model"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/texture"
)

// objectList is an in-order Objects for tests.
type objectList struct {
	objs   []game_object.GameObject
	prunes int
}

func newObjectList(objs ...game_object.GameObject) *objectList {
	return &objectList{objs: objs}
}

func (l *objectList) Each(fn func(obj game_object.GameObject) bool) {
	for _, o := range l.objs {
		if !fn(o) {
			return
		}
	}
}

func (l *objectList) Prune() int {
	l.prunes++
	return 0
}

func testProgram(id uint32) *shader.Program {
	return shader.NewProgram(fmt.Sprintf("program-%d", id), id)
}

func testMesh(vao uint32) *buffer.MeshBuffer {
	return buffer.NewMeshBuffer(fmt.Sprintf("mesh-%d", vao), vao, 36)
}

func testTexture(id uint32) *texture.Texture {
	return texture.NewTexture(fmt.Sprintf("texture-%d", id), id)
}

func testMaterial(p *shader.Program, queue material.QueueTag, texs ...*texture.Texture) material.Material {
	opts := []material.MaterialBuilderOption{material.WithProgram(p), material.WithQueue(queue)}
	for i, t := range texs {
		opts = append(opts, material.WithTexture(fmt.Sprintf("uTexture%d", i), t))
	}
	return material.NewMaterial(opts...)
}

func meshObject(buf *buffer.MeshBuffer, mat material.Material, x, y, z float32) game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithPosition(x, y, z),
		game_object.WithModel(model.NewModel(model.WithSurface(buf, mat))),
	)
}

func lightObject(l light.Light, x, y, z float32) game_object.GameObject {
	return game_object.NewGameObject(game_object.WithPosition(x, y, z), game_object.WithLight(l))
}

// originCamera looks down -Z from the origin.
func originCamera(options ...camera.CameraBuilderOption) camera.Camera {
	opts := append([]camera.CameraBuilderOption{camera.WithEye(0, 0, 0), camera.WithTarget(0, 0, -1)}, options...)
	return camera.NewCamera(opts...)
}
