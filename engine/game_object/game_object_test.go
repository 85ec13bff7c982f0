package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-frame/common"
	"github.com/Carmen-Shannon/oxy-frame/engine/camera"
	"github.com/Carmen-Shannon/oxy-frame/engine/light"
	"github.com/Carmen-Shannon/oxy-frame/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameObjectDefaults(t *testing.T) {
	a := NewGameObject(WithName("a"))
	b := NewGameObject()

	assert.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.Enabled())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, a.Scale())
	assert.Equal(t, mgl32.Ident4(), a.WorldMatrix())
	assert.Empty(t, a.Components())
}

func TestTryBorrowContended(t *testing.T) {
	obj := NewGameObject()

	require.NoError(t, obj.TryBorrow())
	assert.ErrorIs(t, obj.TryBorrow(), ErrBorrowUnavailable)
	obj.Return()

	require.NoError(t, obj.TryBorrow())
	obj.Return()
}

func TestWorldMatrixIncludesParentAndScale(t *testing.T) {
	parent := NewGameObject(WithPosition(10, 0, 0))
	child := NewGameObject(WithParent(parent), WithPosition(0, 2, 0), WithScale(3, 3, 3))

	world := child.WorldMatrix()
	assert.True(t, common.Translation(world).ApproxEqual(mgl32.Vec3{10, 2, 0}))
	assert.InDelta(t, 3, world.Col(0).Vec3().Len(), 1e-6)

	parent.SetPosition(0, 0, 0)
	assert.True(t, common.Translation(child.WorldMatrix()).ApproxEqual(mgl32.Vec3{0, 2, 0}))
}

func TestSetParentRejectsCycle(t *testing.T) {
	a := NewGameObject()
	b := NewGameObject(WithParent(a))
	assert.Panics(t, func() { a.SetParent(b) })
}

func TestComponentSlotsTrackAttachmentOrder(t *testing.T) {
	obj := NewGameObject(
		WithLight(light.NewLight(light.LightTypePoint)),
		WithModel(model.NewModel()),
	)
	assert.Equal(t, []ComponentKind{ComponentLight, ComponentMesh}, obj.Components())

	obj.SetCamera(camera.NewCamera())
	obj.SetLight(nil)
	assert.Equal(t, []ComponentKind{ComponentMesh, ComponentCamera}, obj.Components())
	assert.Nil(t, obj.Light())
	assert.NotNil(t, obj.Camera())
}

func TestTickSpinsAndRunsBehaviour(t *testing.T) {
	calls := 0
	obj := NewGameObject(
		WithRotationSpeed(0, 2, 0),
		WithBehaviour(func(o GameObject, dt float32) {
			calls++
			p := o.Position()
			o.SetPosition(p.X()+dt, 0, 0)
		}),
	)

	obj.Borrow()
	obj.Tick(0.5)
	obj.Return()

	assert.Equal(t, 1, calls)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, obj.Rotation())
	assert.Equal(t, mgl32.Vec3{0.5, 0, 0}, obj.Position())
}
