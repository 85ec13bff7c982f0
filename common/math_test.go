package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestBuildModelMatrixTranslationAndScale(t *testing.T) {
	m := BuildModelMatrix(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{}, mgl32.Vec3{2, 2, 2})

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, Translation(m))
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 3, p.X(), 1e-6)
	assert.InDelta(t, 2, p.Y(), 1e-6)
}

func TestNormalMatrixOfUniformScaleIsInverseScale(t *testing.T) {
	m := mgl32.Scale3D(2, 2, 2)
	n := NormalMatrix(m)

	assert.InDelta(t, 0.5, n.At(0, 0), 1e-6)
	assert.InDelta(t, 0.5, n.At(1, 1), 1e-6)
	assert.InDelta(t, 0.5, n.At(2, 2), 1e-6)
}

func TestDistanceSq(t *testing.T) {
	assert.Equal(t, float32(9), DistanceSq(mgl32.Vec3{0, 3, 0}, mgl32.Vec3{}))
	assert.Equal(t, float32(0), DistanceSq(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}))
}

func TestRectPixels(t *testing.T) {
	x, y, w, h := Rect{}.Pixels(800, 600)
	assert.Equal(t, [4]int32{0, 0, 800, 600}, [4]int32{x, y, w, h})

	x, y, w, h = Rect{X: 0.5, Y: 0, W: 0.5, H: 0.5}.Pixels(800, 600)
	assert.Equal(t, [4]int32{400, 0, 400, 300}, [4]int32{x, y, w, h})
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 7, Coalesce(0, 7, 9))
	assert.Equal(t, "", Coalesce("", ""))
}
