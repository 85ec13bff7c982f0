package light

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-frame/engine/gfx/gfxtest"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDirectional(t *testing.T) {
	p := DefaultDirectional()
	assert.Equal(t, LightTypeDirectional, p.Type)
	assert.InDelta(t, 1.0, p.Direction.Len(), 1e-6)
	assert.True(t, p.Direction.ApproxEqual(mgl32.Vec3{0.5, -1, 1}.Mul(1/1.5)))
	assert.Equal(t, mgl32.Vec3{0.2, 0.2, 0.2}, p.Ambient)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, p.Diffuse)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, p.Specular)
}

func TestPointParamsOffsetByOrigin(t *testing.T) {
	l := NewLight(LightTypePoint, WithPosition(0, 1, 0), WithAttenuation(1, 0.5, 0.25))
	p := l.Params(mgl32.Vec3{2, 0, 0})
	assert.Equal(t, mgl32.Vec3{2, 1, 0}, p.Position)
	assert.Equal(t, float32(0.25), p.Quadratic)

	sun := NewLight(LightTypeDirectional, WithPosition(5, 5, 5))
	assert.Equal(t, mgl32.Vec3{}, sun.Params(mgl32.Vec3{1, 1, 1}).Position)
}

func TestSetDirectionNormalizes(t *testing.T) {
	l := NewLight(LightTypeDirectional)
	l.SetDirection(0, 0, 10)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, l.Params(mgl32.Vec3{}).Direction)

	l.SetDirection(0, 0, 0)
	assert.Equal(t, mgl32.Vec3{}, l.Params(mgl32.Vec3{}).Direction)
}

func TestParamsBindUniformNames(t *testing.T) {
	dev := gfxtest.NewRecorder()
	prog := shader.NewProgram("lit", 1)

	DefaultDirectional().Bind("uDirectionalLight", prog)
	NewLight(LightTypePoint, WithDiffuse(1, 0, 0)).Params(mgl32.Vec3{}).Bind("uPointLights[0]", prog)
	prog.Commit(dev)

	for _, name := range []string{
		"uDirectionalLight.direction", "uDirectionalLight.ambient",
		"uPointLights[0].position", "uPointLights[0].constant", "uPointLights[0].linear",
		"uPointLights[0].quadratic", "uPointLights[0].specular",
	} {
		_, ok := dev.Uniform(1, name)
		assert.True(t, ok, name)
	}
	diffuse, ok := dev.Uniform(1, "uPointLights[0].diffuse")
	require.True(t, ok)
	assert.Equal(t, [3]float32{1, 0, 0}, diffuse)

	_, ok = dev.Uniform(1, "uDirectionalLight.position")
	assert.False(t, ok)
}

func TestDisabledLight(t *testing.T) {
	l := NewLight(LightTypePoint, WithEnabled(false))
	assert.False(t, l.Enabled())
	l.SetEnabled(true)
	assert.True(t, l.Enabled())
}
