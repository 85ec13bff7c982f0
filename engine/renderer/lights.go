package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-frame/common"
	"github.com/Carmen-Shannon/oxy-frame/engine/game_object"
	"github.com/Carmen-Shannon/oxy-frame/engine/light"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/shader"
	"go.uber.org/zap"
)

// MaxPointLights is the number of point lights forwarded to shaders per pass.
const MaxPointLights = 4

var pointLightPrefixes = func() [MaxPointLights]string {
	var out [MaxPointLights]string
	for i := range out {
		out[i] = fmt.Sprintf("uPointLights[%d]", i)
	}
	return out
}()

// lightSet is the lighting selected for one pass.
type lightSet struct {
	directional light.Params
	points      []light.Params
}

// bind stages the light uniforms on program.
func (ls *lightSet) bind(program *shader.Program) {
	ls.directional.Bind("uDirectionalLight", program)
	for i, p := range ls.points {
		p.Bind(pointLightPrefixes[i], program)
	}
	program.SetInt("uNumPointLights", int32(len(ls.points)))
}

// gatherLights scans objs once for the first directional light and the first
// MaxPointLights point lights in discovery order. Objects whose borrow is held
// elsewhere are skipped. When no directional light is found the default one is used.
func gatherLights(objs Objects, stats *FrameStats, logger *zap.Logger) lightSet {
	var (
		ls             lightSet
		hasDirectional bool
	)
	objs.Each(func(obj game_object.GameObject) bool {
		if err := obj.TryBorrow(); err != nil {
			if errors.Is(err, game_object.ErrBorrowUnavailable) {
				stats.Contended++
				logger.Debug("light skipped, object borrowed", zap.Uint64("object", obj.ID()))
			}
			return true
		}
		defer obj.Return()

		if !obj.Enabled() {
			return true
		}
		l := obj.Light()
		if l == nil || !l.Enabled() {
			return true
		}
		switch l.Type() {
		case light.LightTypeDirectional:
			if !hasDirectional {
				ls.directional = l.Params(common.Translation(obj.WorldMatrix()))
				hasDirectional = true
			}
		case light.LightTypePoint:
			if len(ls.points) < MaxPointLights {
				ls.points = append(ls.points, l.Params(common.Translation(obj.WorldMatrix())))
			}
		}
		return true
	})
	if !hasDirectional {
		ls.directional = light.DefaultDirectional()
	}
	return ls
}
