package renderer

import (
	"weak"

	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/texture"
)

// MaxTextureUnits is the number of texture units the renderer hands out per pass.
const MaxTextureUnits = 8

type unitEntry struct {
	unit int
	tex  weak.Pointer[texture.Texture]
}

func (e unitEntry) expired() bool {
	t := e.tex.Value()
	return t == nil || !t.Alive()
}

// textureUnits assigns texture units to textures. Entries are kept in assignment order;
// the front is the oldest. When every unit is taken, an entry whose texture has expired
// is reused first, otherwise the oldest entry is evicted.
type textureUnits struct {
	entries []unitEntry
}

// assign returns the unit tex is bound to, binding it first on a miss.
//
// Parameters:
//   - tex: the texture to sample
//   - bind: binds tex to the given unit on the device
//
// Returns:
//   - int: the unit index
//   - error: the bind error; the allocator is left unchanged when bind fails
func (u *textureUnits) assign(tex *texture.Texture, bind func(unit int) error) (int, error) {
	for _, e := range u.entries {
		if !e.expired() && e.tex.Value() == tex {
			return e.unit, nil
		}
	}

	victim := -1
	unit := len(u.entries)
	if len(u.entries) >= MaxTextureUnits {
		victim = 0
		for i, e := range u.entries {
			if e.expired() {
				victim = i
				break
			}
		}
		unit = u.entries[victim].unit
	}

	if err := bind(unit); err != nil {
		return 0, err
	}

	if victim >= 0 {
		u.entries = append(u.entries[:victim], u.entries[victim+1:]...)
	}
	u.entries = append(u.entries, unitEntry{unit: unit, tex: weak.Make(tex)})
	return unit, nil
}

// bound returns the texture currently recorded on unit, or nil.
func (u *textureUnits) bound(unit int) *texture.Texture {
	for _, e := range u.entries {
		if e.unit == unit && !e.expired() {
			return e.tex.Value()
		}
	}
	return nil
}
