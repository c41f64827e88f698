package render

import "github.com/outpost3d/engine/math/lin"

// Light is a scene light in view space, ready for upload. Grounded on
// gazed-vu's light.go (a Pov-attached R/G/B color) and the standalone
// render/light.go prototype (position + color) in src/, widened with
// the attenuation and ambient/specular split the pass description's
// per-light state record requires.
type Light struct {
	// Position is in view space; W=0 marks a directional light, W=1 a
	// point light, per the light-application coordinate convention.
	Position lin.V4

	Ambient  RGBA
	Diffuse  RGBA
	Specular RGBA

	AttConst    float32
	AttLinear   float32
	AttQuadratic float32

	Enabled     bool
	initialized bool
}

// LightView is a Light paired with the entity id it came from, the
// shape the partitioner hands the render-queue builder once per
// visible renderable.
type LightView struct {
	EntityID uint64
	Light    Light
}

// LightSlots tracks up to MaxLights backend light-slot state so the
// visitor can skip redundant uploads, per the light-application
// skipping rule: "if a slot's new state equals its cached initialized
// state, issue no backend call."
const MaxLights = 4

type LightSlots struct {
	slots [MaxLights]Light
}

// Reconcile updates slot i if its state differs from wants, reporting
// whether a backend upload is actually needed.
func (s *LightSlots) Reconcile(i int, wants Light) (needsUpload bool) {
	if i < 0 || i >= MaxLights {
		return false
	}
	cur := s.slots[i]
	cur.initialized, wants.initialized = false, false
	if s.slots[i].initialized && cur == wants {
		return false
	}
	wants.initialized = true
	s.slots[i] = wants
	return true
}

// Disable marks slot i unused so the next differing Reconcile call
// re-enables it.
func (s *LightSlots) Disable(i int) {
	if i < 0 || i >= MaxLights {
		return
	}
	if !s.slots[i].initialized || s.slots[i].Enabled {
		s.slots[i] = Light{initialized: true, Enabled: false}
	}
}
