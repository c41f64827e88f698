package assets

import (
	"math"

	"github.com/outpost3d/engine/asset"
	"github.com/outpost3d/engine/ids"
	"gopkg.in/yaml.v3"
)

// Particle mirrors the engine root package's per-particle record
// (index, lifetime fraction, local-space position) so a ParticleScript
// can be sampled without this package importing the engine package
// that owns the live scene-graph-attached ParticleSystem.
type Particle struct {
	Index   float32
	Alive   float32
	X, Y, Z float64
}

// ParticleScriptConfig is the YAML-authorable tuning for a fountain-style
// effect: particles spawn on a ring of SpawnRadius around the origin,
// rise under gravity, and fade out over Lifetime seconds. Grounded on original_source/simulant's
// data-driven particle scripts, since gazed-vu's own particle.go only
// ships hand-written Go ParticleEffect closures with no file format.
type ParticleScriptConfig struct {
	Lifetime    float32 `yaml:"lifetime"`
	Gravity     float32 `yaml:"gravity"`
	SpawnRadius float32 `yaml:"spawn_radius"`
	RiseSpeed   float32 `yaml:"rise_speed"`
}

// ParticleScript is a loaded, data-driven particle effect, grounded on
// gazed-vu's particle.go ParticleEffect contract (all particles in,
// survivors out) but authored as data instead of compiled Go.
type ParticleScript struct {
	asset.Base
	Config ParticleScriptConfig

	phase float64
}

// NewParticleScript returns a script asset with reasonable fountain
// defaults, awaiting a Loader to overwrite Config.
func NewParticleScript(id ids.ID, name string) *ParticleScript {
	return &ParticleScript{
		Base: asset.NewBase(id, name),
		Config: ParticleScriptConfig{
			Lifetime: 2, Gravity: 9.8, SpawnRadius: 0.5, RiseSpeed: 4,
		},
	}
}

// ApplyYAML decodes a ParticleScriptConfig document into the script.
func (ps *ParticleScript) ApplyYAML(data []byte) error {
	return yaml.Unmarshal(data, &ps.Config)
}

// Sample advances the script by dt and returns the particles still
// alive, recycling dead slots back to the spawn point the way
// gazed-vu's sample ParticleEffect closures do, deterministically
// phase-seeded instead of using math/rand so the same dt sequence
// always reproduces the same layout.
func (ps *ParticleScript) Sample(all []Particle, dt float64) []Particle {
	ps.phase += dt
	live := all[:0]
	cfg := ps.Config
	for i := range all {
		p := &all[i]
		p.Alive -= float32(dt) / cfg.Lifetime
		if p.Alive <= 0 {
			angle := ps.phase + float64(p.Index)
			p.Alive = 1
			p.X = math.Cos(angle) * float64(cfg.SpawnRadius)
			p.Z = math.Sin(angle) * float64(cfg.SpawnRadius)
			p.Y = 0
		}
		age := float64(1-p.Alive) * float64(cfg.Lifetime)
		p.Y = float64(cfg.RiseSpeed)*age - 0.5*float64(cfg.Gravity)*age*age
		live = append(live, *p)
	}
	return live
}

// CloneParticleScript copies a's tuning under a fresh id; phase is not
// carried over so a clone starts its own animation cycle.
func CloneParticleScript(a *ParticleScript, newID ids.ID) *ParticleScript {
	clone := NewParticleScript(newID, a.Name())
	clone.Config = a.Config
	return clone
}
