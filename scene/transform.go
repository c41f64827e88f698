// Package scene implements the parent/child transform tree every bounded
// entity in the engine hangs off of: a local transform per node, a cached
// world transform recomputed lazily on access, and the cycle-checked
// reparenting contract the spatial index and renderer both depend on.
//
// Grounded on gazed-vu's pov.go (translation+rotation "point of view") and
// ent.go (parent/child entity bookkeeping), widened with an explicit Scale
// component and the dirty-bit/signal machinery pov.go's callers previously
// handled ad hoc through the wider Ent/application plumbing.
package scene

import "github.com/outpost3d/engine/math/lin"

// Transform is a node's local translation, rotation, and scale, composed
// into a 4x4 world matrix on demand.
type Transform struct {
	Translation lin.V3
	Rotation    lin.Q
	Scale       lin.V3
}

// Identity returns the transform that leaves a point unchanged.
func Identity() Transform {
	return Transform{Scale: lin.V3{X: 1, Y: 1, Z: 1}, Rotation: lin.Q{W: 1}}
}

// Matrix composes t into a row-vector world matrix: scale, then rotate,
// then translate, matching gazed-vu's TranslateMT/ScaleSM composition
// idiom in math/lin/matrix.go.
func (t *Transform) Matrix() lin.M4 {
	var m lin.M4
	m.SetQ(&t.Rotation)
	m.ScaleSM(t.Scale.X, t.Scale.Y, t.Scale.Z)
	m.TranslateMT(t.Translation.X, t.Translation.Y, t.Translation.Z)
	return m
}
