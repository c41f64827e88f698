// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

// pass.go widens gazed-vu's Pass (a reusable Packets batch plus scene
// uniform/light data, pass.go) and material.go's kd/ka/ks/tr surface
// description into the fuller per-object pipeline-state snapshot this
// engine's pass description specifies: each Pass now directly carries
// the fixed-function and material state gazed-vu split between
// material.go and its shader uniform map, so a multi-pass technique is
// simply an ordered slice of Pass values instead of one Pass plus a
// side-table of uniforms.

// DepthFunc mirrors the fixed-function depth test choices.
type DepthFunc uint8

const (
	DepthNever DepthFunc = iota
	DepthLess
	DepthLEqual
	DepthEqual
	DepthGEqual
	DepthGreater
	DepthAlways
)

// AlphaFunc mirrors the fixed-function alpha test's comparison modes,
// the same shape as DepthFunc: a fragment's alpha is compared against
// AlphaThreshold by this function, and fails (is discarded) when the
// comparison is false.
type AlphaFunc uint8

const (
	AlphaNever AlphaFunc = iota
	AlphaLess
	AlphaLEqual
	AlphaEqual
	AlphaGEqual
	AlphaGreater
	AlphaAlways
)

// BlendFunc selects a fixed blend equation.
type BlendFunc uint8

const (
	BlendNone BlendFunc = iota
	BlendAdd
	BlendAlpha
	BlendColor
	BlendModulate
	BlendOneMinusAlpha
)

// CullMode selects which winding gets discarded.
type CullMode uint8

const (
	CullNone CullMode = iota
	CullFront
	CullBack
	CullBoth
)

// ShadeModel selects flat or interpolated shading.
type ShadeModel uint8

const (
	ShadeFlat ShadeModel = iota
	ShadeSmooth
)

// PolygonMode selects how triangles are rasterized.
type PolygonMode uint8

const (
	PolygonFill PolygonMode = iota
	PolygonLine
	PolygonPoint
)

// ColorMaterial selects which material channels track the current
// vertex color instead of the pass's fixed value.
type ColorMaterial uint8

const (
	ColorMaterialNone ColorMaterial = iota
	ColorMaterialAmbient
	ColorMaterialDiffuse
	ColorMaterialAmbientAndDiffuse
)

// FogMode selects the distance-fog falloff curve.
type FogMode uint8

const (
	FogNone FogMode = iota
	FogLinear
	FogExp
	FogExp2
)

// RGBA is a float color with alpha, matching the newer assets.go rgba
// widened from material.go's alpha-less rgb.
type RGBA struct{ R, G, B, A float32 }

// TextureRef pairs a bound texture with its texture-matrix transform,
// for the diffuse/light/normal/specular map slots.
type TextureRef struct {
	TextureID uint32
	Matrix    [9]float32 // 3x3 texture matrix, row-major
	Enabled   bool
}

// IteratePerLight marks a pass that must be submitted once per visible
// light rather than once total, the render-queue builder's iteration
// tag.
type IteratePerLight bool

// Pass is an immutable snapshot of pipeline state applied before the
// queue's packets for that pass are submitted.
type Pass struct {
	Diffuse   RGBA
	Ambient   RGBA
	Specular  RGBA
	Emission  RGBA
	Shininess float32 // 0..128

	DepthTestEnabled  bool
	DepthWriteEnabled bool
	DepthFunc         DepthFunc

	AlphaFunc      AlphaFunc
	AlphaThreshold float32

	BlendFunc BlendFunc
	CullMode  CullMode

	ShadeModel    ShadeModel
	PolygonMode   PolygonMode
	PointSize     float32
	ColorMaterial ColorMaterial

	FogMode    FogMode
	FogColor   RGBA
	FogStart   float32
	FogEnd     float32
	FogDensity float32

	LightingEnabled bool
	TexturesEnabled uint32 // bitmask over texture units

	DiffuseMap  TextureRef
	LightMap    TextureRef
	NormalMap   TextureRef
	SpecularMap TextureRef

	IteratePerLight IteratePerLight

	// Packets are the reusable per-object draw records gathered for
	// this pass in a frame, grounded on packet.go's grow-and-reuse
	// slice so repeated frames do not reallocate once warmed up.
	Packets Packets
}

// NewPass returns a typical opaque, depth-tested, back-face-culled,
// lit pass.
func NewPass() Pass {
	return Pass{
		Diffuse:           RGBA{1, 1, 1, 1},
		Ambient:           RGBA{1, 1, 1, 1},
		Specular:          RGBA{1, 1, 1, 1},
		DepthTestEnabled:  true,
		DepthWriteEnabled: true,
		DepthFunc:         DepthLEqual,
		AlphaFunc:         AlphaAlways, // always passes: alpha test effectively off
		BlendFunc:         BlendNone,
		CullMode:          CullBack,
		ShadeModel:        ShadeSmooth,
		PolygonMode:       PolygonFill,
		LightingEnabled:   true,
	}
}

// IsTranslucent reports whether p needs back-to-front sorting instead
// of the opaque front-to-back order, per the render-queue builder's
// blend-class rule: opaque is "no blend, or ADD with no alpha".
func (p *Pass) IsTranslucent() bool {
	switch p.BlendFunc {
	case BlendNone:
		return false
	case BlendAdd:
		return p.Diffuse.A < 1
	default:
		return true
	}
}

// Reset clears a pass's per-frame packet list, keeping its allocated
// backing array, matching packet.go's Reset idiom.
func (p *Pass) Reset() {
	p.Packets = p.Packets[:0]
}

// Material is a non-empty, ordered list of passes iterated per object
// per frame, per the material/pass contract.
type Material []Pass
