// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package load

import (
	"image"

	"github.com/outpost3d/engine/math/lin"
)

// MshData holds vertex data parsed from a model file. It is an
// intermediate format intended for populating render.Mesh streams, kept
// free of any asset or GPU-handle state so the same value can feed
// either a render.Mesh or a test assertion.
type MshData struct {
	Name string    // Data name from the source file.
	V    []float32 // Vertex positions.    Arranged as [][3]float32
	N    []float32 // Vertex normals.      Arranged as [][3]float32
	T    []float32 // Texture coordinates. Arranged as [][2]float32
	F    []uint16  // Triangle faces.      Arranged as [][3]uint16
}

// MtlData holds colour and alpha information parsed from a material
// file. It is an intermediate format intended for populating a
// render.Pass's ColorMaterial.
type MtlData struct {
	KaR, KaG, KaB float32 // Ambient colour.
	KdR, KdG, KdB float32 // Diffuse colour.
	KsR, KsG, KsB float32 // Specular colour.
	Alpha         float32 // Transparency.
	Ns            float32 // Specular exponent.
}

// ImgData wraps a decoded image, intended for populating a texture
// asset's pixel data.
type ImgData struct {
	Img image.Image
}

// SndAttributes describes the PCM layout of loaded audio data.
type SndAttributes struct {
	Channels   uint16
	Frequency  uint32
	DataSize   uint32
	SampleBits uint16
}

// SndData holds decoded PCM audio bytes plus the attributes needed to
// play them back, intended for populating a sound asset.
type SndData struct {
	Attrs *SndAttributes
	Data  []byte
}

// Movement names one animation clip within a skinned model: the frame
// range and playback rate an animation asset samples from.
type Movement struct {
	Name string
	F0   uint32 // first frame
	Fn   uint32 // number of frames
	Rate float32
}

// TexMap names the triangle range of a mesh that one named texture
// applies to, used for multi-material IQM models.
type TexMap struct {
	Name   string
	F0, Fn uint32 // first triangle, triangle count
}

// ModData holds a skinned mesh plus its bind pose and animation frames,
// parsed from an IQM file. It is an intermediate format intended for
// populating a render.Mesh with joint weights and an animation asset
// with Movements/Frames.
type ModData struct {
	V       []float32 // Vertex positions.        [][3]float32
	N       []float32 // Vertex normals.          [][3]float32
	T       []float32 // Texture coordinates.     [][2]float32
	X       []float32 // Vertex tangents.         [][4]float32
	Blends  []byte    // Joint indices per vertex [][4]byte
	Weights []byte    // Joint weights per vertex [][4]byte
	F       []uint16  // Triangle faces.          [][3]uint16
	TMap    []TexMap  // Per-submesh texture/triangle-range mapping.

	Joints    []int32    // Parent joint index per joint, -1 for roots.
	Movements []Movement // Animation clips.
	Frames    []*lin.M4  // Per-joint-per-frame transform, NumFrames*NumPoses long.
}

// Vertex/model-instance attribute identifiers, named the way
// shd.go's shader configuration maps them by name. Distinct from
// render.VertexAttribute: these index into a loaded model's raw
// Buffer slices before the render package's typed streams exist.
const (
	Vertexes = iota
	Texcoords
	Normals
	Tangents
	Colors
	Joints
	Weights

	InstanceLocus
	InstanceColors
	InstanceScales
)

// Glyph is one character's position and metrics within a FontAtlas
// image, matching the Fnt/Ttf loaders' shared per-character layout.
type Glyph struct {
	Char   rune
	X, Y   int // top-left position within the atlas image.
	W, H   int // glyph bitmap size.
	Xoff   int // horizontal bearing.
	Yoff   int // vertical bearing.
	Xadvance int // pen advance to the next glyph.
}

// AtlasImage is the raw pixel buffer backing a FontAtlas, kept
// separate from the *image.NRGBA so a loaded atlas can be handed to a
// GPU upload path without depending on the image package.
type AtlasImage struct {
	Pixels        []byte
	Width, Height uint32
	Opaque        bool
}

// FontAtlas holds a rasterized glyph sheet plus each glyph's position
// within it, the Ttf loader's output for building a font asset.
type FontAtlas struct {
	Glyphs []Glyph
	Img    AtlasImage
	NRGBA  *image.NRGBA
}
