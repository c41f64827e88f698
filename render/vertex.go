// Package render turns visible, lit entities into ordered draw calls.
// Grounded on gazed-vu's render/data.go (vertexData/faceData GPU buffer
// abstraction), render/pass.go (a Pass batches Packets and carries the
// scene's light uniforms), render/packet.go (a grow-and-reuse Packets
// slice so the per-frame queue never reallocates once warmed up), and
// material.go (the diffuse/ambient/specular/transparency surface
// description) — widened into the engine's material/pass model (depth,
// blend, cull, fog, texture-unit state) per the fuller PBR-adjacent
// pass description this engine exposes.
package render

import "github.com/outpost3d/engine/spatial"

// Usage hints how a buffer will be updated, matching gazed-vu's
// STATIC/DYNAMIC GPU usage flags.
type Usage uint8

const (
	Static Usage = iota
	Dynamic
)

// VertexAttribute identifies one interleaved or separate vertex stream:
// position, normal, UV, tangent, bone indices/weights.
type VertexAttribute uint8

const (
	Position VertexAttribute = iota
	Normal
	TexCoord0
	Tangent
	BoneIndices
	BoneWeights
	attributeCount
)

// PositionHash is a coarse, quantized hash of a vertex's position used
// to deduplicate shared vertices across adjoining faces before upload,
// a feature the original importer performed at load time but gazed-vu's
// render/data.go never implements (it trusts the loader's face/vertex
// lists as-is).
type PositionHash uint64

// HashPosition quantizes x, y, z to 0.01 units (two positions within 0.005
// of the same quantized bucket collide) and folds them into a single hash,
// reusing spatial.QuantizeHash's own rounding and hash-combining so
// position-based mesh dedup and node-center lookup share one tolerance
// notion. Level 0 selects QuantizeHash's base precision (100 units^-1,
// i.e. a 0.01 step); levels only matter for octree nodes deeper than 7,
// which vertex positions have no analogue for.
func HashPosition(x, y, z float64) PositionHash {
	return PositionHash(spatial.QuantizeHash(0, x, y, z))
}

// VertexSpec describes the layout of one vertex attribute stream:
// which shader location it binds to, how many floats per vertex, and
// whether byte data should be normalized to 0..1, matching
// NewVertexData's (lloc, span, usage, normalize) contract.
type VertexSpec struct {
	Attribute VertexAttribute
	Location  uint32
	Span      int32
	Usage     Usage
	Normalize bool
}

// VertexData holds one attribute stream's CPU-side buffer, uploaded to
// the backend lazily on first use and re-uploaded whenever Set is
// called again.
type VertexData struct {
	Spec   VertexSpec
	Floats []float32
	Bytes  []byte
	dirty  bool
	count  int
}

// NewVertexData returns an empty VertexData for the given spec.
func NewVertexData(spec VertexSpec) *VertexData {
	return &VertexData{Spec: spec}
}

// SetFloats replaces the buffer's contents and marks it dirty for
// re-upload.
func (vd *VertexData) SetFloats(data []float32) {
	vd.Floats = vd.Floats[:0]
	vd.Floats = append(vd.Floats, data...)
	if vd.Spec.Span > 0 {
		vd.count = len(vd.Floats) / int(vd.Spec.Span)
	}
	vd.dirty = true
}

// SetBytes replaces the buffer's contents and marks it dirty for
// re-upload.
func (vd *VertexData) SetBytes(data []byte) {
	vd.Bytes = vd.Bytes[:0]
	vd.Bytes = append(vd.Bytes, data...)
	if vd.Spec.Span > 0 {
		vd.count = len(vd.Bytes) / int(vd.Spec.Span)
	}
	vd.dirty = true
}

// Len returns the number of vertices currently held.
func (vd *VertexData) Len() int { return vd.count }

// Size returns the buffer's size in bytes.
func (vd *VertexData) Size() uint32 {
	if len(vd.Floats) > 0 {
		return uint32(len(vd.Floats)) * 4
	}
	return uint32(len(vd.Bytes))
}

// Dirty reports whether the buffer has unflushed changes.
func (vd *VertexData) Dirty() bool { return vd.dirty }

// ClearDirty is called by the backend once it has uploaded the buffer.
func (vd *VertexData) ClearDirty() { vd.dirty = false }

// IndexData holds the triangle winding order, matching faceData's
// uint16 index buffer.
type IndexData struct {
	Indices []uint16
	Usage   Usage
	dirty   bool
}

// NewIndexData returns an empty IndexData with the given usage.
func NewIndexData(usage Usage) *IndexData {
	return &IndexData{Usage: usage}
}

// Set replaces the index buffer's contents and marks it dirty.
func (id *IndexData) Set(indices []uint16) {
	id.Indices = id.Indices[:0]
	id.Indices = append(id.Indices, indices...)
	id.dirty = true
}

func (id *IndexData) Len() int        { return len(id.Indices) }
func (id *IndexData) Size() uint32    { return uint32(len(id.Indices)) * 2 }
func (id *IndexData) Dirty() bool     { return id.dirty }
func (id *IndexData) ClearDirty()     { id.dirty = false }

// Mesh groups the vertex streams and index buffer for one drawable
// shape, keyed by name the way gazed-vu's mesh.go asset does.
type Mesh struct {
	Name    string
	Streams map[VertexAttribute]*VertexData
	Indices *IndexData
	GPUID   uint32
}

// NewMesh returns an empty, unbound mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name, Streams: make(map[VertexAttribute]*VertexData)}
}

// Dedup merges vertices that hash to the same PositionHash, rewriting
// the index buffer to point at the deduplicated positions. Positions
// must already be populated; other streams are assumed to agree at
// matching positions (the common case for shared loader output) and
// are dropped for duplicate indices rather than averaged.
func (m *Mesh) Dedup() {
	positions := m.Streams[Position]
	if positions == nil || positions.Spec.Span != 3 {
		return
	}
	seen := make(map[PositionHash]uint16)
	remap := make([]uint16, positions.Len())
	var kept []float32
	var next uint16
	for i := 0; i < positions.Len(); i++ {
		x, y, z := positions.Floats[i*3], positions.Floats[i*3+1], positions.Floats[i*3+2]
		h := HashPosition(float64(x), float64(y), float64(z))
		if idx, ok := seen[h]; ok {
			remap[i] = idx
			continue
		}
		seen[h] = next
		remap[i] = next
		kept = append(kept, x, y, z)
		next++
	}
	positions.SetFloats(kept)
	if m.Indices != nil {
		for i, idx := range m.Indices.Indices {
			if int(idx) < len(remap) {
				m.Indices.Indices[i] = remap[idx]
			}
		}
		m.Indices.dirty = true
	}
}
