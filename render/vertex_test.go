package render

import "testing"

func TestHashPositionCollidesWithinHalfCentiUnit(t *testing.T) {
	a := HashPosition(1.000, 2.000, 3.000)
	b := HashPosition(1.004, 1.996, 3.004)
	if a != b {
		t.Fatalf("expected positions within 0.005 to collide, got %v != %v", a, b)
	}
}

func TestHashPositionDistinguishesAcrossQuantizationStep(t *testing.T) {
	a := HashPosition(1.000, 2.000, 3.000)
	b := HashPosition(1.020, 2.000, 3.000)
	if a == b {
		t.Fatalf("expected positions 0.02 apart to land in different buckets, got equal hashes %v", a)
	}
}

func TestMeshDedupMergesCollidingPositionsAndRemapsIndices(t *testing.T) {
	m := NewMesh("quad")
	positions := NewVertexData(VertexSpec{Attribute: Position, Span: 3})
	positions.SetFloats([]float32{
		0, 0, 0,
		1, 0, 0,
		1.004, 0, 0.004, // collides with vertex 1 within the 0.005 tolerance
		0, 1, 0,
	})
	m.Streams[Position] = positions
	m.Indices = NewIndexData(Static)
	m.Indices.Set([]uint16{0, 1, 3, 1, 2, 3})

	m.Dedup()

	if got := positions.Len(); got != 3 {
		t.Fatalf("expected 3 distinct positions after dedup, got %d", got)
	}
	for _, idx := range m.Indices.Indices {
		if int(idx) >= positions.Len() {
			t.Fatalf("index %d out of range after dedup remap (%d positions)", idx, positions.Len())
		}
	}
	// original index value 2 named the colliding duplicate vertex; it must
	// remap onto the same kept vertex as original index value 1.
	if m.Indices.Indices[4] != m.Indices.Indices[1] {
		t.Fatalf("expected the colliding vertex's index to remap onto the kept one, got indices %v", m.Indices.Indices)
	}
}
