package render

import (
	"testing"

	"github.com/outpost3d/engine/math/lin"
)

type recordingBackend struct {
	setStateCalls int
	bindMeshCalls int
	enableCalls   int
	disableCalls  int
	drawCalls     int
	lastPass      *Pass
}

func (b *recordingBackend) SetState(pass *Pass)                          { b.setStateCalls++; b.lastPass = pass }
func (b *recordingBackend) BindMesh(mesh *Mesh)                          { b.bindMeshCalls++ }
func (b *recordingBackend) BindTexture(unit uint32, ref TextureRef)      {}
func (b *recordingBackend) EnableLight(slot int, light Light)            { b.enableCalls++ }
func (b *recordingBackend) DisableLight(slot int)                        { b.disableCalls++ }
func (b *recordingBackend) SetTransform(world, view, proj *lin.M4)       {}
func (b *recordingBackend) DrawElements(indexCount int, instances uint32) { b.drawCalls++ }
func (b *recordingBackend) DrawArrays(vertexCount int, instances uint32)  { b.drawCalls++ }

func triangleMesh(name string) *Mesh {
	m := NewMesh(name)
	m.Streams[Position] = NewVertexData(VertexSpec{Attribute: Position, Span: 3})
	m.Streams[Position].SetFloats([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0})
	m.Indices = NewIndexData(Static)
	m.Indices.Set([]uint16{0, 1, 2})
	return m
}

func TestVisitorSkipsRedundantState(t *testing.T) {
	pass := NewPass()
	mesh := triangleMesh("tri")
	q := &Queue{Packets: Packets{
		{Pass: &pass, Mesh: mesh, PassKey: passIdentity(&pass)},
		{Pass: &pass, Mesh: mesh, PassKey: passIdentity(&pass)},
	}}

	backend := &recordingBackend{}
	v := NewVisitor(backend)
	view, proj := lin.M4I, lin.M4I
	v.Visit(q, view, proj)

	if backend.setStateCalls != 1 {
		t.Errorf("expected 1 SetState call for two packets sharing a pass, got %d", backend.setStateCalls)
	}
	if backend.bindMeshCalls != 1 {
		t.Errorf("expected 1 BindMesh call for two packets sharing a mesh, got %d", backend.bindMeshCalls)
	}
	if backend.drawCalls != 2 {
		t.Errorf("expected a draw call per packet, got %d", backend.drawCalls)
	}
}

func TestVisitorAppliesWholePassIncludingAlphaFunc(t *testing.T) {
	pass := NewPass()
	pass.AlphaFunc = AlphaGEqual
	pass.AlphaThreshold = 0.5
	mesh := triangleMesh("tri")
	q := &Queue{Packets: Packets{
		{Pass: &pass, Mesh: mesh, PassKey: passIdentity(&pass)},
	}}

	backend := &recordingBackend{}
	v := NewVisitor(backend)
	v.Visit(q, lin.M4I, lin.M4I)

	if backend.lastPass == nil || backend.lastPass.AlphaFunc != AlphaGEqual {
		t.Fatalf("expected SetState to receive the pass's AlphaFunc, got %+v", backend.lastPass)
	}
	if backend.lastPass.AlphaThreshold != 0.5 {
		t.Fatalf("expected SetState to receive the pass's AlphaThreshold, got %v", backend.lastPass.AlphaThreshold)
	}
}

func TestVisitorReconcilesLights(t *testing.T) {
	pass := NewPass()
	mesh := triangleMesh("tri")
	light := Light{Enabled: true, Diffuse: RGBA{R: 1, G: 1, B: 1, A: 1}}
	q := &Queue{Packets: Packets{
		{Pass: &pass, Mesh: mesh, PassKey: passIdentity(&pass), Lights: []LightView{{Light: light}}},
		{Pass: &pass, Mesh: mesh, PassKey: passIdentity(&pass)},
	}}

	backend := &recordingBackend{}
	v := NewVisitor(backend)
	v.Visit(q, lin.M4I, lin.M4I)

	if backend.enableCalls != 1 {
		t.Errorf("expected 1 EnableLight call, got %d", backend.enableCalls)
	}
	if backend.disableCalls != 1 {
		t.Errorf("expected the second packet to disable the now-unused light slot, got %d", backend.disableCalls)
	}
}
