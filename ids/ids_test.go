package ids

import "testing"

func TestCreateValid(t *testing.T) {
	p := NewPool()
	a := p.Create()
	if !p.Valid(a) {
		t.Fatalf("expected freshly created id to be valid")
	}
	if a.IsNil() {
		t.Fatalf("expected non-nil id")
	}
}

func TestReleaseInvalidatesHandle(t *testing.T) {
	p := NewPool()
	a := p.Create()
	p.Release(a)
	if p.Valid(a) {
		t.Fatalf("expected released id to be invalid")
	}
}

func TestReuseBumpsGeneration(t *testing.T) {
	p := NewPool()
	a := p.Create()
	p.Release(a)
	b := p.Create()
	if b.Index != a.Index {
		t.Fatalf("expected slot reuse, got new index %d want %d", b.Index, a.Index)
	}
	if b.Generation == a.Generation {
		t.Fatalf("expected generation bump on reuse")
	}
	if p.Valid(a) {
		t.Fatalf("old handle must not validate after reuse")
	}
	if !p.Valid(b) {
		t.Fatalf("new handle must validate")
	}
}

func TestNilIsNeverValid(t *testing.T) {
	p := NewPool()
	if p.Valid(Nil) {
		t.Fatalf("nil id must never be valid on an empty pool")
	}
}
