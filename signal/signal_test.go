package signal

import "testing"

func TestConnectEmit(t *testing.T) {
	b := New[int]()
	got := 0
	b.Connect(func(v int) { got = v })
	b.Emit(42)
	if got != 42 {
		t.Fatalf("got %d want 42", got)
	}
}

func TestDisconnectStopsDelivery(t *testing.T) {
	b := New[int]()
	calls := 0
	conn := b.Connect(func(v int) { calls++ })
	b.Emit(1)
	conn.Disconnect()
	b.Emit(2)
	if calls != 1 {
		t.Fatalf("got %d calls, want 1", calls)
	}
}

func TestConnectDuringEmitDeferredToNextEmit(t *testing.T) {
	b := New[int]()
	var second int
	b.Connect(func(v int) {
		b.Connect(func(v int) { second = v })
	})
	b.Emit(1)
	if second != 0 {
		t.Fatalf("callback connected during Emit must not fire this round")
	}
	b.Emit(2)
	if second != 2 {
		t.Fatalf("got %d want 2", second)
	}
}

func TestDisconnectIdempotent(t *testing.T) {
	b := New[int]()
	conn := b.Connect(func(int) {})
	conn.Disconnect()
	conn.Disconnect() // must not panic
	if b.Len() != 0 {
		t.Fatalf("expected 0 connections")
	}
}
