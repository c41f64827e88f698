package idle

import (
	"testing"
	"time"
)

func TestAddOnceRunsExactlyOnceOnNextDrain(t *testing.T) {
	q := New(nil)
	calls := 0
	q.AddOnce(func(now time.Time) { calls++ })

	start := time.Now()
	q.Drain(start)
	q.Drain(start.Add(time.Second))

	if calls != 1 {
		t.Fatalf("expected AddOnce's task to run exactly once, got %d", calls)
	}
}

func TestAddRepeatStopsWhenCallbackReturnsFalse(t *testing.T) {
	q := New(nil)
	calls := 0
	start := time.Now()
	q.AddRepeat(time.Millisecond, start, func(now time.Time) bool {
		calls++
		return calls < 3
	})

	for i := 0; i < 5; i++ {
		q.Drain(start.Add(time.Duration(i) * time.Millisecond))
	}

	if calls != 3 {
		t.Fatalf("expected the repeating task to stop itself after 3 calls, got %d", calls)
	}
}

func TestAddRepeatHonorsInterval(t *testing.T) {
	q := New(nil)
	calls := 0
	start := time.Now()
	q.AddRepeat(10*time.Millisecond, start, func(now time.Time) bool {
		calls++
		return true
	})

	q.Drain(start)
	q.Drain(start.Add(5 * time.Millisecond)) // not due yet
	q.Drain(start.Add(11 * time.Millisecond))

	if calls != 2 {
		t.Fatalf("expected 2 calls (interval not yet elapsed at t+5ms), got %d", calls)
	}
}

func TestAddTimedRunsOnceAtOrAfterDeadline(t *testing.T) {
	q := New(nil)
	calls := 0
	start := time.Now()
	q.AddTimed(start.Add(10*time.Millisecond), func(now time.Time) { calls++ })

	q.Drain(start) // too early
	if calls != 0 {
		t.Fatalf("expected no call before the deadline, got %d", calls)
	}
	q.Drain(start.Add(10 * time.Millisecond))
	q.Drain(start.Add(20 * time.Millisecond)) // already fired, must not run again

	if calls != 1 {
		t.Fatalf("expected exactly 1 call at/after the deadline, got %d", calls)
	}
}

func TestAddOnceSyncBlocksUntilDrained(t *testing.T) {
	q := New(nil)
	done := make(chan struct{})

	go func() {
		q.AddOnceSync(func(now time.Time) {})
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("expected AddOnceSync to block until Drain runs it")
	case <-time.After(10 * time.Millisecond):
	}

	q.Drain(time.Now())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected AddOnceSync to unblock once Drain ran its task")
	}
}

func TestRepeatingTaskPanicRecoversAndKeepsRepeating(t *testing.T) {
	q := New(nil)
	calls := 0
	start := time.Now()
	q.AddRepeat(time.Millisecond, start, func(now time.Time) bool {
		calls++
		if calls == 1 {
			panic("boom")
		}
		return calls < 2
	})

	q.Drain(start)
	q.Drain(start.Add(time.Millisecond))

	if calls != 2 {
		t.Fatalf("expected the panicking call to be recovered and the task rescheduled, got %d calls", calls)
	}
}
