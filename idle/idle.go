// Package idle schedules deferred work onto the engine's main-thread
// update loop, the single place GPU binds and scene mutations are safe
// to perform. Grounded on gazed-vu's loader.go/frame.go goroutine
// pattern: background work (asset loads, in this engine) runs off the
// main goroutine and funnels its completion back over a channel the
// main loop drains once per frame (loader.go's loaded/binder channels),
// widened into a general-purpose queue so any subsystem — not just the
// asset loader — can hand work back to the main thread.
package idle

import (
	"log/slog"
	"sync"
	"time"
)

// Func is deferred work run on the draining goroutine (almost always
// the main/update thread). Panics are recovered and logged rather than
// propagated, matching the engine's cancellation policy of swallowing
// background-task failures instead of taking down the frame loop.
type Func func(now time.Time)

// RepeatFunc is a repeating task's callback. It returns whether the
// task should be rescheduled for its next interval; returning false
// removes it from the queue after this call, the "repeated-until-false"
// idle-task kind.
type RepeatFunc func(now time.Time) bool

type repeating struct {
	fn       RepeatFunc
	interval time.Duration
	next     time.Time
}

type timed struct {
	fn  Func
	at  time.Time
}

// Queue collects deferred work from any goroutine and runs it only when
// Drain is called, which callers are expected to do once per frame from
// the main/update goroutine.
type Queue struct {
	mu       sync.Mutex
	once     []Func
	repeated []*repeating
	at       []*timed
	log      *slog.Logger
}

// New returns an empty Queue. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{log: logger}
}

// AddOnce schedules fn to run on the next Drain call. Safe to call from
// any goroutine.
func (q *Queue) AddOnce(fn Func) {
	q.mu.Lock()
	q.once = append(q.once, fn)
	q.mu.Unlock()
}

// AddRepeat schedules fn to run on every Drain call spaced at least
// interval apart, starting on the next Drain on or after startAt, until
// fn returns false.
func (q *Queue) AddRepeat(interval time.Duration, startAt time.Time, fn RepeatFunc) {
	q.mu.Lock()
	q.repeated = append(q.repeated, &repeating{fn: fn, interval: interval, next: startAt})
	q.mu.Unlock()
}

// AddTimed schedules fn to run on the first Drain call at or after at.
func (q *Queue) AddTimed(at time.Time, fn Func) {
	q.mu.Lock()
	q.at = append(q.at, &timed{fn: fn, at: at})
	q.mu.Unlock()
}

// AddOnceSync schedules fn on the next Drain and blocks the calling
// goroutine until that Drain call has actually executed it, mirroring
// loader.go's bindData/reply-channel idiom for a background loader that
// must wait for a main-thread GPU bind before it can proceed.
func (q *Queue) AddOnceSync(fn Func) {
	done := make(chan struct{})
	q.AddOnce(func(now time.Time) {
		fn(now)
		close(done)
	})
	<-done
}

// Drain runs every due task against now. It must only be called from
// the goroutine that owns whatever resources the scheduled funcs touch
// (the main/update thread). A task's panic is recovered and logged;
// the remaining tasks still run. A repeating task that returns false is
// removed from the queue after this call.
func (q *Queue) Drain(now time.Time) {
	q.mu.Lock()
	once := q.once
	q.once = nil

	var dueRepeat []*repeating
	for _, r := range q.repeated {
		if !now.Before(r.next) {
			dueRepeat = append(dueRepeat, r)
		}
	}

	var dueTimed []*timed
	var keepTimed []*timed
	for _, t := range q.at {
		if !now.Before(t.at) {
			dueTimed = append(dueTimed, t)
		} else {
			keepTimed = append(keepTimed, t)
		}
	}
	q.at = keepTimed
	q.mu.Unlock()

	q.run(now, once...)
	for _, t := range dueTimed {
		q.run(now, t.fn)
	}

	stop := map[*repeating]bool{}
	for _, r := range dueRepeat {
		if q.runRepeat(now, r) {
			r.next = now.Add(r.interval)
		} else {
			stop[r] = true
		}
	}
	if len(stop) > 0 {
		q.mu.Lock()
		kept := q.repeated[:0:0]
		for _, r := range q.repeated {
			if !stop[r] {
				kept = append(kept, r)
			}
		}
		q.repeated = kept
		q.mu.Unlock()
	}
}

func (q *Queue) run(now time.Time, fns ...Func) {
	for _, fn := range fns {
		q.runOne(now, fn)
	}
}

func (q *Queue) runOne(now time.Time, fn Func) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Warn("idle: deferred task panicked", "recover", r)
		}
	}()
	fn(now)
}

// runRepeat runs a repeating task's callback, reporting whether it
// should be rescheduled. A panic is recovered and logged, and treated
// as "keep repeating" since a panic is not the task's own stop signal.
func (q *Queue) runRepeat(now time.Time, r *repeating) (cont bool) {
	defer func() {
		if rec := recover(); rec != nil {
			q.log.Warn("idle: repeating task panicked", "recover", rec)
			cont = true
		}
	}()
	return r.fn(now)
}

// Len reports the number of once-tasks currently queued, useful for
// tests and metrics.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.once)
}
