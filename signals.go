// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"time"

	"github.com/outpost3d/engine/signal"
)

// signals.go composes signal.Bus[T] into the per-frame lifecycle
// observers the teacher's frame.go/eng.go never exposed (everything ran
// synchronously with no hook points). Grounded on simulant's
// idle_task_manager.{h,cpp} "weak reference" observer design note:
// integer-token connections into a slice rather than reflect-based
// events, the same shape signal.Bus already provides.

// FrameEvent carries the timing state every lifecycle signal emits.
type FrameEvent struct {
	Now time.Time
	Dt  time.Duration
}

// Signals groups one bus per phase of a frame, in the order a Frame
// actually fires them: FixedUpdate zero or more times, then Update, then
// LateUpdate, then Render, then PreSwap, then Swap. Shutdown fires once,
// outside the per-frame cycle.
type Signals struct {
	FixedUpdate *signal.Bus[FrameEvent]
	Update      *signal.Bus[FrameEvent]
	LateUpdate  *signal.Bus[FrameEvent]
	Render      *signal.Bus[FrameEvent]
	PreSwap     *signal.Bus[FrameEvent]
	Swap        *signal.Bus[FrameEvent]
	Shutdown    *signal.Bus[FrameEvent]
}

// NewSignals returns a Signals with every bus ready to Connect to.
func NewSignals() *Signals {
	return &Signals{
		FixedUpdate: signal.New[FrameEvent](),
		Update:      signal.New[FrameEvent](),
		LateUpdate:  signal.New[FrameEvent](),
		Render:      signal.New[FrameEvent](),
		PreSwap:     signal.New[FrameEvent](),
		Swap:        signal.New[FrameEvent](),
		Shutdown:    signal.New[FrameEvent](),
	}
}
