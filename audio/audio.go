// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package audio provides access to 3D sound playback, kept as an
// external collaborator behind a capability interface, grounded on
// gazed-vu's audio.Audio/NoAudio shape but narrowed to the
// play/stop/update/shutdown lifecycle the core's AudioSource nodes
// actually drive.
package audio

import "time"

// SourceID identifies one playing or stopped sound source, returned
// by PlaySource and passed back to StopSource/UpdateSource.
type SourceID uint64

// Flags controls how PlaySource treats its bytes argument.
type Flags uint8

const (
	// OneShot plays bytes as a complete, already-decoded clip.
	OneShot Flags = iota
	// Streamed plays bytes as a ring-buffered PCM stream the caller
	// refills via UpdateSource.
	Streamed
)

// Audio drives the underlying sound layer. The core owns per-scene-node
// AudioSource objects and forwards their lifecycle to these four calls;
// it never reaches into driver internals.
type Audio interface {
	// PlaySource binds bytes to a new source and starts playback,
	// returning the id used to control it afterward.
	PlaySource(bytes []byte, flags Flags) (SourceID, error)
	// StopSource halts and releases id. Stopping an already-stopped or
	// unknown id is a no-op.
	StopSource(id SourceID)
	// UpdateSource advances id's playback state by dt, refilling a
	// Streamed source's buffer or reclaiming a finished OneShot's
	// resources.
	UpdateSource(id SourceID, dt time.Duration)
	// Shutdown releases every source and closes the audio layer.
	Shutdown()
}

// NoAudio is a mock Audio for hosts that run with sound disabled or
// whose audio layer failed to initialize, mirroring the teacher's
// NoAudio fallback.
type NoAudio struct{}

func (NoAudio) PlaySource(bytes []byte, flags Flags) (SourceID, error) { return 0, nil }
func (NoAudio) StopSource(id SourceID)                                 {}
func (NoAudio) UpdateSource(id SourceID, dt time.Duration)             {}
func (NoAudio) Shutdown()                                              {}
