// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"time"

	"github.com/outpost3d/engine/audio"
	"github.com/outpost3d/engine/scene"
)

// AudioSource attaches a sound clip to a scene node and forwards its
// lifecycle to an audio.Audio driver, per §6's "the core owns
// per-scene-node AudioSource objects and forwards lifecycle calls."
// Unlike Actor/LightSource/ParticleSystem it is not one of the three
// octree-tracked entity families — sound does not participate in
// frustum culling — so it carries no spatial.EntityID.
type AudioSource struct {
	Node *scene.Node

	driver audio.Audio
	bytes  []byte
	flags  audio.Flags
	id     audio.SourceID
	playing bool
}

// NewAudioSource returns a source bound to node, ready to Play against
// driver. bytes/flags are handed to driver.PlaySource unchanged on
// every Play call, matching the teacher's BindSound-once/PlaySound-many
// split generalized to the streamed case.
func NewAudioSource(node *scene.Node, driver audio.Audio, bytes []byte, flags audio.Flags) *AudioSource {
	return &AudioSource{Node: node, driver: driver, bytes: bytes, flags: flags}
}

// Play starts (or restarts) playback, stopping any source this
// AudioSource already owns first.
func (a *AudioSource) Play() error {
	if a.playing {
		a.driver.StopSource(a.id)
	}
	id, err := a.driver.PlaySource(a.bytes, a.flags)
	if err != nil {
		a.playing = false
		return err
	}
	a.id = id
	a.playing = true
	return nil
}

// Stop halts playback. A no-op if not currently playing.
func (a *AudioSource) Stop() {
	if !a.playing {
		return
	}
	a.driver.StopSource(a.id)
	a.playing = false
}

// Update advances playback by dt, a no-op unless Play has been called.
// Frame.Tick calls this once per late-update for every live source the
// host registers, mirroring §5's audio-update-thread responsibility
// narrowed to the single-threaded core (the driver owns any real
// background audio thread; the core only forwards the tick).
func (a *AudioSource) Update(dt time.Duration) {
	if !a.playing {
		return
	}
	a.driver.UpdateSource(a.id, dt)
}

// Playing reports whether this source currently owns a driver-side id.
func (a *AudioSource) Playing() bool { return a.playing }
