// Copyright © 2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/math/lin"
	"github.com/outpost3d/engine/scene"
)

func TestCameraView(t *testing.T) {
	pool := ids.NewPool()
	node := scene.New(pool, "cam")
	cam := NewCamera(node)
	cam.SetPerspective(60, 16.0/9.0, 0.1, 100)

	t0 := scene.Identity()
	t0.Translation = lin.V3{X: 0, Y: 0, Z: 10}
	node.SetLocalTransform(t0)

	view := cam.View()
	var loc lin.V4
	loc.MultvM(&lin.V4{X: 0, Y: 0, Z: 10, W: 1}, &view)
	if !lin.Aeq(loc.X, 0) || !lin.Aeq(loc.Y, 0) || !lin.Aeq(loc.Z, 0) {
		t.Errorf("camera view should put its own location at the origin, got %f %f %f", loc.X, loc.Y, loc.Z)
	}
}

func TestCameraFrustumClassifiesOrigin(t *testing.T) {
	pool := ids.NewPool()
	node := scene.New(pool, "cam")
	cam := NewCamera(node)

	t0 := scene.Identity()
	t0.Translation = lin.V3{X: 0, Y: 0, Z: -10}
	node.SetLocalTransform(t0)

	fr := cam.Frustum(60, 1, 0.1, 100)
	box := lin.AABB{Min: lin.V3{X: -1, Y: -1, Z: -1}, Max: lin.V3{X: 1, Y: 1, Z: 1}}
	if fr.Classify(&box) == lin.Outside {
		t.Error("box at the origin should be visible from a camera at z=-10 looking down +Z")
	}
}

func TestCameraDistance(t *testing.T) {
	pool := ids.NewPool()
	node := scene.New(pool, "cam")
	cam := NewCamera(node)
	got := cam.Distance(3, 4, 0)
	if !lin.Aeq(got, 25) {
		t.Errorf("expected squared distance 25, got %f", got)
	}
}
