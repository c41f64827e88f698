// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"github.com/outpost3d/engine/math/lin"
	"github.com/outpost3d/engine/scene"
)

// Camera tracks the location and orientation of a viewpoint, an
// associated projection, and derives the view matrix and frustum the
// partitioner and render-queue builder need each frame. Grounded on
// gazed-vu's camera.go (a Pov plus separate view/projection matrices),
// widened to sit on a scene.Node instead of the removed pov/viewTransform
// machinery so a camera is just another scene entity.
type Camera struct {
	Node *scene.Node

	up float64 // up/down tilt angle in degrees, clamped by callers.

	view lin.M4
	proj lin.M4
}

// NewCamera returns a camera attached to node, looking down +Z with an
// identity projection until SetPerspective/SetOrthographic is called.
func NewCamera(node *scene.Node) *Camera {
	c := &Camera{Node: node, view: *lin.M4I, proj: *lin.M4I}
	return c
}

// SetPerspective assigns a 3D perspective projection. fov is vertical
// field of view in degrees.
func (c *Camera) SetPerspective(fov, aspect, near, far float64) {
	c.proj.Persp(fov, aspect, near, far)
}

// SetOrthographic assigns a 2D orthographic projection.
func (c *Camera) SetOrthographic(left, right, bottom, top, near, far float64) {
	c.proj.Ortho(left, right, bottom, top, near, far)
}

// Projection returns the camera's current projection matrix.
func (c *Camera) Projection() lin.M4 { return c.proj }

// View returns the inverse of the camera node's world transform: moving
// the camera forward is equivalent to moving the world back, the
// view-transform convention gazed-vu's vp() used.
func (c *Camera) View() lin.M4 {
	world := c.Node.WorldTransform()
	t := c.Node.LocalTransform()
	rot := t.Rotation
	inv := lin.Q{}
	inv.Inv(&rot)
	var v lin.M4
	v.SetQ(&inv)
	loc := world.GetLoc()
	v.TranslateTM(-loc.X, -loc.Y, -loc.Z)
	return v
}

// Tilt returns, and SetTilt assigns, the camera's up/down pitch in
// degrees, tracked separately from the node's own rotation so an FPS
// camera can clamp it independently (gazed-vu's camera.up field).
func (c *Camera) Tilt() float64 { return c.up }
func (c *Camera) SetTilt(up float64) {
	c.up = up
}

// Frustum builds the 6-plane view volume for the current node pose and
// projection parameters, the shape the partitioner tests octree nodes
// against each frame.
func (c *Camera) Frustum(fovYDegrees, aspect, near, far float64) *lin.Frustum {
	world := c.Node.WorldTransform()
	loc := world.GetLoc()
	forward := world.GetForward()
	up := world.GetUp()
	return lin.NewFrustum(loc, forward, up, fovYDegrees, aspect, near, far)
}

// Distance returns the squared distance from the camera to a world point,
// used by the render-queue builder's depth sort as a cheap alternative to
// a full view-space transform when only relative order matters.
func (c *Camera) Distance(px, py, pz float64) float64 {
	world := c.Node.WorldTransform()
	loc := world.GetLoc()
	dx, dy, dz := px-loc.X, py-loc.Y, pz-loc.Z
	return dx*dx + dy*dy + dz*dz
}
