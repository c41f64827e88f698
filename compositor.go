// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import "sort"

// compositor.go rebuilds gazed-vu's scene.go (a Camera grouped with a
// set of parts) and layer.go (an off-screen render-to-texture target)
// as the single explicit pipeline description spec §2 asks for: an
// ordered list of (stage, camera, viewport, target, priority) entries
// a frame renders in order, instead of gazed-vu's implicit "scenes are
// rendered in the order their stage manager created them" behavior.

// Viewport is the pixel rectangle a Stage renders into, within its
// Target.
type Viewport struct {
	X, Y, W, H int32
}

// RenderTarget names where a Stage's draw calls land. The zero value
// is the default screen framebuffer, matching gazed-vu's layer.go
// framebuffer id 0 convention.
type RenderTarget struct {
	Name  string // "" means the default screen framebuffer.
	GPUID uint32 // framebuffer id; 0 for the default framebuffer.
}

// Screen is the default render target.
var Screen = RenderTarget{Name: "screen"}

// Stage is one entry in a Compositor's ordered render pipeline: which
// Camera supplies the view/projection, where on screen (or off-screen
// target) it draws, and at what priority relative to other stages.
// Grounded on gazed-vu's scene.go (one Camera per group of parts) and
// layer.go (a render target holding a captured texture), folded into
// one record instead of two separate types since a Stage's Target
// already carries layer.go's role.
type Stage struct {
	Name     string
	Camera   *Camera
	Viewport Viewport
	Target   RenderTarget
	Priority int

	// FOV/Near/Far parameterize the camera's frustum for this stage,
	// in degrees and world units. Zero FOV falls back to 60 degrees,
	// zero Far falls back to 1000 units, matching gazed-vu's own
	// camera.go default projection constants.
	FOV, Near, Far float64

	// Hidden mirrors gazed-vu's scene.go Visible/SetVisible, inverted so
	// a zero-value Stage literal defaults to visible the way scene.go's
	// constructor defaults s.visible to true.
	Hidden bool
}

// Compositor holds the ordered list of stages a frame renders,
// sorted lowest Priority first with ties broken by registration order.
type Compositor struct {
	stages []Stage
}

// NewCompositor returns an empty compositor.
func NewCompositor() *Compositor {
	return &Compositor{}
}

// AddStage inserts s, or replaces the existing stage sharing s.Name,
// then re-sorts by Priority.
func (c *Compositor) AddStage(s Stage) {
	for i := range c.stages {
		if c.stages[i].Name == s.Name {
			c.stages[i] = s
			c.resort()
			return
		}
	}
	c.stages = append(c.stages, s)
	c.resort()
}

// RemoveStage drops the stage named name, if present.
func (c *Compositor) RemoveStage(name string) {
	for i := range c.stages {
		if c.stages[i].Name == name {
			c.stages = append(c.stages[:i], c.stages[i+1:]...)
			return
		}
	}
}

// SetVisible toggles a registered stage's visibility without removing
// it from the pipeline, matching gazed-vu's scene.go SetVisible.
func (c *Compositor) SetVisible(name string, visible bool) {
	for i := range c.stages {
		if c.stages[i].Name == name {
			c.stages[i].Hidden = !visible
			return
		}
	}
}

// Stages returns the visible stages in render order. The returned
// slice is owned by the caller; mutating it does not affect c.
func (c *Compositor) Stages() []Stage {
	visible := make([]Stage, 0, len(c.stages))
	for _, s := range c.stages {
		if !s.Hidden {
			visible = append(visible, s)
		}
	}
	return visible
}

func (c *Compositor) resort() {
	sort.SliceStable(c.stages, func(i, j int) bool {
		return c.stages[i].Priority < c.stages[j].Priority
	})
}
