// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"testing"
	"time"

	"github.com/outpost3d/engine/audio"
	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/math/lin"
	"github.com/outpost3d/engine/render"
	"github.com/outpost3d/engine/scene"
	"github.com/outpost3d/engine/spatial"
)

type fakeBackend struct {
	drawCalls int
}

func (b *fakeBackend) SetState(pass *render.Pass)                        {}
func (b *fakeBackend) BindMesh(mesh *render.Mesh)                        {}
func (b *fakeBackend) BindTexture(unit uint32, ref render.TextureRef)    {}
func (b *fakeBackend) EnableLight(slot int, light render.Light)          {}
func (b *fakeBackend) DisableLight(slot int)                             {}
func (b *fakeBackend) SetTransform(world, view, proj *lin.M4)            {}
func (b *fakeBackend) DrawElements(indexCount int, instances uint32)     { b.drawCalls++ }
func (b *fakeBackend) DrawArrays(vertexCount int, instances uint32)      { b.drawCalls++ }

func TestFrameTickRendersVisibleActor(t *testing.T) {
	pool := ids.NewPool()
	backend := &fakeBackend{}

	mesh := render.NewMesh("cube")
	mesh.Streams[render.Position] = render.NewVertexData(render.VertexSpec{
		Attribute: render.Position, Span: 3, Usage: render.Static,
	})
	mesh.Streams[render.Position].SetFloats([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0})

	actor := NewActor(pool, "cube", mesh, render.Material{render.NewPass()})
	frame := NewFrame(DefaultConfig(), backend, nil, func() []*Actor { return []*Actor{actor} })

	placed := scene.Identity()
	placed.Translation = lin.V3{X: 0, Y: 0, Z: 5}
	actor.Node.SetLocalTransform(placed)

	var bounds lin.AABB
	bounds.SetCentered(0, 0, 5, 1)
	actor.Track(frame.Tree, spatial.EntityID{Index: 1, Generation: 1}, bounds)

	camNode := scene.New(pool, "cam")
	camNode.SetLocalTransform(scene.Identity())
	cam := NewCamera(camNode)
	cam.SetPerspective(60, 1, 0.1, 1000)

	frame.Compositor.AddStage(Stage{Name: "main", Camera: cam, Target: Screen, Viewport: Viewport{W: 800, H: 600}})

	frame.Tick(time.Unix(0, 0), 16*time.Millisecond)

	if backend.drawCalls == 0 {
		t.Fatal("expected the tracked actor to reach a draw call")
	}
}

func TestFrameSignalsFireInOrder(t *testing.T) {
	backend := &fakeBackend{}
	frame := NewFrame(DefaultConfig(), backend, nil, func() []*Actor { return nil })
	frame.FixedStep = time.Millisecond

	var order []string
	frame.Signals.Update.Connect(func(FrameEvent) { order = append(order, "update") })
	frame.Signals.LateUpdate.Connect(func(FrameEvent) { order = append(order, "late_update") })
	frame.Signals.Render.Connect(func(FrameEvent) { order = append(order, "render") })
	frame.Signals.PreSwap.Connect(func(FrameEvent) { order = append(order, "pre_swap") })
	frame.Signals.Swap.Connect(func(FrameEvent) { order = append(order, "swap") })

	frame.Tick(time.Unix(0, 0), 16*time.Millisecond)

	want := []string{"update", "late_update", "render", "pre_swap", "swap"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestFrameShutdownEmitsSignal(t *testing.T) {
	backend := &fakeBackend{}
	frame := NewFrame(DefaultConfig(), backend, nil, func() []*Actor { return nil })
	fired := false
	frame.Signals.Shutdown.Connect(func(FrameEvent) { fired = true })
	frame.Shutdown(time.Unix(0, 0))
	if !fired {
		t.Fatal("expected Shutdown signal to fire")
	}
}

func TestFrameTickAdvancesAudioSources(t *testing.T) {
	pool := ids.NewPool()
	backend := &fakeBackend{}
	frame := NewFrame(DefaultConfig(), backend, nil, func() []*Actor { return nil })

	driver := &fakeAudio{}
	src := NewAudioSource(scene.New(pool, "boom"), driver, []byte("clip"), audio.OneShot)
	if err := src.Play(); err != nil {
		t.Fatalf("play: %v", err)
	}
	frame.SetAudioSources(func() []*AudioSource { return []*AudioSource{src} })

	frame.Tick(time.Unix(0, 0), 16*time.Millisecond)

	if len(driver.updated) != 1 {
		t.Fatalf("expected one audio update call per tick, got %v", driver.updated)
	}
}
