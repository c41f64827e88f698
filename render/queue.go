package render

import (
	"sort"
	"unsafe"

	"github.com/outpost3d/engine/math/lin"
	"github.com/outpost3d/engine/spatial"
)

// Renderable is one visible entity handed to the queue builder by the
// partitioner, paired with the mesh/material it should draw.
type Renderable struct {
	ID             spatial.EntityID
	World          lin.M4
	Mesh           *Mesh
	Material       Material
	RenderPriority int32
	Lights         []LightView
}

// Queue is a stable, index-addressable sequence of packets built once
// per frame from a partitioner result, consumed exactly once by a
// Visitor, per the render-queue builder/visitor contract.
type Queue struct {
	Packets Packets
}

// NewQueue returns an empty, reusable Queue.
func NewQueue() *Queue { return &Queue{} }

// Build clears q and refills it from renderables, viewed from the
// camera's view matrix (used only to compute sort depth; the actual
// modelview multiply happens per-packet in the visitor).
//
// Ordering, primary to least:
//  1. RenderPriority (lower first).
//  2. Blend class: opaque before translucent.
//  3. Pass pointer identity (clusters equivalent state).
//  4. Depth: opaque front-to-back, translucent back-to-front.
func (q *Queue) Build(view *lin.M4, renderables []Renderable) {
	q.Packets = q.Packets[:0]
	for ri := range renderables {
		r := &renderables[ri]
		depth := viewSpaceDepth(view, &r.World)
		for pi := range r.Material {
			pass := &r.Material[pi]
			iterations := 1
			if bool(pass.IteratePerLight) && len(r.Lights) > 0 {
				iterations = len(r.Lights)
			}
			for it := 0; it < iterations; it++ {
				var packet *Packet
				q.Packets, packet = q.Packets.GetPacket()
				packet.EntityID = uint64(r.ID.Index)<<32 | uint64(r.ID.Generation)
				packet.World = r.World
				packet.Mesh = r.Mesh
				packet.Pass = pass
				packet.PassKey = passIdentity(pass)
				packet.RenderPriority = r.RenderPriority
				packet.Depth = depth
				if bool(pass.IteratePerLight) && it < len(r.Lights) {
					packet.Lights = append(packet.Lights, r.Lights[it])
				} else {
					packet.Lights = append(packet.Lights, r.Lights...)
				}
			}
		}
	}
	q.sort()
}

func passIdentity(p *Pass) uintptr {
	return uintptr(unsafe.Pointer(p))
}

func (q *Queue) sort() {
	packets := q.Packets
	sort.SliceStable(packets, func(i, j int) bool {
		a, b := &packets[i], &packets[j]
		if a.RenderPriority != b.RenderPriority {
			return a.RenderPriority < b.RenderPriority
		}
		aTranslucent, bTranslucent := a.Pass.IsTranslucent(), b.Pass.IsTranslucent()
		if aTranslucent != bTranslucent {
			return !aTranslucent // opaque first
		}
		if a.PassKey != b.PassKey {
			return a.PassKey < b.PassKey
		}
		if aTranslucent {
			return a.Depth > b.Depth // back-to-front
		}
		return a.Depth < b.Depth // front-to-back
	})
}

func viewSpaceDepth(view *lin.M4, world *lin.M4) float64 {
	var viewPos lin.M4
	viewPos.Mult(world, view)
	return viewPos.Wz
}
