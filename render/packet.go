// Copyright © 2024 Galvanized Logic Inc.

package render

import "github.com/outpost3d/engine/math/lin"

// Packet holds everything the render-queue builder and visitor need to
// submit one (renderable, pass, iteration) record, generalized from
// gazed-vu's Packet (GPU refs + uniform byte blobs) into the
// engine's backend-agnostic shape: a world transform and mesh/pass
// reference the visitor turns into backend calls itself, rather than
// pre-serialized uniform bytes.
type Packet struct {
	EntityID uint64 // opaque entity tag, for debugging and sorting ties.
	World    lin.M4
	Mesh     *Mesh
	Pass     *Pass
	PassKey  uintptr // pass pointer identity, for the builder's clustering sort.

	Lights []LightView // pre-ranked, view-space lights for this renderable.

	IsInstanced   bool
	InstanceID    uint32
	InstanceCount uint32

	RenderPriority int32   // lower submits first.
	Depth          float64 // view-space depth, sign convention: larger is farther.
}

// Reset clears old draw data so the packet can be reused next frame.
func (p *Packet) Reset() {
	*p = Packet{Lights: p.Lights[:0]}
}

// Packets is a list of packets that is used to allocate render
// packets. Packets are intended to be reused each render loop, per
// gazed-vu's packet.go grow-and-reuse idiom.
type Packets []Packet

// GetPacket returns a render.Packet from Packets, growing or reusing
// previously allocated entries as needed.
func (p Packets) GetPacket() (Packets, *Packet) {
	size := len(p)
	switch {
	case size == cap(p):
		p = append(p, Packet{})
	case size < cap(p):
		p = p[:size+1]
		p[size].Reset()
	}
	return p, &p[size]
}
