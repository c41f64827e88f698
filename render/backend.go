package render

import "github.com/outpost3d/engine/math/lin"

// Backend is the minimal capability surface a concrete graphics API
// (OpenGL, Vulkan, a software rasterizer, a test double) must expose
// for a Visitor to drive it. Grounded on gazed-vu's Renderer interface
// (render/render.go) but narrowed to the GPU-verb level the Visitor
// actually issues per packet, rather than gazed-vu's higher-level
// "bind a Model and draw it" shape — the Visitor itself now owns the
// decision of what state changes, so the backend need only apply
// exactly the calls it is told to.
type Backend interface {
	// SetState applies a pass's fixed-function and material state.
	// Called only when the visitor determines the incoming pass
	// differs from the previously bound one.
	SetState(pass *Pass)

	// BindMesh uploads (if dirty) and binds a mesh's vertex/index
	// buffers for the next draw call.
	BindMesh(mesh *Mesh)

	// BindTexture binds ref to the given texture unit. Unit numbering
	// mirrors Pass's texture-unit bitmask (diffuse=0, light=1,
	// normal=2, specular=3).
	BindTexture(unit uint32, ref TextureRef)

	// EnableLight uploads a light's view-space state into slot.
	EnableLight(slot int, light Light)

	// DisableLight turns slot off, leaving its prior contents
	// meaningless until the slot is next enabled.
	DisableLight(slot int)

	// SetTransform uploads the model/view/projection matrices for the
	// packet about to be drawn.
	SetTransform(world, view, proj *lin.M4)

	// DrawElements issues an indexed draw of the bound mesh, replaying
	// count times if the packet is instanced.
	DrawElements(indexCount int, instanceCount uint32)

	// DrawArrays issues a non-indexed draw of the bound mesh's
	// vertex stream, for point/particle meshes with no index buffer.
	DrawArrays(vertexCount int, instanceCount uint32)
}
