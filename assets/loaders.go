package assets

import (
	"fmt"
	"io"
	"strings"

	"github.com/outpost3d/engine/asset"
	"github.com/outpost3d/engine/load"
	"github.com/outpost3d/engine/render"
)

// loaders.go adapts the load package's format-specific readers
// (grounded on gazed-vu's per-extension load.Obj/Mtl/Png/Wav/Iqm/Fnt)
// onto asset.LoaderType/asset.Loader so asset.LoadFromFile can drive
// them, generalizing gazed-vu's hand-picked "obj means mesh, png means
// texture" dispatch that was baked directly into its resource loader
// into the registry's pluggable Supports/Hints matching.

// RegisterDefaults registers every loader type this package provides,
// in priority order, ending with BlobLoaderType so unrecognized paths
// still resolve to something rather than failing LoaderUnavailable.
func RegisterDefaults(r *asset.Registry) {
	r.Register(ObjLoaderType{})
	r.Register(MtlLoaderType{})
	r.Register(PngLoaderType{})
	r.Register(WavLoaderType{})
	r.Register(FntLoaderType{})
	r.Register(TtfLoaderType{})
	r.Register(IqmLoaderType{})
	r.Register(ParticleScriptLoaderType{})
	r.Register(BlobLoaderType{})
}

// hasSuffix reports whether path ends in any of exts, case sensitive
// to match the teacher's own extension checks.
func hasSuffix(path string, exts ...string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// --- Obj -> Mesh -------------------------------------------------------

type ObjLoaderType struct{}

func (ObjLoaderType) Supports(path string) bool { return hasSuffix(path, ".obj") }
func (ObjLoaderType) Name() string              { return "obj" }
func (ObjLoaderType) Hints() []string           { return []string{"mesh"} }

func (ObjLoaderType) Instantiate(path string, stream io.Reader) (asset.Loader, error) {
	data := &load.MshData{}
	if err := load.Obj(stream, data); err != nil {
		return nil, err
	}
	return &objLoader{data: data}, nil
}

type objLoader struct{ data *load.MshData }

func (l *objLoader) Into(target asset.Asset, options map[string]any) error {
	mesh, ok := target.(*Mesh)
	if !ok {
		return fmt.Errorf("assets: obj loader target is %T, want *Mesh", target)
	}
	d := l.data
	mesh.Data.Name = d.Name
	setFloatStream(mesh.Data, render.Position, 3, d.V)
	setFloatStream(mesh.Data, render.Normal, 3, d.N)
	if len(d.T) > 0 {
		setFloatStream(mesh.Data, render.TexCoord0, 2, d.T)
	}
	mesh.Data.Indices = render.NewIndexData(render.Static)
	mesh.Data.Indices.Set(d.F)
	return nil
}

func setFloatStream(mesh *render.Mesh, attr render.VertexAttribute, span int32, floats []float32) {
	vd := render.NewVertexData(render.VertexSpec{Attribute: attr, Span: span, Usage: render.Static})
	vd.SetFloats(floats)
	mesh.Streams[attr] = vd
}

// --- Mtl -> Material -----------------------------------------------------

type MtlLoaderType struct{}

func (MtlLoaderType) Supports(path string) bool { return hasSuffix(path, ".mtl") }
func (MtlLoaderType) Name() string              { return "mtl" }
func (MtlLoaderType) Hints() []string           { return []string{"material"} }

func (MtlLoaderType) Instantiate(path string, stream io.Reader) (asset.Loader, error) {
	data := &load.MtlData{}
	if err := load.Mtl(stream, data); err != nil {
		return nil, err
	}
	return &mtlLoader{data: data}, nil
}

type mtlLoader struct{ data *load.MtlData }

func (l *mtlLoader) Into(target asset.Asset, options map[string]any) error {
	mat, ok := target.(*Material)
	if !ok {
		return fmt.Errorf("assets: mtl loader target is %T, want *Material", target)
	}
	mat.ApplyMtl(l.data)
	return nil
}

// --- Png -> Texture --------------------------------------------------------

type PngLoaderType struct{}

func (PngLoaderType) Supports(path string) bool { return hasSuffix(path, ".png") }
func (PngLoaderType) Name() string              { return "png" }
func (PngLoaderType) Hints() []string           { return []string{"texture"} }

func (PngLoaderType) Instantiate(path string, stream io.Reader) (asset.Loader, error) {
	data := &load.ImgData{}
	if err := load.Png(stream, data); err != nil {
		return nil, err
	}
	return &pngLoader{data: data}, nil
}

type pngLoader struct{ data *load.ImgData }

func (l *pngLoader) Into(target asset.Asset, options map[string]any) error {
	tex, ok := target.(*Texture)
	if !ok {
		return fmt.Errorf("assets: png loader target is %T, want *Texture", target)
	}
	tex.Img = l.data.Img
	if repeat, ok := options["repeat"].(bool); ok {
		tex.Repeat = repeat
	}
	return nil
}

// --- Wav -> Sound ---------------------------------------------------------

type WavLoaderType struct{}

func (WavLoaderType) Supports(path string) bool { return hasSuffix(path, ".wav") }
func (WavLoaderType) Name() string              { return "wav" }
func (WavLoaderType) Hints() []string           { return []string{"sound"} }

func (WavLoaderType) Instantiate(path string, stream io.Reader) (asset.Loader, error) {
	data := &load.SndData{}
	if err := load.Wav(stream, data); err != nil {
		return nil, err
	}
	return &wavLoader{data: data}, nil
}

type wavLoader struct{ data *load.SndData }

func (l *wavLoader) Into(target asset.Asset, options map[string]any) error {
	snd, ok := target.(*Sound)
	if !ok {
		return fmt.Errorf("assets: wav loader target is %T, want *Sound", target)
	}
	snd.ApplyWav(l.data)
	return nil
}

// --- Fnt -> Font -----------------------------------------------------------

type FntLoaderType struct{}

func (FntLoaderType) Supports(path string) bool { return hasSuffix(path, ".fnt") }
func (FntLoaderType) Name() string              { return "fnt" }
func (FntLoaderType) Hints() []string           { return []string{"font"} }

func (FntLoaderType) Instantiate(path string, stream io.Reader) (asset.Loader, error) {
	data, err := load.Fnt(stream)
	if err != nil {
		return nil, err
	}
	return &fntLoader{data: data}, nil
}

type fntLoader struct{ data *load.FntData }

func (l *fntLoader) Into(target asset.Asset, options map[string]any) error {
	font, ok := target.(*Font)
	if !ok {
		return fmt.Errorf("assets: fnt loader target is %T, want *Font", target)
	}
	font.ApplyFnt(l.data)
	return nil
}

// --- Ttf -> Font -------------------------------------------------------

// TtfLoaderType rasterizes a truetype font at load time rather than
// reading a pre-baked atlas, so it needs the whole file in memory
// before it can run; Instantiate defers that work to Into so the
// "size" option (absent from LoaderType.Instantiate's signature) can
// select the point size.
type TtfLoaderType struct{}

func (TtfLoaderType) Supports(path string) bool { return hasSuffix(path, ".ttf") }
func (TtfLoaderType) Name() string              { return "ttf" }
func (TtfLoaderType) Hints() []string           { return []string{"truetype"} }

func (TtfLoaderType) Instantiate(path string, stream io.Reader) (asset.Loader, error) {
	raw, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	return &ttfLoader{raw: raw}, nil
}

type ttfLoader struct{ raw []byte }

func (l *ttfLoader) Into(target asset.Asset, options map[string]any) error {
	font, ok := target.(*Font)
	if !ok {
		return fmt.Errorf("assets: ttf loader target is %T, want *Font", target)
	}
	size := 24
	if s, ok := options["size"].(int); ok && s > 0 {
		size = s
	}
	atlas, err := load.Ttf(l.raw, size)
	if err != nil {
		return err
	}
	font.ApplyAtlas(atlas)
	return nil
}

// --- Iqm -> Mesh (skinned) -----------------------------------------------

type IqmLoaderType struct{}

func (IqmLoaderType) Supports(path string) bool { return hasSuffix(path, ".iqm") }
func (IqmLoaderType) Name() string              { return "iqm" }
func (IqmLoaderType) Hints() []string           { return []string{"model", "skinned-mesh"} }

func (IqmLoaderType) Instantiate(path string, stream io.Reader) (asset.Loader, error) {
	data := &load.ModData{}
	if err := load.Iqm(stream, data); err != nil {
		return nil, err
	}
	return &iqmLoader{data: data}, nil
}

type iqmLoader struct{ data *load.ModData }

func (l *iqmLoader) Into(target asset.Asset, options map[string]any) error {
	mesh, ok := target.(*Mesh)
	if !ok {
		return fmt.Errorf("assets: iqm loader target is %T, want *Mesh", target)
	}
	d := l.data
	setFloatStream(mesh.Data, render.Position, 3, d.V)
	setFloatStream(mesh.Data, render.Normal, 3, d.N)
	if len(d.T) > 0 {
		setFloatStream(mesh.Data, render.TexCoord0, 2, d.T)
	}
	if len(d.Blends) > 0 {
		vd := render.NewVertexData(render.VertexSpec{Attribute: render.BoneIndices, Span: 4, Usage: render.Static, Normalize: false})
		vd.SetBytes(d.Blends)
		mesh.Data.Streams[render.BoneIndices] = vd
	}
	if len(d.Weights) > 0 {
		vd := render.NewVertexData(render.VertexSpec{Attribute: render.BoneWeights, Span: 4, Usage: render.Static, Normalize: true})
		vd.SetBytes(d.Weights)
		mesh.Data.Streams[render.BoneWeights] = vd
	}
	mesh.Data.Indices = render.NewIndexData(render.Static)
	mesh.Data.Indices.Set(d.F)
	return nil
}

// --- raw bytes -> Blob ---------------------------------------------------

// BlobLoaderType is the registry's fallback for any path no other
// loader type claims: it copies the stream verbatim, matching the
// store's "something still gets loaded" expectation for arbitrary
// data files (level geometry, shader source) the engine itself does
// not interpret.
type BlobLoaderType struct{}

func (BlobLoaderType) Supports(path string) bool { return true }
func (BlobLoaderType) Name() string              { return "blob" }
func (BlobLoaderType) Hints() []string           { return []string{"raw"} }

func (BlobLoaderType) Instantiate(path string, stream io.Reader) (asset.Loader, error) {
	raw, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	return &blobLoader{raw: raw}, nil
}

type blobLoader struct{ raw []byte }

func (l *blobLoader) Into(target asset.Asset, options map[string]any) error {
	blob, ok := target.(*Blob)
	if !ok {
		return fmt.Errorf("assets: blob loader target is %T, want *Blob", target)
	}
	blob.Bytes = l.raw
	return nil
}

// --- YAML -> ParticleScript -------------------------------------------

type ParticleScriptLoaderType struct{}

func (ParticleScriptLoaderType) Supports(path string) bool { return hasSuffix(path, ".particles.yaml", ".particles.yml") }
func (ParticleScriptLoaderType) Name() string              { return "particlescript" }
func (ParticleScriptLoaderType) Hints() []string           { return []string{"particles"} }

func (ParticleScriptLoaderType) Instantiate(path string, stream io.Reader) (asset.Loader, error) {
	raw, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	return &particleScriptLoader{raw: raw}, nil
}

type particleScriptLoader struct{ raw []byte }

func (l *particleScriptLoader) Into(target asset.Asset, options map[string]any) error {
	script, ok := target.(*ParticleScript)
	if !ok {
		return fmt.Errorf("assets: particlescript loader target is %T, want *ParticleScript", target)
	}
	return script.ApplyYAML(l.raw)
}
