package assets

import (
	"github.com/outpost3d/engine/asset"
	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/load"
)

// Font is a rasterized glyph atlas plus per-character UV layout,
// grounded on gazed-vu's font.go (a loaded FntData mapping plus the
// backing texture) widened to also accept Ttf's generated atlases, so
// both a pre-baked .fnt/.png pair and an on-the-fly rasterized
// truetype font populate the same asset shape.
type Font struct {
	asset.Base
	Glyphs map[rune]load.Glyph
	Width  int
	Height int
	// Pixels is an 8-bit or RGBA atlas buffer depending on the source
	// loader (Fnt supplies only layout, pairing with a separate Texture
	// asset; Ttf supplies both layout and pixels).
	Pixels []byte
}

// NewFont returns an empty font asset awaiting a Loader.
func NewFont(id ids.ID, name string) *Font {
	return &Font{Base: asset.NewBase(id, name), Glyphs: make(map[rune]load.Glyph)}
}

// Glyph looks up a character's atlas layout, returning ok=false for
// characters the atlas never rasterized.
func (f *Font) Glyph(r rune) (load.Glyph, bool) {
	g, ok := f.Glyphs[r]
	return g, ok
}

// ApplyFnt populates Glyphs and dimensions from a parsed BMFont
// description; Pixels is left for a paired Texture asset to supply.
func (f *Font) ApplyFnt(d *load.FntData) {
	f.Width, f.Height = d.W, d.H
	f.Glyphs = make(map[rune]load.Glyph, len(d.Chars))
	for _, c := range d.Chars {
		f.Glyphs[c.Char] = load.Glyph{
			Char: c.Char, X: c.X, Y: c.Y, W: c.W, H: c.H,
			Xoff: c.Xo, Yoff: c.Yo, Xadvance: c.Xa,
		}
	}
}

// ApplyAtlas populates Glyphs, dimensions, and Pixels from a
// rasterized truetype atlas.
func (f *Font) ApplyAtlas(a *load.FontAtlas) {
	f.Width, f.Height = int(a.Img.Width), int(a.Img.Height)
	f.Pixels = a.Img.Pixels
	f.Glyphs = make(map[rune]load.Glyph, len(a.Glyphs))
	for _, g := range a.Glyphs {
		f.Glyphs[g.Char] = g
	}
}

// CloneFont deep-copies f's glyph map and pixel buffer under a fresh
// id.
func CloneFont(f *Font, newID ids.ID) *Font {
	clone := NewFont(newID, f.Name())
	clone.Width, clone.Height = f.Width, f.Height
	for r, g := range f.Glyphs {
		clone.Glyphs[r] = g
	}
	if f.Pixels != nil {
		clone.Pixels = append([]byte(nil), f.Pixels...)
	}
	return clone
}
