// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package load

import (
	"strings"
	"testing"
)

const lucidiaFnt = `info face="lucidia" size=16
common lineHeight=18 base=14 scaleW=256 scaleH=256 pages=1 packed=0 alphaChnl=0 redChnl=0 greenChnl=0 blueChnl=0
page id=0 file="lucidia.png"
chars count=2
char id=65 x=0 y=0 width=10 height=12 xoffset=0 yoffset=2 xadvance=11 page=0 chnl=15
char id=66 x=10 y=0 width=9 height=12 xoffset=0 yoffset=2 xadvance=10 page=0 chnl=15
`

func TestFntLoad(t *testing.T) {
	d, err := Fnt(strings.NewReader(lucidiaFnt))
	if err != nil {
		t.Fatalf("could not load glyphs: %s", err)
	}
	if d.W != 256 || d.H != 256 || len(d.Chars) != 2 {
		t.Errorf("invalid font data: %d %d %d", d.W, d.H, len(d.Chars))
	}
	if d.Chars[0].Char != 'A' || d.Chars[1].Char != 'B' {
		t.Errorf("unexpected glyph characters: %q %q", d.Chars[0].Char, d.Chars[1].Char)
	}
}
