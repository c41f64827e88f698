// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package load

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestPngLoad(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 255, A: 255})
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, src); err != nil {
		t.Fatalf("could not encode test fixture: %s", err)
	}

	d := &ImgData{}
	if err := Png(bytes.NewReader(buf.Bytes()), d); err != nil {
		t.Fatalf("could not load image file: %s", err)
	}
	bounds := d.Img.Bounds()
	if bounds.Dx() != 2 || bounds.Dy() != 2 {
		t.Errorf("expected a 2x2 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPngRejectsGarbage(t *testing.T) {
	d := &ImgData{}
	if err := Png(bytes.NewReader([]byte("not a png")), d); err == nil {
		t.Error("expected an error loading a non-png file")
	}
}
