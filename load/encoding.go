// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package load

import (
	"io"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// normalizeText wraps r so legacy Windows-1252 encoded export files
// (common from older DCC tools writing OBJ/MTL) decode to UTF-8 before
// the line-oriented parser ever sees them, generalizing the loaders
// from the plain-ASCII-only assumption Wavefront's own spec makes.
// Windows-1252's low 128 code points are ASCII-identical, so ordinary
// ASCII/UTF-8 input passes through unchanged.
func normalizeText(r io.Reader) io.Reader {
	return transform.NewReader(r, charmap.Windows1252.NewDecoder())
}
