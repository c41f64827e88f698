// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package load

import (
	"strings"
	"testing"
)

const triangleObj = `o triangle
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0
vn 0.0 0.0 1.0
f 1//1 2//1 3//1
`

func TestObjTriangle(t *testing.T) {
	d := &MshData{}
	if err := Obj(strings.NewReader(triangleObj), d); err != nil {
		t.Fatalf("could not load triangle.obj: %s", err)
	}
	if d.Name != "triangle" {
		t.Errorf("expected name triangle, got %s", d.Name)
	}
	if len(d.V) != 9 || len(d.N) != 9 || len(d.F) != 3 {
		t.Errorf("improper sizes: V=%d N=%d F=%d", len(d.V), len(d.N), len(d.F))
	}
}

func TestObjEmptyIsError(t *testing.T) {
	d := &MshData{}
	if err := Obj(strings.NewReader("# no objects here\n"), d); err == nil {
		t.Error("expected an error loading a file with no objects")
	}
}
