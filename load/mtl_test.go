// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package load

import (
	"fmt"
	"strings"
	"testing"
)

const redMtl = `newmtl red
Ka 0.1 0.1 0.1
Kd 0.8 0.6 0.2
Ks 0.0 0.0 0.0
d 1.0
Ns 0.0
`

func TestMtlRed(t *testing.T) {
	d := &MtlData{}
	if err := Mtl(strings.NewReader(redMtl), d); err != nil {
		t.Fatalf("should be able to load a valid material: %s", err)
	}
	got := fmt.Sprintf("%2.1f %2.1f %2.1f", d.KdR, d.KdG, d.KdB)
	if want := "0.8 0.6 0.2"; got != want {
		t.Errorf("got %s want %s", got, want)
	}
}
