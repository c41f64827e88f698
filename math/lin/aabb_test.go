// SPDX-FileCopyrightText : © 2014-2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package lin

import "testing"

func TestAABBCenterDimensions(t *testing.T) {
	a := NewAABB(-1, -2, -3, 3, 2, 1)
	cx, cy, cz := a.Center()
	if cx != 1 || cy != 0 || cz != -1 {
		t.Errorf("got center %v %v %v", cx, cy, cz)
	}
	dx, dy, dz := a.Dimensions()
	if dx != 4 || dy != 4 || dz != 4 {
		t.Errorf("got dimensions %v %v %v", dx, dy, dz)
	}
	if a.MaxDimension() != 4 {
		t.Errorf("got max dimension %v", a.MaxDimension())
	}
}

func TestAABBContainsPoint(t *testing.T) {
	a := NewAABB(0, 0, 0, 10, 10, 10)
	tests := []struct {
		x, y, z float64
		want    bool
	}{
		{5, 5, 5, true},
		{0, 0, 0, true},
		{10, 10, 10, true},
		{-1, 5, 5, false},
		{5, 11, 5, false},
	}
	for _, tt := range tests {
		if got := a.ContainsPoint(tt.x, tt.y, tt.z); got != tt.want {
			t.Errorf("ContainsPoint(%v,%v,%v) = %v, want %v", tt.x, tt.y, tt.z, got, tt.want)
		}
	}
}

func TestAABBContainsBox(t *testing.T) {
	outer := NewAABB(0, 0, 0, 10, 10, 10)
	inner := NewAABB(1, 1, 1, 9, 9, 9)
	straddle := NewAABB(-1, 1, 1, 9, 9, 9)
	if !outer.Contains(inner) {
		t.Errorf("expected outer to contain inner")
	}
	if outer.Contains(straddle) {
		t.Errorf("expected outer to not contain straddling box")
	}
}

func TestAABBIntersects(t *testing.T) {
	a := NewAABB(0, 0, 0, 10, 10, 10)
	b := NewAABB(9, 9, 9, 20, 20, 20)
	c := NewAABB(11, 11, 11, 20, 20, 20)
	if !a.Intersects(b) {
		t.Errorf("expected a to intersect b")
	}
	if a.Intersects(c) {
		t.Errorf("expected a to not intersect c")
	}
}

func TestAABBSetCentered(t *testing.T) {
	a := &AABB{}
	a.SetCentered(0, 0, 0, 10)
	if a.Min.X != -5 || a.Max.X != 5 {
		t.Errorf("got min %v max %v", a.Min.X, a.Max.X)
	}
}
