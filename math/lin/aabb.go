// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// aabb.go adds axis-aligned bounding box math to the linear algebra
// library. AABBs describe the world-space extent of bounded entities and
// are the currency the spatial index and partitioner trade in.

// AABB is an axis aligned bounding box described by its minimum and
// maximum corners.
type AABB struct {
	Min V3
	Max V3
}

// NewAABB returns the AABB with the given minimum and maximum corners,
// stored as given; the corners are not reordered.
func NewAABB(minX, minY, minZ, maxX, maxY, maxZ float64) *AABB {
	a := &AABB{}
	a.Min.SetS(minX, minY, minZ)
	a.Max.SetS(maxX, maxY, maxZ)
	return a
}

// Set (=, copy, clone) assigns box b's corners to box a. The updated box a
// is returned.
func (a *AABB) Set(b *AABB) *AABB {
	a.Min.Set(&b.Min)
	a.Max.Set(&b.Max)
	return a
}

// SetCentered replaces box a with a cube of the given diameter centered on
// cx, cy, cz. The updated box a is returned.
func (a *AABB) SetCentered(cx, cy, cz, diameter float64) *AABB {
	half := diameter * 0.5
	a.Min.SetS(cx-half, cy-half, cz-half)
	a.Max.SetS(cx+half, cy+half, cz+half)
	return a
}

// Center returns the midpoint of the box.
func (a *AABB) Center() (x, y, z float64) {
	return (a.Min.X + a.Max.X) * 0.5, (a.Min.Y + a.Max.Y) * 0.5, (a.Min.Z + a.Max.Z) * 0.5
}

// Dimensions returns the box's extent along each axis.
func (a *AABB) Dimensions() (dx, dy, dz float64) {
	return a.Max.X - a.Min.X, a.Max.Y - a.Min.Y, a.Max.Z - a.Min.Z
}

// MaxDimension returns the largest of the box's three axis extents.
func (a *AABB) MaxDimension() float64 {
	dx, dy, dz := a.Dimensions()
	return Max3(dx, dy, dz)
}

// ContainsPoint returns true if x, y, z lies within or on the box.
func (a *AABB) ContainsPoint(x, y, z float64) bool {
	return x >= a.Min.X && x <= a.Max.X &&
		y >= a.Min.Y && y <= a.Max.Y &&
		z >= a.Min.Z && z <= a.Max.Z
}

// Contains returns true if b lies entirely within or on the box a.
func (a *AABB) Contains(b *AABB) bool {
	return b.Min.X >= a.Min.X && b.Max.X <= a.Max.X &&
		b.Min.Y >= a.Min.Y && b.Max.Y <= a.Max.Y &&
		b.Min.Z >= a.Min.Z && b.Max.Z <= a.Max.Z
}

// Intersects returns true if box a and box b overlap on every axis.
func (a *AABB) Intersects(b *AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Corners returns the 8 corners of the box.
func (a *AABB) Corners() [8]V3 {
	return [8]V3{
		{a.Min.X, a.Min.Y, a.Min.Z},
		{a.Max.X, a.Min.Y, a.Min.Z},
		{a.Min.X, a.Max.Y, a.Min.Z},
		{a.Max.X, a.Max.Y, a.Min.Z},
		{a.Min.X, a.Min.Y, a.Max.Z},
		{a.Max.X, a.Min.Y, a.Max.Z},
		{a.Min.X, a.Max.Y, a.Max.Z},
		{a.Max.X, a.Max.Y, a.Max.Z},
	}
}

// Translated returns a copy of the box moved by dx, dy, dz.
func (a *AABB) Translated(dx, dy, dz float64) *AABB {
	return &AABB{
		Min: V3{a.Min.X + dx, a.Min.Y + dy, a.Min.Z + dz},
		Max: V3{a.Max.X + dx, a.Max.Y + dy, a.Max.Z + dz},
	}
}
