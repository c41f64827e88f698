// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "math"

// frustum.go supplements the AABB math in aabb.go with a view frustum,
// the shape the partitioner tests octree nodes against. Grounded on the
// same "plane from three points, inward normal" construction simulant's
// partitioner uses (original_source/kglt/partitioners/impl/octree.cpp
// calls into a frustum intersection test built the same way); gazed-vu's
// own camera.go only ever culls by a point-radius check (culler.go), so
// the plane/frustum shape itself is new, built from the engine's existing
// vector primitives rather than introducing a separate math convention.

// Plane is a half-space boundary: points with Distance > 0 are in front
// of (inside) the plane.
type Plane struct {
	Normal V3
	D      float64
}

// Distance returns the signed distance from the plane to x, y, z.
func (p *Plane) Distance(x, y, z float64) float64 {
	return p.Normal.X*x + p.Normal.Y*y + p.Normal.Z*z + p.D
}

// planeFromPoints builds a plane through a, b, c whose normal follows the
// right-hand rule of (b-a) x (c-a), pointing toward the frustum's interior
// when the three points are supplied in the winding order used below.
func planeFromPoints(a, b, c V3) Plane {
	ab, ac := V3{}, V3{}
	ab.Sub(&b, &a)
	ac.Sub(&c, &a)
	n := V3{}
	n.Cross(&ab, &ac)
	n.Unit()
	return Plane{Normal: n, D: -n.Dot(&a)}
}

// Classification is the result of testing a box against a Frustum.
type Classification int

const (
	// Outside means no part of the box is visible; skip the subtree.
	Outside Classification = iota
	// Inside means the box lies entirely within the frustum; every
	// descendant is visible without further testing.
	Inside
	// Straddle means the box crosses a frustum plane; children must be
	// tested individually.
	Straddle
)

// Frustum is a 6-plane view volume: left, right, bottom, top, near, far,
// each oriented with its interior-facing normal.
type Frustum struct {
	Planes [6]Plane
}

const (
	planeLeft = iota
	planeRight
	planeBottom
	planeTop
	planeNear
	planeFar
)

// NewFrustum builds a perspective view frustum from a camera pose (eye,
// forward, up, assumed already orthonormal-ish; up is re-orthogonalized
// against forward) and the standard vertical-fov/aspect/near/far
// parameters, avoiding any dependency on a particular projection matrix's
// row/column convention.
func NewFrustum(eye, forward, up V3, fovYDegrees, aspect, near, far float64) *Frustum {
	f := V3{}
	f.Set(&forward)
	f.Unit()

	right := V3{}
	right.Cross(&f, &up)
	right.Unit()

	u := V3{}
	u.Cross(&right, &f)
	u.Unit()

	halfHeightNear := near * tan(fovYDegrees*0.5)
	halfWidthNear := halfHeightNear * aspect
	halfHeightFar := far * tan(fovYDegrees*0.5)
	halfWidthFar := halfHeightFar * aspect

	scaled := func(base V3, dir V3, s float64) V3 {
		out := V3{}
		out.Scale(&dir, s)
		out.Add(&base, &out)
		return out
	}

	nc := scaled(eye, f, near)
	fc := scaled(eye, f, far)

	corner := func(center V3, vOff, hOff float64) V3 {
		p := scaled(center, u, vOff)
		return scaled(p, right, hOff)
	}

	ntl := corner(nc, halfHeightNear, -halfWidthNear)
	ntr := corner(nc, halfHeightNear, halfWidthNear)
	nbl := corner(nc, -halfHeightNear, -halfWidthNear)
	nbr := corner(nc, -halfHeightNear, halfWidthNear)
	ftl := corner(fc, halfHeightFar, -halfWidthFar)
	ftr := corner(fc, halfHeightFar, halfWidthFar)
	fbl := corner(fc, -halfHeightFar, -halfWidthFar)
	fbr := corner(fc, -halfHeightFar, halfWidthFar)

	fr := &Frustum{}
	fr.Planes[planeNear] = planeFromPoints(ntl, ntr, nbr)
	fr.Planes[planeFar] = planeFromPoints(ftr, ftl, fbl)
	fr.Planes[planeLeft] = planeFromPoints(ntl, nbl, fbl)
	fr.Planes[planeRight] = planeFromPoints(ntr, ftr, fbr)
	fr.Planes[planeTop] = planeFromPoints(ntl, ftl, ftr)
	fr.Planes[planeBottom] = planeFromPoints(nbl, nbr, fbr)
	return fr
}

// tan takes degrees, matching Camera's SetTilt and SetPerspective.
func tan(degrees float64) float64 {
	return math.Tan(degrees * math.Pi / 180)
}

// Classify tests a against every plane using the conservative all-8-corners
// method: a box only counts as Outside a plane if every corner is behind
// it, and only counts as Inside the whole frustum if every corner is in
// front of every plane.
func (f *Frustum) Classify(a *AABB) Classification {
	corners := a.Corners()
	allIn := true
	for i := range f.Planes {
		p := &f.Planes[i]
		outside := 0
		for _, c := range corners {
			if p.Distance(c.X, c.Y, c.Z) < 0 {
				outside++
			}
		}
		if outside == len(corners) {
			return Outside
		}
		if outside > 0 {
			allIn = false
		}
	}
	if allIn {
		return Inside
	}
	return Straddle
}
