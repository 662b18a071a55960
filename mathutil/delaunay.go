package mathutil

import (
	"math"
	"sort"
)

// Triangle is three indices into the vertex slice a triangulation was built
// from, ordered counter-clockwise about the triangle's centroid so area
// tests and barycentric weights are sign-stable regardless of input order.
type Triangle struct {
	A, B, C int
}

// Delaunay computes the Bowyer-Watson triangulation of points. Returns nil
// if fewer than 3 points are given — callers with 0, 1, or 2 vertices use a
// different (segment or single-point) strategy, not a triangulation.
func Delaunay(points []V2) []Triangle {
	if len(points) < 3 {
		return nil
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	dx, dy := maxX-minX, maxY-minY
	extent := math.Max(dx, dy)
	if extent == 0 {
		extent = 1
	}
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	// Super-triangle expanded to 20x the dataset extent, guaranteed to
	// contain every input point.
	super := 20 * extent
	superA := len(points)
	superB := len(points) + 1
	superC := len(points) + 2
	verts := append(append([]V2(nil), points...),
		V2{midX - super, midY - super},
		V2{midX + super, midY - super},
		V2{midX, midY + super},
	)

	triangles := []Triangle{{superA, superB, superC}}

	for i := range points {
		triangles = insertPoint(triangles, verts, i)
	}

	// Drop any triangle touching a super-vertex.
	final := triangles[:0]
	for _, t := range triangles {
		if t.A >= superA || t.B >= superA || t.C >= superA {
			continue
		}
		final = append(final, t)
	}

	for i := range final {
		final[i] = sortCCW(final[i], points)
	}
	return final
}

func insertPoint(triangles []Triangle, verts []V2, pointIdx int) []Triangle {
	p := verts[pointIdx]

	var bad []Triangle
	var good []Triangle
	for _, t := range triangles {
		if inCircumcircle(p, verts[t.A], verts[t.B], verts[t.C]) {
			bad = append(bad, t)
		} else {
			good = append(good, t)
		}
	}

	type edge struct{ a, b int }
	edgeCount := map[edge]int{}
	canon := func(a, b int) edge {
		if a > b {
			a, b = b, a
		}
		return edge{a, b}
	}
	for _, t := range bad {
		edgeCount[canon(t.A, t.B)]++
		edgeCount[canon(t.B, t.C)]++
		edgeCount[canon(t.C, t.A)]++
	}

	// Boundary edges appear in exactly one bad triangle.
	var boundary []edge
	for _, t := range bad {
		for _, e := range [][2]int{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
			if edgeCount[canon(e[0], e[1])] == 1 {
				boundary = append(boundary, edge{e[0], e[1]})
			}
		}
	}

	for _, e := range boundary {
		good = append(good, Triangle{e.a, e.b, pointIdx})
	}
	return good
}

// inCircumcircle reports whether p lies strictly inside the circumcircle of
// triangle abc, using the standard determinant test.
func inCircumcircle(p, a, b, c V2) bool {
	ax, ay := a.X-p.X, a.Y-p.Y
	bx, by := b.X-p.X, b.Y-p.Y
	cx, cy := c.X-p.X, c.Y-p.Y

	det := (ax*ax+ay*ay)*(bx*cy-cx*by) -
		(bx*bx+by*by)*(ax*cy-cx*ay) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)

	// Orientation of abc determines the sign convention for "inside".
	if signedArea(a, b, c) > 0 {
		return det > 1e-9
	}
	return det < -1e-9
}

func signedArea(a, b, c V2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

// sortCCW reorders a triangle's three indices so they wind
// counter-clockwise about their own centroid, breaking ties between equal
// angles by index so the same input always produces the same winding.
func sortCCW(t Triangle, points []V2) Triangle {
	idx := []int{t.A, t.B, t.C}
	cx := (points[t.A].X + points[t.B].X + points[t.C].X) / 3
	cy := (points[t.A].Y + points[t.B].Y + points[t.C].Y) / 3
	sort.Slice(idx, func(i, j int) bool {
		ai := math.Atan2(points[idx[i]].Y-cy, points[idx[i]].X-cx)
		aj := math.Atan2(points[idx[j]].Y-cy, points[idx[j]].X-cx)
		if ai != aj {
			return ai < aj
		}
		return idx[i] < idx[j]
	})
	return Triangle{idx[0], idx[1], idx[2]}
}

// Barycentric returns the barycentric weights of p with respect to triangle
// abc, in (wa, wb, wc) order. The weights sum to 1; p lies inside the
// triangle iff all three are in [0,1].
func Barycentric(p, a, b, c V2) (wa, wb, wc float64) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		return 1, 0, 0
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w
	return u, v, w
}

const baryEpsilon = 1e-9

// InTriangle reports whether the barycentric weights place p inside
// (or on the boundary of) triangle abc.
func InTriangle(wa, wb, wc float64) bool {
	return wa >= -baryEpsilon && wb >= -baryEpsilon && wc >= -baryEpsilon
}

// ProjectOnSegment returns the closest point to p on segment ab, and the
// parametric t in [0,1] such that point = a + (b-a)*t.
func ProjectOnSegment(p, a, b V2) (point V2, t float64) {
	ab := b.Sub(a)
	lenSqr := ab.LenSqr()
	if lenSqr == 0 {
		return a, 0
	}
	t = Clamp01(p.Sub(a).Dot(ab) / lenSqr)
	return a.Add(ab.Scale(t)), t
}
