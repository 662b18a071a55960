package mathutil_test

import (
	"math"
	"testing"

	"github.com/oxy-host/hostanim-go/mathutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampLerp(t *testing.T) {
	assert.Equal(t, 1.0, mathutil.Clamp(5, 0, 1))
	assert.Equal(t, 0.0, mathutil.Clamp(-5, 0, 1))
	assert.Equal(t, 0.5, mathutil.Clamp(0.5, 0, 1))
	assert.Equal(t, 5.0, mathutil.Lerp(0, 10, 0.5))
}

func TestDampValueConvergesToTarget(t *testing.T) {
	pos, vel := 0.0, 0.0
	for i := 0; i < 500; i++ {
		pos, vel = mathutil.DampValue(pos, 10, vel, 1.0/60, 0.3, 1000)
	}
	assert.InDelta(t, 10, pos, 0.01)
}

func TestDampValueRespectsApproxSmoothTime(t *testing.T) {
	// After roughly one smoothTime, the value should have covered most of
	// the distance to target (critically-damped spring semantics).
	pos, vel := 0.0, 0.0
	smoothTime := 0.5
	steps := int(smoothTime / (1.0 / 60))
	for i := 0; i < steps; i++ {
		pos, vel = mathutil.DampValue(pos, 100, vel, 1.0/60, smoothTime, 100000)
	}
	assert.Greater(t, pos, 50.0)
	assert.Less(t, pos, 100.0)
}

func TestCartesianToSpherical(t *testing.T) {
	s := mathutil.CartesianToSpherical(0, 0, 1)
	assert.InDelta(t, 1, s.R, 1e-9)
	assert.InDelta(t, math.Pi/2, s.Theta, 1e-9)
	assert.InDelta(t, 0, s.Phi, 1e-9)

	angles := s.ToBlendAngles()
	assert.InDelta(t, 0, angles.H, 1e-9)
	assert.InDelta(t, 0, angles.V, 1e-9)
}

func TestDelaunayTriangleContainsPoint(t *testing.T) {
	verts := []mathutil.V2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	tris := mathutil.Delaunay(verts)
	require.Len(t, tris, 1)

	tri := tris[0]
	wa, wb, wc := mathutil.Barycentric(mathutil.V2{X: 0.25, Y: 0.25}, verts[tri.A], verts[tri.B], verts[tri.C])
	assert.True(t, mathutil.InTriangle(wa, wb, wc))
	assert.InDelta(t, 1.0, wa+wb+wc, 1e-9)
}

// S4 — Blend2d outside triangulation: vertices (0,0),(1,0),(0,1), query (1,1)
// projects onto edge (1,0)-(0,1) at (0.5,0.5) with weights (0, 0.5, 0.5).
func TestProjectOnSegmentOutsideTriangle(t *testing.T) {
	a := mathutil.V2{X: 1, Y: 0}
	b := mathutil.V2{X: 0, Y: 1}
	p := mathutil.V2{X: 1, Y: 1}

	proj, tParam := mathutil.ProjectOnSegment(p, a, b)
	assert.InDelta(t, 0.5, proj.X, 1e-9)
	assert.InDelta(t, 0.5, proj.Y, 1e-9)
	assert.InDelta(t, 0.5, tParam, 1e-9)
}

func TestDelaunayWithFourPointsSquare(t *testing.T) {
	verts := []mathutil.V2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	tris := mathutil.Delaunay(verts)
	assert.Len(t, tris, 2)
	for _, tri := range tris {
		a, b, c := verts[tri.A], verts[tri.B], verts[tri.C]
		area := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
		assert.Greater(t, area, 0.0, "triangle indices must wind CCW")
	}
}
