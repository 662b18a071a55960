package animation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxy-host/hostanim-go/animation"
	"github.com/oxy-host/hostanim-go/mathutil"
)

func TestBlend2dStateSingleVertexAlwaysFullWeight(t *testing.T) {
	b := animation.NewBlend2dState("gaze")
	center := newTestSingle(t, "center")
	b.AddSubstate("center", center)
	b.AddThreshold("center", mathutil.V2{X: 0, Y: 0})

	b.SetBlendWeight(mathutil.V2{X: 5, Y: -5})
	b.UpdateInternalWeight(1)

	assert.InDelta(t, 1, center.InternalWeight(), 1e-9)
}

func TestBlend2dStateTwoVerticesProjectsOntoSegment(t *testing.T) {
	b := animation.NewBlend2dState("gaze")
	left := newTestSingle(t, "left")
	right := newTestSingle(t, "right")
	b.AddSubstate("left", left)
	b.AddSubstate("right", right)
	b.AddThreshold("left", mathutil.V2{X: -1, Y: 0})
	b.AddThreshold("right", mathutil.V2{X: 1, Y: 0})

	b.SetBlendWeight(mathutil.V2{X: 0, Y: 0})
	b.UpdateInternalWeight(1)

	assert.InDelta(t, 0.5, left.InternalWeight(), 1e-9)
	assert.InDelta(t, 0.5, right.InternalWeight(), 1e-9)
}

func TestBlend2dStateInsideTriangleUsesBarycentricWeights(t *testing.T) {
	b := animation.NewBlend2dState("gaze")
	names := []string{"center", "up", "right"}
	points := []mathutil.V2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}}
	for i, name := range names {
		b.AddSubstate(name, newTestSingle(t, name))
		b.AddThreshold(name, points[i])
	}
	require.NotNil(t, b.Triangulation())

	b.SetBlendWeight(mathutil.V2{X: 0.2, Y: 0.2})
	b.UpdateInternalWeight(1)

	sum := 0.0
	for _, name := range names {
		s, _ := b.GetSubstate(name)
		sum += s.InternalWeight()
	}
	assert.InDelta(t, 1, sum, 1e-9)
}

func TestBlend2dStateOutsideTriangleProjectsToClosestEdge(t *testing.T) {
	b := animation.NewBlend2dState("gaze")
	names := []string{"center", "up", "right"}
	points := []mathutil.V2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}}
	for i, name := range names {
		b.AddSubstate(name, newTestSingle(t, name))
		b.AddThreshold(name, points[i])
	}

	b.SetBlendWeight(mathutil.V2{X: -5, Y: -5})
	b.UpdateInternalWeight(1)

	sum := 0.0
	for _, name := range names {
		s, _ := b.GetSubstate(name)
		sum += s.InternalWeight()
	}
	assert.InDelta(t, 1, sum, 1e-9)
}

func TestBlend2dStateSetTriangulationOverridesComputed(t *testing.T) {
	b := animation.NewBlend2dState("gaze")
	names := []string{"a", "b", "c"}
	points := []mathutil.V2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}}
	for i, name := range names {
		b.AddSubstate(name, newTestSingle(t, name))
		b.AddThreshold(name, points[i])
	}

	precomputed := []mathutil.Triangle{{A: 0, B: 1, C: 2}}
	b.SetTriangulation(precomputed)

	assert.Equal(t, precomputed, b.Triangulation())
}

func TestBlend2dStateBlendPointReflectsLastSet(t *testing.T) {
	b := animation.NewBlend2dState("gaze")
	b.AddSubstate("center", newTestSingle(t, "center"))
	b.AddThreshold("center", mathutil.V2{X: 0, Y: 0})

	b.SetBlendWeight(mathutil.V2{X: 3, Y: 4})

	assert.Equal(t, mathutil.V2{X: 3, Y: 4}, b.BlendPoint())
}
