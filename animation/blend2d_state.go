package animation

import "github.com/oxy-host/hostanim-go/mathutil"

// Blend2dThreshold associates a substate name with a 2D position in blend
// space, e.g. horizontal/vertical gaze angle.
type Blend2dThreshold struct {
	Name  string
	Point mathutil.V2
}

// Blend2dState blends between substates arranged at 2D positions, using a
// Delaunay triangulation for three or more vertices, segment projection for
// exactly two, and a single fixed weight for exactly one.
type Blend2dState struct {
	*AbstractBlendState

	thresholds   []Blend2dThreshold
	triangulated []mathutil.Triangle
	point        mathutil.V2
	weights      map[string]float64
}

var _ State = (*Blend2dState)(nil)

// NewBlend2dState constructs an empty Blend2dState.
func NewBlend2dState(name string) *Blend2dState {
	return &Blend2dState{
		AbstractBlendState: NewAbstractBlendState("blend2d", name),
		weights:            map[string]float64{},
	}
}

// AddThreshold registers substateName at point, and re-triangulates if there
// are now three or more vertices.
func (b *Blend2dState) AddThreshold(substateName string, point mathutil.V2) {
	b.thresholds = append(b.thresholds, Blend2dThreshold{Name: substateName, Point: point})
	b.retriangulate()
}

// Thresholds returns the thresholds in insertion order.
func (b *Blend2dState) Thresholds() []Blend2dThreshold {
	return append([]Blend2dThreshold(nil), b.thresholds...)
}

// Triangulation exposes the precomputed triangulation (nil for fewer than
// three vertices), used by config loading to precompute it off the hot path.
func (b *Blend2dState) Triangulation() []mathutil.Triangle {
	return b.triangulated
}

func (b *Blend2dState) retriangulate() {
	if len(b.thresholds) < 3 {
		b.triangulated = nil
		return
	}
	points := make([]mathutil.V2, len(b.thresholds))
	for i, th := range b.thresholds {
		points[i] = th.Point
	}
	b.triangulated = mathutil.Delaunay(points)
}

// SetTriangulation installs a precomputed triangulation, letting config
// loading perform the Bowyer-Watson pass once at load time on a worker pool
// rather than inside the per-tick hot path.
func (b *Blend2dState) SetTriangulation(tris []mathutil.Triangle) {
	b.triangulated = tris
}

// BlendPoint returns the most recently set 2D blend point.
func (b *Blend2dState) BlendPoint() mathutil.V2 { return b.point }

// SetBlendWeight sets the 2D blend point and recomputes substate weights:
// inside a triangle, barycentric weights of its three vertices; outside
// every triangle, project onto the closest triangle edge and use the
// projected point's barycentric weights; for exactly two vertices, project
// onto the segment between them.
func (b *Blend2dState) SetBlendWeight(p mathutil.V2) {
	b.point = p
	b.weights = b.computeWeights(p)
}

func (b *Blend2dState) computeWeights(p mathutil.V2) map[string]float64 {
	weights := make(map[string]float64, len(b.thresholds))
	switch {
	case len(b.thresholds) == 0:
		return weights
	case len(b.thresholds) == 1:
		weights[b.thresholds[0].Name] = 1
		return weights
	case len(b.thresholds) == 2:
		a, c := b.thresholds[0], b.thresholds[1]
		_, t := mathutil.ProjectOnSegment(p, a.Point, c.Point)
		weights[a.Name] = 1 - t
		weights[c.Name] = t
		return weights
	}

	points := make([]mathutil.V2, len(b.thresholds))
	for i, th := range b.thresholds {
		points[i] = th.Point
	}
	for _, tri := range b.triangulated {
		a, bb, c := points[tri.A], points[tri.B], points[tri.C]
		wa, wb, wc := mathutil.Barycentric(p, a, bb, c)
		if mathutil.InTriangle(wa, wb, wc) {
			weights[b.thresholds[tri.A].Name] = wa
			weights[b.thresholds[tri.B].Name] = wb
			weights[b.thresholds[tri.C].Name] = wc
			return weights
		}
	}

	// Outside every triangle: project onto the closest triangle edge and
	// use the projected point's barycentric weights for that triangle.
	var (
		bestDist  = -1.0
		bestTri   mathutil.Triangle
		bestProj  mathutil.V2
		bestFound bool
	)
	for _, tri := range b.triangulated {
		a, bb, c := points[tri.A], points[tri.B], points[tri.C]
		for _, edge := range [3][2]mathutil.V2{{a, bb}, {bb, c}, {c, a}} {
			proj, _ := mathutil.ProjectOnSegment(p, edge[0], edge[1])
			d := p.Dist(proj)
			if !bestFound || d < bestDist {
				bestDist, bestTri, bestProj, bestFound = d, tri, proj, true
			}
		}
	}
	if bestFound {
		a, bb, c := points[bestTri.A], points[bestTri.B], points[bestTri.C]
		wa, wb, wc := mathutil.Barycentric(bestProj, a, bb, c)
		weights[b.thresholds[bestTri.A].Name] = wa
		weights[b.thresholds[bestTri.B].Name] = wb
		weights[b.thresholds[bestTri.C].Name] = wc
	}
	return weights
}

// UpdateInternalWeight propagates factor into every substate weighted by
// its current blend weight (0 for inactive substates).
func (b *Blend2dState) UpdateInternalWeight(factor float64) {
	b.applyBlendWeights(factor, b.weights)
}
