package gaze

import "github.com/oxy-host/hostanim-go/mathutil"

// Axis names a local basis axis of a Transform's world matrix, used to pick
// which direction a tracking reference considers "forward".
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisNegX
	AxisNegY
	AxisNegZ
)

// direction extracts axis from a row-major 16-element world matrix: rows 0,
// 1, 2 are the X, Y, Z basis vectors respectively.
func direction(m [16]float64, axis Axis) mathutil.V3 {
	var v mathutil.V3
	switch axis {
	case AxisX, AxisNegX:
		v = mathutil.V3{X: m[0], Y: m[1], Z: m[2]}
	case AxisY, AxisNegY:
		v = mathutil.V3{X: m[4], Y: m[5], Z: m[6]}
	case AxisZ, AxisNegZ:
		v = mathutil.V3{X: m[8], Y: m[9], Z: m[10]}
	}
	if axis == AxisNegX || axis == AxisNegY || axis == AxisNegZ {
		v = mathutil.V3{X: -v.X, Y: -v.Y, Z: -v.Z}
	}
	return v
}

func v3(a [3]float64) mathutil.V3 { return mathutil.V3{X: a[0], Y: a[1], Z: a[2]} }

func sub(a, b mathutil.V3) mathutil.V3 { return mathutil.V3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z} }
