package mathutil

import "math"

// Spherical is a point in spherical coordinates: radius r, polar angle theta
// (from the +Y axis), azimuthal angle phi (around Y, from +Z toward +X).
type Spherical struct {
	R, Theta, Phi float64
}

// CartesianToSpherical converts a right-handed cartesian point to spherical
// coordinates: theta = acos(clamp(y/r, -1, 1)), phi = atan2(x, z).
func CartesianToSpherical(x, y, z float64) Spherical {
	r := math.Sqrt(x*x + y*y + z*z)
	if r == 0 {
		return Spherical{}
	}
	theta := math.Acos(Clamp(y/r, -1, 1))
	phi := math.Atan2(x, z)
	return Spherical{R: r, Theta: theta, Phi: phi}
}

// BlendAngles is the {h, v} pair a gaze blend state's weights are keyed on.
type BlendAngles struct {
	H, V float64
}

// ToBlendAngles converts spherical coordinates to the gaze blend-value
// convention: h = phi in degrees, v = theta in degrees minus 90 (so v=0 is
// straight ahead rather than straight up). Callers in a left-handed engine
// must negate H themselves — that handedness flip belongs to the engine
// adapter, not this conversion.
func (s Spherical) ToBlendAngles() BlendAngles {
	return BlendAngles{
		H: s.Phi * 180 / math.Pi,
		V: s.Theta*180/math.Pi - 90,
	}
}
