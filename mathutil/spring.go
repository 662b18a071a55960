package mathutil

// DampValue approaches target from current using a critically-damped spring,
// the same shape gaze tracking uses to smooth saccade targets frame to frame.
// velocity is the caller's persisted spring velocity, updated and returned.
// smoothTime is the approximate time to reach the target; maxSpeed bounds
// how fast current is allowed to approach it.
//
// The coefficients (0.5, 0.25) are deliberately not the tighter Unity
// SmoothDamp constants (0.48, 0.235).
func DampValue(current, target, velocity, dtSec, smoothTime, maxSpeed float64) (pos, newVelocity float64) {
	if smoothTime <= 0 {
		return target, 0
	}
	if dtSec <= 0 {
		return current, velocity
	}

	maxChange := maxSpeed * smoothTime
	delta := Clamp(current-target, -maxChange, maxChange)
	adjustedTarget := current - delta

	d1 := 2 / smoothTime
	d2 := d1 * dtSec
	d3 := 1 / (1 + d2 + 0.5*d2*d2 + 0.25*d2*d2*d2)
	d4 := (velocity + d1*delta) * dtSec

	pos = adjustedTarget + (delta+d4)*d3
	newVelocity = (velocity - d1*d4) * d3

	// Overshoot guard: if we were approaching target from one side and the
	// step would carry pos past it, clamp to target exactly.
	if (target-current > 0) == (pos > target) {
		pos = target
		newVelocity = (pos - target) / dtSec
	}
	return pos, newVelocity
}
