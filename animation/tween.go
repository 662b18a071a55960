package animation

import (
	"github.com/oxy-host/hostanim-go/deferred"
	"github.com/oxy-host/hostanim-go/mathutil"
)

// Signal is the payload type of every Deferred in this package: none of
// them carry a value, they only signal settlement.
type Signal = struct{}

var sig = Signal{}

// newWeightTween returns a Deferred that, ticked via Execute, eases apply
// from its current value to target over seconds and resolves on completion.
// seconds <= 0 applies target immediately and returns an already-resolved
// Deferred, matching AnimationLayer.PlayAnimation rule 3 (transitionTime<=0
// is an instant cut, not a zero-duration tween).
func newWeightTween(from, target, seconds float64, easing mathutil.Easing, apply func(float64)) *deferred.Deferred[Signal] {
	if easing == nil {
		easing = mathutil.Linear
	}
	if seconds <= 0 {
		apply(target)
		return deferred.ResolvedWith(sig)
	}

	elapsed := 0.0
	exec := func(resolve func(Signal), reject func(error), cancel func(any), deltaMs float64) {
		elapsed += deltaMs / 1000
		t := mathutil.Clamp01(elapsed / seconds)
		apply(mathutil.Lerp(from, target, easing(t)))
		if t >= 1 {
			resolve(sig)
		}
	}
	return deferred.MustNew(exec)
}
