package animation

import (
	"github.com/oxy-host/hostanim-go/deferred"
	"github.com/oxy-host/hostanim-go/mathutil"
)

// TransitionState cross-fades a set of "from" states (weight animating to 0)
// into one "to" state (weight animating to 1) over a configured duration.
// A layer owns exactly one reserved TransitionState and reconfigures it via
// Reset every time a weighted PlayAnimation needs to cross-fade.
type TransitionState struct {
	*AbstractState

	from     []State
	to       State
	duration float64
	easing   mathutil.Easing
}

var _ State = (*TransitionState)(nil)

// NewTransitionState constructs an idle TransitionState. It has no from/to
// configured until the first Reset.
func NewTransitionState(name string) *TransitionState {
	return &TransitionState{AbstractState: NewAbstractState("transition", name)}
}

// From returns the states currently cross-fading out.
func (t *TransitionState) From() []State { return t.from }

// To returns the state currently cross-fading in.
func (t *TransitionState) To() State { return t.to }

// Reset cancels any in-flight weight tweens from a previous transition,
// then starts new parallel weight tweens of every from state to 0 and to to
// 1, over duration seconds eased by easing. Returns the finish Deferred,
// which settles once all weight tweens complete (or the transition is
// cancelled/stopped).
func (t *TransitionState) Reset(from []State, to State, duration float64, easing mathutil.Easing, cb PlayCallbacks) *deferred.Deferred[Signal] {
	t.Cancel()

	t.from = from
	t.to = to
	t.duration = duration
	t.easing = easing
	t.paused = false
	t.captureCallbacks(cb)

	members := make([]*deferred.Deferred[Signal], 0, len(from)+1)
	for _, s := range from {
		members = append(members, s.SetWeight(0, duration, easing))
	}
	if to != nil {
		members = append(members, to.SetWeight(1, duration, easing))
	}

	play := wrapGroup(deferred.All(members))
	return t.composeFinish(play, deferred.ResolvedWith(sig))
}

// Play is not the normal entry point for a TransitionState — layers drive it
// through Reset, which carries the from/to configuration Play alone cannot
// express. Calling Play directly just replays the current configuration.
func (t *TransitionState) Play(cb PlayCallbacks) *deferred.Deferred[Signal] {
	return t.Reset(t.from, t.to, t.duration, t.easing, cb)
}

// Update advances every from state and the to state (both their weight
// tweens and their own underlying playback), then settles this state's own
// deferreds.
func (t *TransitionState) Update(deltaMs float64) {
	if t.paused {
		return
	}
	for _, s := range t.from {
		s.Update(deltaMs)
	}
	if t.to != nil {
		t.to.Update(deltaMs)
	}
	t.AbstractState.Update(deltaMs)
}

// UpdateInternalWeight propagates factor to every from/to sub-state and sums
// their resulting internal weights, the same rule AbstractBlendState uses.
func (t *TransitionState) UpdateInternalWeight(factor float64) {
	sum := 0.0
	for _, s := range t.from {
		s.UpdateInternalWeight(factor)
		sum += s.InternalWeight()
	}
	if t.to != nil {
		t.to.UpdateInternalWeight(factor)
		sum += t.to.InternalWeight()
	}
	t.internalWeight = mathutil.Clamp01(sum)
}
