package animation

import (
	"math/rand"

	"github.com/oxy-host/hostanim-go/deferred"
)

// RandomAnimationState plays one substate at a time, switching to a
// uniformly random other substate at expiring intervals sampled around a
// base playInterval. Unlike QueueState it never naturally
// finishes — it cycles until Stop or Cancel.
type RandomAnimationState struct {
	*AbstractState

	substates    *orderedMap[State]
	playInterval float64

	currentName string
	timer       float64
}

var _ State = (*RandomAnimationState)(nil)

// NewRandomAnimationState constructs a RandomAnimationState that switches
// substates on a timer sampled around playIntervalSeconds.
func NewRandomAnimationState(name string, playIntervalSeconds float64) *RandomAnimationState {
	return &RandomAnimationState{
		AbstractState: NewAbstractState("randomAnimation", name),
		substates:     newOrderedMap[State](),
		playInterval:  playIntervalSeconds,
	}
}

// AddSubstate inserts s under name, silently renaming on collision, and
// returns the name it was actually stored under.
func (r *RandomAnimationState) AddSubstate(name string, s State) string {
	actual := uniqueName(r.substates, name)
	s.SetName(actual)
	r.substates.Set(actual, s)
	return actual
}

// SubstateNames returns the registered substate names.
func (r *RandomAnimationState) SubstateNames() []string { return r.substates.Keys() }

// Current returns the name of the substate currently playing.
func (r *RandomAnimationState) Current() string { return r.currentName }

// sampleTimer draws a uniform duration in [interval/4, interval*2], the
// range a selection stays active before the next switch.
func (r *RandomAnimationState) sampleTimer() float64 {
	lo := r.playInterval / 4
	hi := r.playInterval * 2
	if hi <= lo {
		return lo
	}
	return lo + rand.Float64()*(hi-lo)
}

// pickNext returns a substate name chosen uniformly at random, excluding
// exclude when more than one substate is registered.
func (r *RandomAnimationState) pickNext(exclude string) string {
	names := r.substates.Keys()
	if len(names) == 0 {
		return ""
	}
	if len(names) == 1 {
		return names[0]
	}
	candidates := make([]string, 0, len(names)-1)
	for _, n := range names {
		if n != exclude {
			candidates = append(candidates, n)
		}
	}
	return candidates[rand.Intn(len(candidates))]
}

// Play picks an initial random substate and starts the switch timer.
func (r *RandomAnimationState) Play(cb PlayCallbacks) *deferred.Deferred[Signal] {
	r.paused = false
	r.captureCallbacks(cb)
	r.resetDeferreds()

	r.currentName = r.pickNext("")
	r.timer = r.sampleTimer()
	if sub, ok := r.substates.Get(r.currentName); ok {
		sub.Play(PlayCallbacks{})
	}
	return r.finishDeferred
}

// Update advances the current substate and, once the switch timer expires,
// selects and plays a new random substate excluding the current one.
func (r *RandomAnimationState) Update(deltaMs float64) {
	if r.paused {
		return
	}
	if sub, ok := r.substates.Get(r.currentName); ok {
		sub.Update(deltaMs)
	}
	r.timer -= deltaMs / 1000
	if r.timer <= 0 {
		next := r.pickNext(r.currentName)
		if prev, ok := r.substates.Get(r.currentName); ok && next != r.currentName {
			prev.Stop()
		}
		r.currentName = next
		r.timer = r.sampleTimer()
		if sub, ok := r.substates.Get(r.currentName); ok {
			sub.Play(PlayCallbacks{})
		}
	}
	r.AbstractState.Update(deltaMs)
}

// Pause pauses the current substate along with the state itself.
func (r *RandomAnimationState) Pause() bool {
	paused := r.AbstractState.Pause()
	if sub, ok := r.substates.Get(r.currentName); ok && sub.Pause() {
		paused = true
	}
	return paused
}

// Resume un-pauses the state and its current substate.
func (r *RandomAnimationState) Resume(cb PlayCallbacks) *deferred.Deferred[Signal] {
	r.captureCallbacks(cb)
	if r.playDeferred.Pending() {
		r.paused = false
		if sub, ok := r.substates.Get(r.currentName); ok {
			sub.Resume(PlayCallbacks{})
		}
		return r.finishDeferred
	}
	return r.Play(PlayCallbacks{})
}

// Cancel cancels the state's own deferreds and the current substate's.
func (r *RandomAnimationState) Cancel() {
	r.AbstractState.Cancel()
	if sub, ok := r.substates.Get(r.currentName); ok {
		sub.Cancel()
	}
}

// Stop stops every substate.
func (r *RandomAnimationState) Stop() {
	r.AbstractState.Stop()
	for _, sub := range r.substates.Values() {
		sub.Stop()
	}
}

// Discard discards every substate before discarding the state itself.
func (r *RandomAnimationState) Discard() {
	if r.discarded {
		return
	}
	for _, sub := range r.substates.Values() {
		sub.Discard()
	}
	r.AbstractState.Discard()
}

// UpdateInternalWeight gives the current substate the full factor and every
// other substate zero.
func (r *RandomAnimationState) UpdateInternalWeight(factor float64) {
	sum := 0.0
	for _, name := range r.substates.Keys() {
		sub, _ := r.substates.Get(name)
		if name == r.currentName {
			sub.UpdateInternalWeight(factor)
			sum += sub.InternalWeight()
		} else {
			sub.UpdateInternalWeight(0)
		}
	}
	if sum > 1 {
		sum = 1
	}
	r.internalWeight = sum
}
