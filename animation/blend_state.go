package animation

import (
	"github.com/oxy-host/hostanim-go/deferred"
	"github.com/oxy-host/hostanim-go/mathutil"
)

// AbstractBlendState is the shared base of every state that plays several
// substates at once and blends between them: FreeBlendState,
// Blend1dState, Blend2dState. It owns the name-ordered substate map and the
// fan-out lifecycle (play/pause/resume/stop/cancel/discard all apply to
// every substate); each concrete blend subtype supplies only the rule for
// how much of the parent's weight budget each substate receives.
type AbstractBlendState struct {
	*AbstractState

	substates *orderedMap[State]
}

// NewAbstractBlendState constructs an empty blend base of the given kind tag.
func NewAbstractBlendState(kind, name string) *AbstractBlendState {
	return &AbstractBlendState{
		AbstractState: NewAbstractState(kind, name),
		substates:     newOrderedMap[State](),
	}
}

// SubstateNames returns substate names in the order they were added.
func (b *AbstractBlendState) SubstateNames() []string { return b.substates.Keys() }

// Substates returns the substates in the order they were added.
func (b *AbstractBlendState) Substates() []State { return b.substates.Values() }

// GetSubstate looks up a substate by name.
func (b *AbstractBlendState) GetSubstate(name string) (State, bool) {
	return b.substates.Get(name)
}

// AddSubstate inserts s under name, silently renaming it with a numeric
// suffix if name collides with an existing substate, and returns the name it
// was actually stored under.
func (b *AbstractBlendState) AddSubstate(name string, s State) string {
	actual := uniqueName(b.substates, name)
	s.SetName(actual)
	b.substates.Set(actual, s)
	return actual
}

// RemoveSubstate discards and removes the named substate. Reports whether a
// substate was present.
func (b *AbstractBlendState) RemoveSubstate(name string) bool {
	sub, ok := b.substates.Get(name)
	if !ok {
		return false
	}
	sub.Discard()
	b.substates.Delete(name)
	return true
}

// Play resets this blend state and plays every substate in parallel. The
// returned Deferred settles once every substate's own play has settled.
func (b *AbstractBlendState) Play(cb PlayCallbacks) *deferred.Deferred[Signal] {
	b.paused = false
	b.captureCallbacks(cb)

	members := make([]*deferred.Deferred[Signal], 0, b.substates.Len())
	for _, sub := range b.substates.Values() {
		members = append(members, sub.Play(PlayCallbacks{}))
	}
	play := wrapGroup(deferred.All(members))
	return b.composeFinish(play, deferred.ResolvedWith(sig))
}

// Pause pauses every substate along with the blend state itself.
func (b *AbstractBlendState) Pause() bool {
	paused := b.AbstractState.Pause()
	for _, sub := range b.substates.Values() {
		if sub.Pause() {
			paused = true
		}
	}
	return paused
}

// Resume un-pauses the blend state and every substate.
func (b *AbstractBlendState) Resume(cb PlayCallbacks) *deferred.Deferred[Signal] {
	b.captureCallbacks(cb)
	if b.playDeferred.Pending() {
		b.paused = false
		for _, sub := range b.substates.Values() {
			sub.Resume(PlayCallbacks{})
		}
		return b.finishDeferred
	}
	return b.Play(PlayCallbacks{})
}

// Cancel cancels the blend state's own deferreds and every substate's.
func (b *AbstractBlendState) Cancel() {
	b.AbstractState.Cancel()
	for _, sub := range b.substates.Values() {
		sub.Cancel()
	}
}

// Stop resolves the blend state's own deferreds and stops every substate.
func (b *AbstractBlendState) Stop() {
	b.AbstractState.Stop()
	for _, sub := range b.substates.Values() {
		sub.Stop()
	}
}

// Discard cancels and discards every substate before discarding itself.
func (b *AbstractBlendState) Discard() {
	if b.discarded {
		return
	}
	for _, sub := range b.substates.Values() {
		sub.Discard()
	}
	b.AbstractState.Discard()
}

// Update advances the blend state's own deferreds and every substate.
func (b *AbstractBlendState) Update(deltaMs float64) {
	if b.paused {
		return
	}
	for _, sub := range b.substates.Values() {
		sub.Update(deltaMs)
	}
	b.AbstractState.Update(deltaMs)
}

// applyBlendWeights sets every substate's weight to blendWeights[name] and
// propagates factor into its UpdateInternalWeight, so each substate's
// internal weight is factor*blendWeights[name]; it then sums the resulting
// internal weights into this state's internalWeight — the "internalWeight is
// the sum of sub-internal-weights" rule. A substate absent from
// blendWeights receives zero.
func (b *AbstractBlendState) applyBlendWeights(factor float64, blendWeights map[string]float64) {
	sum := 0.0
	for _, name := range b.substates.Keys() {
		sub, _ := b.substates.Get(name)
		sub.SetWeight(blendWeights[name], 0, nil)
		sub.UpdateInternalWeight(factor)
		sum += sub.InternalWeight()
	}
	b.internalWeight = mathutil.Clamp01(sum)
}
