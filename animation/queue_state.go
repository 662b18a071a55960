package animation

import "github.com/oxy-host/hostanim-go/deferred"

// QueueState plays a named-ordered list of substates one at a time. Each
// substate's finish advances an iterator to the next; a substate that never
// finishes on its own (an infinite-loop SingleState) blocks automatic
// advance and must be advanced explicitly via PlayNext.
type QueueState struct {
	*AbstractState

	substates   *orderedMap[State]
	index       int
	autoAdvance bool
	done        bool
}

var _ State = (*QueueState)(nil)

// NewQueueState constructs an empty QueueState. When autoAdvance is false,
// every advance (even past a finite substate) requires an explicit PlayNext
// call — matching a gesture queue driven entirely by a hold-timer.
func NewQueueState(name string, autoAdvance bool) *QueueState {
	return &QueueState{
		AbstractState: NewAbstractState("queue", name),
		substates:     newOrderedMap[State](),
		autoAdvance:   autoAdvance,
		done:          true,
	}
}

// AddSubstate appends s under name, silently renaming on collision, and
// returns the name it was actually stored under.
func (q *QueueState) AddSubstate(name string, s State) string {
	actual := uniqueName(q.substates, name)
	s.SetName(actual)
	q.substates.Set(actual, s)
	return actual
}

// SubstateNames returns the queue order.
func (q *QueueState) SubstateNames() []string { return q.substates.Keys() }

// Done reports whether the queue has played past its last substate.
func (q *QueueState) Done() bool { return q.done }

// CurrentIndex is the iterator's current position.
func (q *QueueState) CurrentIndex() int { return q.index }

// Current returns the substate currently playing, if any.
func (q *QueueState) Current() (State, bool) {
	names := q.substates.Keys()
	if q.index < 0 || q.index >= len(names) {
		var zero State
		return zero, false
	}
	return q.substates.Get(names[q.index])
}

func isInfiniteLoop(s State) bool {
	type looper interface{ LoopCount() int }
	if l, ok := s.(looper); ok {
		return l.LoopCount() == InfiniteLoop
	}
	return false
}

// Play resets the iterator to the first substate, emits a "next" event via
// the onNext callback, and plays it.
func (q *QueueState) Play(cb PlayCallbacks) *deferred.Deferred[Signal] {
	q.paused = false
	q.captureCallbacks(cb)
	q.index = 0
	q.done = false

	play := deferred.MustNew[Signal](nil)
	finish := q.composeFinish(play, deferred.ResolvedWith(sig))
	q.playCurrent()
	return finish
}

func (q *QueueState) playCurrent() {
	names := q.substates.Keys()
	if q.index >= len(names) {
		q.finishQueue()
		return
	}
	name := names[q.index]
	sub, _ := q.substates.Get(name)
	isQueueEnd := q.index == len(names)-1
	canAdvance := !isInfiniteLoop(sub) && !isQueueEnd
	if q.onNext != nil {
		q.onNext(NextInfo{Name: name, CanAdvance: canAdvance, IsQueueEnd: isQueueEnd})
	}
	sub.SetWeight(1, 0, nil)
	sub.Play(PlayCallbacks{OnFinish: q.onSubstateFinish})
}

func (q *QueueState) onSubstateFinish() {
	if !q.autoAdvance {
		return
	}
	q.PlayNext()
}

// PlayNext advances the iterator to the next substate and plays it, or
// settles the queue as finished if the previous substate was the last. Safe
// to call whether or not autoAdvance is set — this is the entry point
// external code (e.g. a gesture hold-timer) uses to drive a queue whose
// current substate loops forever.
func (q *QueueState) PlayNext() {
	if q.done {
		return
	}
	q.index++
	q.playCurrent()
}

func (q *QueueState) finishQueue() {
	q.done = true
	q.playDeferred.Resolve(sig)
}

// Pause pauses the current substate along with the queue itself.
func (q *QueueState) Pause() bool {
	paused := q.AbstractState.Pause()
	if sub, ok := q.Current(); ok && sub.Pause() {
		paused = true
	}
	return paused
}

// Resume un-pauses the queue and its current substate.
func (q *QueueState) Resume(cb PlayCallbacks) *deferred.Deferred[Signal] {
	q.captureCallbacks(cb)
	if q.playDeferred.Pending() {
		q.paused = false
		if sub, ok := q.Current(); ok {
			sub.Resume(PlayCallbacks{})
		}
		return q.finishDeferred
	}
	return q.Play(PlayCallbacks{})
}

// Cancel cancels the queue's own deferreds and the current substate's.
func (q *QueueState) Cancel() {
	q.AbstractState.Cancel()
	if sub, ok := q.Current(); ok {
		sub.Cancel()
	}
}

// Stop stops every substate and rewinds the iterator to the start.
func (q *QueueState) Stop() {
	q.AbstractState.Stop()
	for _, sub := range q.substates.Values() {
		sub.Stop()
	}
	q.index = 0
	q.done = true
}

// Discard discards every substate before discarding the queue itself.
func (q *QueueState) Discard() {
	if q.discarded {
		return
	}
	for _, sub := range q.substates.Values() {
		sub.Discard()
	}
	q.AbstractState.Discard()
}

// Update advances only the current substate, matching the "one active
// substate at a time" queue semantics.
func (q *QueueState) Update(deltaMs float64) {
	if q.paused {
		return
	}
	if sub, ok := q.Current(); ok {
		sub.Update(deltaMs)
	}
	q.AbstractState.Update(deltaMs)
}

// UpdateInternalWeight gives the current substate the full factor and every
// other substate zero.
func (q *QueueState) UpdateInternalWeight(factor float64) {
	sum := 0.0
	cur, hasCur := q.Current()
	for _, sub := range q.substates.Values() {
		if hasCur && sub == cur {
			sub.UpdateInternalWeight(factor)
			sum += sub.InternalWeight()
		} else {
			sub.UpdateInternalWeight(0)
		}
	}
	s := sum
	if s > 1 {
		s = 1
	}
	q.internalWeight = s
}
