package animation

import (
	"github.com/oxy-host/hostanim-go/deferred"
	"github.com/oxy-host/hostanim-go/mathutil"
)

// Layer owns a named-ordered set of states, a single active ("current")
// state, and a reserved TransitionState used to cross-fade between them.
// AnimationFeature owns an ordered stack of Layers.
type Layer struct {
	name string

	states     *orderedMap[State]
	current    State
	transition *TransitionState

	weight         float64
	blendMode      BlendMode
	transitionTime float64
	defaultEasing  mathutil.Easing

	internalWeight float64
	lastFactor     float64
}

// NewLayer constructs an empty layer with weight 1 and Linear default
// easing. mode and transitionTime configure new animations added without an
// explicit per-animation override.
func NewLayer(name string, mode BlendMode, transitionTime float64) *Layer {
	return &Layer{
		name:           name,
		states:         newOrderedMap[State](),
		transition:     NewTransitionState("__transition__"),
		weight:         1,
		blendMode:      mode,
		transitionTime: transitionTime,
		defaultEasing:  mathutil.Linear,
	}
}

func (l *Layer) Name() string         { return l.name }
func (l *Layer) SetName(name string)  { l.name = name }
func (l *Layer) Weight() float64      { return l.weight }
func (l *Layer) SetWeight(w float64)  { l.weight = mathutil.Clamp01(w) }
func (l *Layer) BlendMode() BlendMode { return l.blendMode }
func (l *Layer) TransitionTime() float64 { return l.transitionTime }
func (l *Layer) InternalWeight() float64 { return l.internalWeight }

// CurrentState returns the layer's active state (possibly the reserved
// transition state mid-cross-fade), or nil if nothing has ever played.
func (l *Layer) CurrentState() State { return l.current }

// StateNames returns the registered (non-transition) state names in
// insertion order.
func (l *Layer) StateNames() []string { return l.states.Keys() }

// GetState looks up a registered state by name.
func (l *Layer) GetState(name string) (State, bool) { return l.states.Get(name) }

// AddState registers s under name, silently renaming on collision, and
// returns the name it was actually stored under.
func (l *Layer) AddState(name string, s State) string {
	actual := uniqueName(l.states, name)
	s.SetName(actual)
	l.states.Set(actual, s)
	return actual
}

// RemoveState discards and unregisters the named state. If it was the
// current state, the layer is left with no current state. Reports whether a
// state was present.
func (l *Layer) RemoveState(name string) bool {
	s, ok := l.states.Get(name)
	if !ok {
		return false
	}
	if l.current == s {
		l.current = nil
	}
	s.Discard()
	l.states.Delete(name)
	return true
}

// RenameState moves a state's entry to newName, updating the state's own
// Name() to match.
func (l *Layer) RenameState(oldName, newName string) bool {
	if s, ok := l.states.Get(oldName); ok {
		if !l.states.Rename(oldName, newName) {
			return false
		}
		s.SetName(newName)
		return true
	}
	return false
}

// fromSet returns every registered state other than target whose weight is
// non-zero or whose weight tween is still in flight — the set a transition
// must cross-fade out of.
func (l *Layer) fromSet(target State) []State {
	var from []State
	for _, s := range l.states.Values() {
		if s == target {
			continue
		}
		if s.Weight() > 0 || s.WeightPending() {
			from = append(from, s)
		}
	}
	return from
}

// PlayAnimation implements the five-rule transition dispatch. name may
// be empty only if it names an existing state; transitionTime/easing
// override the layer defaults for this call only (pass <0 transitionTime to
// use the layer default).
func (l *Layer) PlayAnimation(name string, transitionTime float64, easing mathutil.Easing, cb PlayCallbacks) (*deferred.Deferred[Signal], error) {
	target, ok := l.states.Get(name)
	if !ok {
		return nil, errNotFound("animation", name)
	}
	if transitionTime < 0 {
		transitionTime = l.transitionTime
	}
	if easing == nil {
		easing = l.defaultEasing
	}

	transitioningToTarget := l.current == State(l.transition) && l.transition.To() == target
	if l.current == target || transitioningToTarget {
		target.Cancel()
		var finish *deferred.Deferred[Signal]
		if transitioningToTarget {
			finish = l.transition.Reset(l.transition.From(), target, transitionTime, easing, PlayCallbacks{
				OnFinish: func() {
					l.current = target
					if cb.OnFinish != nil {
						cb.OnFinish()
					}
				},
				OnError:  cb.OnError,
				OnCancel: cb.OnCancel,
			})
		} else {
			finish = target.Play(cb)
		}
		target.SetWeight(1, 0, easing)
		l.propagateWeight()
		return finish, nil
	}

	if transitionTime <= 0 {
		if l.current != nil {
			l.current.Cancel()
			l.current.SetWeight(0, 0, easing)
		}
		l.current = target
		finish := target.Play(cb)
		target.SetWeight(1, 0, easing)
		l.propagateWeight()
		return finish, nil
	}

	from := l.fromSet(target)
	// Start target's own playback now so the engine begins animating it
	// immediately; only OnNext is forwarded here since the caller's
	// OnFinish/OnError/OnCancel describe the cross-fade's completion, wired
	// below onto the transition's finish instead of target's own.
	target.Play(PlayCallbacks{OnNext: cb.OnNext})
	finish := l.transition.Reset(from, target, transitionTime, easing, PlayCallbacks{
		OnFinish: func() {
			l.current = target
			if cb.OnFinish != nil {
				cb.OnFinish()
			}
		},
		OnError:  cb.OnError,
		OnCancel: cb.OnCancel,
	})
	l.current = l.transition
	l.propagateWeight()
	return finish, nil
}

// propagateWeight recomputes internalWeight using the layer's own weight
// against whatever factor was last supplied to UpdateInternalWeight. Called
// after any change to the current state's configuration so a mid-tick
// PlayAnimation is reflected immediately rather than waiting for next tick.
func (l *Layer) propagateWeight() {
	l.UpdateInternalWeight(l.lastFactor)
}

// ResumeAnimation resumes name (or the current state if name is empty).
func (l *Layer) ResumeAnimation(name string, cb PlayCallbacks) (*deferred.Deferred[Signal], error) {
	target := l.current
	if name != "" {
		s, ok := l.states.Get(name)
		if !ok {
			return nil, errNotFound("animation", name)
		}
		target = s
	}
	if target == nil {
		return nil, errNotFound("animation", name)
	}
	return target.Resume(cb), nil
}

// StopAnimation stops the current state.
func (l *Layer) StopAnimation() {
	if l.current != nil {
		l.current.Stop()
	}
}

// PauseAnimation pauses the current state, returning whether anything was
// paused.
func (l *Layer) PauseAnimation() bool {
	if l.current == nil {
		return false
	}
	return l.current.Pause()
}

// SetStateWeight starts a tween of the named state's weight.
func (l *Layer) SetStateWeight(name string, w, seconds float64, easing mathutil.Easing) (*deferred.Deferred[Signal], error) {
	s, ok := l.states.Get(name)
	if !ok {
		return nil, errNotFound("animation", name)
	}
	return s.SetWeight(w, seconds, easing), nil
}

// UpdateInternalWeight sets this layer's internalWeight from factor and
// propagates it to the current state.
func (l *Layer) UpdateInternalWeight(factor float64) {
	l.lastFactor = factor
	l.internalWeight = mathutil.Clamp01(l.weight) * factor
	if l.current != nil {
		l.current.UpdateInternalWeight(l.internalWeight)
	}
}

// Update advances the current state by deltaMs.
func (l *Layer) Update(deltaMs float64) {
	if l.current != nil {
		l.current.Update(deltaMs)
	}
}
