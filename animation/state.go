package animation

import (
	"github.com/oxy-host/hostanim-go/deferred"
	"github.com/oxy-host/hostanim-go/mathutil"
)

// NextInfo is the payload QueueState reports through a play's onNext
// callback.
type NextInfo struct {
	Name        string
	CanAdvance  bool
	IsQueueEnd  bool
}

// PlayCallbacks are the callbacks captured by a Play or Resume call. Any
// field may be nil.
type PlayCallbacks struct {
	OnFinish func()
	OnError  func(error)
	OnCancel func(any)
	OnNext   func(NextInfo)
}

// State is the interface every animation state variant satisfies: Single,
// Transition, FreeBlend, Blend1d, Blend2d, Queue, RandomAnimation.
type State interface {
	// Kind is this state's type tag, set at construction — used to prefix
	// events and identify the variant without runtime reflection.
	Kind() string

	Name() string
	SetName(name string)

	// Weight is the user-assigned weight in [0,1].
	Weight() float64

	// SetWeight starts (or, if seconds<=0, immediately completes) a tween of
	// the user weight to w over seconds using easing.
	SetWeight(w, seconds float64, easing mathutil.Easing) *deferred.Deferred[Signal]

	// InternalWeight is weight * the parent-propagated factor.
	InternalWeight() float64

	// WeightPending reports whether a weight tween is currently in flight,
	// independent of the weight's current value — a state animating from 0
	// upward is still part of a layer's "active" from-set.
	WeightPending() bool

	Paused() bool

	// Play resets timing and deferreds, and returns the finish Deferred.
	Play(cb PlayCallbacks) *deferred.Deferred[Signal]

	// Pause pauses the state, returning whether anything was paused.
	Pause() bool

	// Resume un-pauses, or — if the previous play already finished —
	// starts a fresh play preserving the most recently captured callbacks.
	Resume(cb PlayCallbacks) *deferred.Deferred[Signal]

	// Cancel cancels all pending deferreds.
	Cancel()

	// Stop resolves all pending deferreds and rewinds to the start.
	Stop()

	// Discard cancels and releases engine resources. Idempotent.
	Discard()

	Discarded() bool

	// UpdateInternalWeight propagates factor down from the owning layer.
	UpdateInternalWeight(factor float64)

	// Update advances this state's own deferreds (and, for container
	// states, its substates) by deltaMs. No-op while paused.
	Update(deltaMs float64)
}

// AbstractState implements the lifecycle shared by every state variant.
// Concrete states embed *AbstractState and override Play, Stop,
// UpdateInternalWeight, and Update as needed — the embedding pattern
// stands in for a class hierarchy built on composition instead of inheritance.
type AbstractState struct {
	kind string
	name string

	weight         float64
	internalWeight float64
	paused         bool
	discarded      bool

	playDeferred   *deferred.Deferred[Signal]
	weightDeferred *deferred.Deferred[Signal]
	finishDeferred *deferred.Deferred[Signal]

	onFinish func()
	onError  func(error)
	onCancel func(any)
	onNext   func(NextInfo)

	// rewind is called by Stop to reset subtype-specific playback position
	// (e.g. SingleState.normalizedTime). nil is a valid no-op rewind.
	rewind func()
}

// NewAbstractState constructs the shared base for a state named name of the
// given kind tag.
func NewAbstractState(kind, name string) *AbstractState {
	s := &AbstractState{kind: kind, name: name, weight: 0, internalWeight: 0}
	s.playDeferred = deferred.ResolvedWith(sig)
	s.weightDeferred = deferred.ResolvedWith(sig)
	s.finishDeferred = deferred.ResolvedWith(sig)
	return s
}

func (s *AbstractState) Kind() string { return s.kind }
func (s *AbstractState) Name() string { return s.name }
func (s *AbstractState) SetName(name string) { s.name = name }

func (s *AbstractState) Weight() float64 { return s.weight }

func (s *AbstractState) SetWeight(w, seconds float64, easing mathutil.Easing) *deferred.Deferred[Signal] {
	w = mathutil.Clamp01(w)
	from := s.weight
	s.weightDeferred = newWeightTween(from, w, seconds, easing, func(v float64) {
		s.weight = v
	})
	return s.weightDeferred
}

func (s *AbstractState) InternalWeight() float64 { return s.internalWeight }

func (s *AbstractState) WeightPending() bool { return s.weightDeferred.Pending() }

func (s *AbstractState) Paused() bool { return s.paused }

func (s *AbstractState) Discarded() bool { return s.discarded }

// Play resets timing and deferreds, capturing cb for use by this play (and
// by any Resume that starts fresh after this play settles).
func (s *AbstractState) Play(cb PlayCallbacks) *deferred.Deferred[Signal] {
	s.paused = false
	s.captureCallbacks(cb)
	s.resetDeferreds()
	return s.finishDeferred
}

func (s *AbstractState) captureCallbacks(cb PlayCallbacks) {
	if cb.OnFinish != nil {
		s.onFinish = cb.OnFinish
	}
	if cb.OnError != nil {
		s.onError = cb.OnError
	}
	if cb.OnCancel != nil {
		s.onCancel = cb.OnCancel
	}
	if cb.OnNext != nil {
		s.onNext = cb.OnNext
	}
}

// resetDeferreds builds fresh play/weight/finish deferreds, wiring finish's
// settlement back to the captured onFinish/onError/onCancel callbacks.
func (s *AbstractState) resetDeferreds() {
	s.playDeferred = deferred.MustNew[Signal](nil)
	s.weightDeferred = deferred.ResolvedWith(sig)
	s.finishDeferred = deferred.All([]*deferred.Deferred[Signal]{s.playDeferred, s.weightDeferred})
	s.finishDeferred.SetOnResolve(func(Signal) {
		if s.onFinish != nil {
			s.onFinish()
		}
	})
	s.finishDeferred.SetOnReject(func(err error) {
		if s.onError != nil {
			s.onError(err)
		}
	})
	s.finishDeferred.SetOnCancel(func(reason any) {
		if s.onCancel != nil {
			s.onCancel(reason)
		}
	})
}

// composeFinish installs play and weight as this state's play/weight
// deferreds and derives finish as their conjunction, wiring finish's
// settlement to the captured onFinish/onError/onCancel callbacks. Shared by
// every composite state (TransitionState, the blend states) whose finish
// condition is "every member deferred has settled" rather than the single
// playDeferred/weightDeferred pair resetDeferreds builds.
func (s *AbstractState) composeFinish(play, weight *deferred.Deferred[Signal]) *deferred.Deferred[Signal] {
	s.playDeferred = play
	s.weightDeferred = weight
	s.finishDeferred = deferred.All([]*deferred.Deferred[Signal]{play, weight})
	s.finishDeferred.SetOnResolve(func(Signal) {
		if s.onFinish != nil {
			s.onFinish()
		}
	})
	s.finishDeferred.SetOnReject(func(err error) {
		if s.onError != nil {
			s.onError(err)
		}
	})
	s.finishDeferred.SetOnCancel(func(reason any) {
		if s.onCancel != nil {
			s.onCancel(reason)
		}
	})
	return s.finishDeferred
}

func (s *AbstractState) Pause() bool {
	if s.paused {
		return false
	}
	s.paused = true
	return true
}

func (s *AbstractState) Resume(cb PlayCallbacks) *deferred.Deferred[Signal] {
	s.captureCallbacks(cb)
	if s.playDeferred.Pending() {
		s.paused = false
		return s.finishDeferred
	}
	return s.Play(PlayCallbacks{})
}

func (s *AbstractState) Cancel() {
	s.playDeferred.Cancel(nil)
	s.weightDeferred.Cancel(nil)
	s.finishDeferred.Cancel(nil)
}

func (s *AbstractState) Stop() {
	s.playDeferred.Resolve(sig)
	s.weightDeferred.Resolve(sig)
	s.finishDeferred.Resolve(sig)
	s.paused = false
	if s.rewind != nil {
		s.rewind()
	}
}

func (s *AbstractState) Discard() {
	if s.discarded {
		return
	}
	s.Cancel()
	s.discarded = true
}

func (s *AbstractState) UpdateInternalWeight(factor float64) {
	s.internalWeight = mathutil.Clamp01(s.weight) * factor
}

func (s *AbstractState) Update(deltaMs float64) {
	if s.paused {
		return
	}
	s.playDeferred.Execute(deltaMs)
	s.weightDeferred.Execute(deltaMs)
}
