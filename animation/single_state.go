package animation

import (
	"github.com/oxy-host/hostanim-go/deferred"
	"github.com/oxy-host/hostanim-go/engineadapter"
	"github.com/oxy-host/hostanim-go/mathutil"
)

// BlendMode is Override (consumes weight budget from layers below) or
// Additive (does not).
type BlendMode int

const (
	Override BlendMode = iota
	Additive
)

// SingleState plays one external animation clip. normalizedTime binds the
// external engine's playhead; timeScale can be changed with SetTimeScale and
// loopCount is fixed at construction, both independently of the underlying
// clip. Neither is tweened.
type SingleState struct {
	*AbstractState

	clip      engineadapter.Clip
	player    engineadapter.Player
	animating engineadapter.Animatable

	timeScale float64
	loopCount int // -1 == infinite
	blendMode BlendMode

	normalizedTime float64
}

var _ State = (*SingleState)(nil)

// InfiniteLoop marks a SingleState (or queue entry) as looping forever.
const InfiniteLoop = -1

// SingleStateOption configures a SingleState at construction.
type SingleStateOption func(*SingleState)

func WithTimeScale(scale float64) SingleStateOption {
	return func(s *SingleState) { s.timeScale = scale }
}

func WithLoopCount(count int) SingleStateOption {
	return func(s *SingleState) { s.loopCount = count }
}

func WithBlendMode(mode BlendMode) SingleStateOption {
	return func(s *SingleState) { s.blendMode = mode }
}

// NewSingleState constructs a SingleState playing clip via player.
func NewSingleState(name string, clip engineadapter.Clip, player engineadapter.Player, opts ...SingleStateOption) *SingleState {
	s := &SingleState{
		AbstractState: NewAbstractState("single", name),
		clip:          clip,
		player:        player,
		timeScale:     1,
		loopCount:     InfiniteLoop,
		blendMode:     Override,
	}
	s.rewind = func() { s.SetNormalizedTime(0) }
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SingleState) BlendMode() BlendMode { return s.blendMode }
func (s *SingleState) LoopCount() int       { return s.loopCount }
func (s *SingleState) TimeScale() float64   { return s.timeScale }
func (s *SingleState) SetTimeScale(v float64) {
	s.timeScale = v
	if s.animating != nil {
		s.animating.SetSpeedRatio(v)
	}
}

// NormalizedTime is this clip's playhead in [0,1].
func (s *SingleState) NormalizedTime() float64 { return s.normalizedTime }

// SetNormalizedTime binds the external engine's playhead to t.
func (s *SingleState) SetNormalizedTime(t float64) {
	s.normalizedTime = mathutil.Clamp01(t)
	if s.animating != nil {
		from, to := s.clip.From(), s.clip.To()
		s.animating.GoToFrame(mathutil.Lerp(from, to, s.normalizedTime))
	}
}

func (s *SingleState) Play(cb PlayCallbacks) *deferred.Deferred[Signal] {
	finish := s.AbstractState.Play(cb)
	s.normalizedTime = 0

	loop := s.loopCount == InfiniteLoop || s.loopCount > 1
	onFinish := func() { s.playDeferred.Resolve(sig) }
	onLoop := func() {}
	s.animating = s.player.Play(s.clip, s.clip.From(), s.clip.To(), loop, s.internalWeight, onFinish, onLoop, s.blendMode == Additive)
	s.animating.SetSpeedRatio(s.timeScale)

	if !loop {
		// A single, non-looping play resolves synchronously through the
		// external engine's onFinish callback above; nothing further to do
		// here, the Deferred will settle whenever the engine calls back.
		_ = finish
	}
	return finish
}

func (s *SingleState) Update(deltaMs float64) {
	s.AbstractState.Update(deltaMs)
	if s.paused || s.animating == nil {
		return
	}
	from, to := s.clip.From(), s.clip.To()
	if to > from {
		s.normalizedTime = mathutil.Clamp01((s.animating.MasterFrame() - from) / (to - from))
	}
}

func (s *SingleState) UpdateInternalWeight(factor float64) {
	s.AbstractState.UpdateInternalWeight(factor)
	if s.animating != nil {
		s.animating.SetWeight(s.internalWeight)
	}
}

func (s *SingleState) Discard() {
	if s.discarded {
		return
	}
	if s.animating != nil {
		s.animating.Stop()
		s.animating = nil
	}
	s.AbstractState.Discard()
}
