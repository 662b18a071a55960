package gesture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxy-host/hostanim-go/animation"
	"github.com/oxy-host/hostanim-go/deferred"
	"github.com/oxy-host/hostanim-go/engineadapter"
	"github.com/oxy-host/hostanim-go/gesture"
	"github.com/oxy-host/hostanim-go/messenger"
)

type fakeClip struct{ from, to float64 }

func (c *fakeClip) From() float64                                     { return c.from }
func (c *fakeClip) To() float64                                       { return c.to }
func (c *fakeClip) Normalize(from, to float64)                        { c.from, c.to = from, to }
func (c *fakeClip) TargetedAnimations() []engineadapter.TargetedAnimation { return nil }
func (c *fakeClip) MakeAdditive()                                     {}

type fakeAnimatable struct {
	frame, weight float64
}

func (a *fakeAnimatable) MasterFrame() float64  { return a.frame }
func (a *fakeAnimatable) GoToFrame(f float64)   { a.frame = f }
func (a *fakeAnimatable) Weight() float64       { return a.weight }
func (a *fakeAnimatable) SetWeight(w float64)   { a.weight = w }
func (a *fakeAnimatable) SetSpeedRatio(float64) {}
func (a *fakeAnimatable) Stop()                 {}

type fakePlayer struct{ onFinish []func() }

func (p *fakePlayer) Play(clip engineadapter.Clip, from, to float64, loop bool, startWeight float64, onFinish, onLoop func(), additive bool) engineadapter.Animatable {
	if onFinish != nil {
		p.onFinish = append(p.onFinish, onFinish)
	}
	return &fakeAnimatable{weight: startWeight}
}

func newGestureQueue(t *testing.T, anim *animation.Feature, layer, name string) {
	t.Helper()
	_, err := anim.AddAnimation(layer, name, animation.AddAnimationOptions{
		Type:        animation.QueueType,
		AutoAdvance: false,
		SubStates: []animation.SubStateOptions{
			{Name: "loop", Clip: &fakeClip{from: 0, to: 1}, Player: &fakePlayer{}, LoopCount: animation.InfiniteLoop},
		},
	})
	require.NoError(t, err)
}

func newTestFeature(t *testing.T) (*gesture.Feature, *animation.Feature, string) {
	t.Helper()
	bus := messenger.New()
	anim := animation.NewFeature("AnimationFeature", bus)

	g := gesture.New("GestureFeature", anim, bus, 2.0, 1.0, nil)
	g.ManageLayer("Gesture", true)

	layer := anim.AddLayer("Gesture", animation.Additive, 0)
	newGestureQueue(t, anim, layer, "wave")
	return g, anim, layer
}

func TestPlayGestureRejectsWhenLayerInactive(t *testing.T) {
	bus := messenger.New()
	anim := animation.NewFeature("AnimationFeature", bus)
	g := gesture.New("GestureFeature", anim, bus, 2.0, 1.0, nil)
	g.ManageLayer("Gesture", true)

	finish := g.PlayGesture("Gesture", "wave", gesture.PlayOptions{})

	assert.Equal(t, deferred.Canceled, finish.Status())
	reason := finish.CancelReason().(gesture.CancelReason)
	assert.Equal(t, gesture.ReasonInactive, reason.Reason)
}

func TestPlayGestureStartsAnimationWhenGatesPass(t *testing.T) {
	g, _, layer := newTestFeature(t)

	finish := g.PlayGesture(layer, "wave", gesture.PlayOptions{})

	assert.NotEqual(t, deferred.Canceled, finish.Status())
}

func TestPlayGestureRejectsReplayOfAlreadyPlayingGesture(t *testing.T) {
	g, _, layer := newTestFeature(t)

	g.PlayGesture(layer, "wave", gesture.PlayOptions{})
	finish := g.PlayGesture(layer, "wave", gesture.PlayOptions{})

	assert.Equal(t, deferred.Canceled, finish.Status())
	reason := finish.CancelReason().(gesture.CancelReason)
	assert.Equal(t, gesture.ReasonPlaying, reason.Reason)
}

func TestPlayGestureForceOverridesAlreadyPlayingGate(t *testing.T) {
	g, _, layer := newTestFeature(t)

	g.PlayGesture(layer, "wave", gesture.PlayOptions{})
	finish := g.PlayGesture(layer, "wave", gesture.PlayOptions{Force: true})

	assert.NotEqual(t, deferred.Canceled, finish.Status())
}

func TestUpdateDoesNotAdvanceTimersWhilePaused(t *testing.T) {
	bus := messenger.New()
	anim := animation.NewFeature("AnimationFeature", bus)

	g := gesture.New("GestureFeature", anim, bus, 2.0, 10.0, nil)
	g.ManageLayer("Gesture", true)

	layer := anim.AddLayer("Gesture", animation.Additive, 0)
	newGestureQueue(t, anim, layer, "wave")
	newGestureQueue(t, anim, layer, "point")

	g.PlayGesture(layer, "wave", gesture.PlayOptions{})
	require.NoError(t, anim.PauseAnimation(layer))

	g.Update(20000)

	finish := g.PlayGesture(layer, "point", gesture.PlayOptions{})

	assert.Equal(t, deferred.Canceled, finish.Status())
	reason := finish.CancelReason().(gesture.CancelReason)
	assert.Equal(t, gesture.ReasonMinimumInterval, reason.Reason)
}

func TestPlayGestureRejectsBelowMinimumInterval(t *testing.T) {
	bus := messenger.New()
	anim := animation.NewFeature("AnimationFeature", bus)

	g := gesture.New("GestureFeature", anim, bus, 2.0, 10.0, nil)
	g.ManageLayer("Gesture", true)

	layer := anim.AddLayer("Gesture", animation.Additive, 0)
	newGestureQueue(t, anim, layer, "wave")
	newGestureQueue(t, anim, layer, "point")

	g.PlayGesture(layer, "wave", gesture.PlayOptions{})
	g.Update(16)
	finish := g.PlayGesture(layer, "point", gesture.PlayOptions{})

	assert.Equal(t, deferred.Canceled, finish.Status())
	reason := finish.CancelReason().(gesture.CancelReason)
	assert.Equal(t, gesture.ReasonMinimumInterval, reason.Reason)
}
