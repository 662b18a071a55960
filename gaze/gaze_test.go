package gaze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxy-host/hostanim-go/animation"
	"github.com/oxy-host/hostanim-go/engineadapter"
	"github.com/oxy-host/hostanim-go/gaze"
	"github.com/oxy-host/hostanim-go/mathutil"
	"github.com/oxy-host/hostanim-go/messenger"
)

type fakeClip struct{ from, to float64 }

func (c *fakeClip) From() float64                                        { return c.from }
func (c *fakeClip) To() float64                                          { return c.to }
func (c *fakeClip) Normalize(from, to float64)                           { c.from, c.to = from, to }
func (c *fakeClip) TargetedAnimations() []engineadapter.TargetedAnimation { return nil }
func (c *fakeClip) MakeAdditive()                                        {}

type fakeAnimatable struct{ weight float64 }

func (a *fakeAnimatable) MasterFrame() float64  { return 0 }
func (a *fakeAnimatable) GoToFrame(float64)     {}
func (a *fakeAnimatable) Weight() float64       { return a.weight }
func (a *fakeAnimatable) SetWeight(w float64)   { a.weight = w }
func (a *fakeAnimatable) SetSpeedRatio(float64) {}
func (a *fakeAnimatable) Stop()                 {}

type fakePlayer struct{}

func (p *fakePlayer) Play(clip engineadapter.Clip, from, to float64, loop bool, startWeight float64, onFinish, onLoop func(), additive bool) engineadapter.Animatable {
	return &fakeAnimatable{weight: startWeight}
}

type fakeTransform struct {
	pos    [3]float64
	matrix [16]float64
}

func (t *fakeTransform) WorldPosition() [3]float64 { return t.pos }
func (t *fakeTransform) WorldMatrix() [16]float64  { return t.matrix }

func identity() [16]float64 {
	return [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

func newGazeLayer(t *testing.T, anim *animation.Feature, layerName string) {
	t.Helper()
	sub := func(name string, p mathutil.V2) animation.BlendThresholdOptions {
		return animation.BlendThresholdOptions{
			SubStateOptions: animation.SubStateOptions{Name: name, Clip: &fakeClip{from: 0, to: 1}, Player: &fakePlayer{}, LoopCount: animation.InfiniteLoop},
			Point2d:         p,
		}
	}
	_, err := anim.AddAnimation(layerName, "look", animation.AddAnimationOptions{
		Type: animation.Blend2dType,
		Thresholds: []animation.BlendThresholdOptions{
			sub("center", mathutil.V2{X: 0, Y: 0}),
			sub("up", mathutil.V2{X: 0, Y: 1}),
			sub("right", mathutil.V2{X: 1, Y: 0}),
		},
	})
	require.NoError(t, err)
}

func newBlinkLayer(t *testing.T, anim *animation.Feature, layerName string) {
	t.Helper()
	_, err := anim.AddAnimation(layerName, "blink", animation.AddAnimationOptions{
		Type:      animation.SingleType,
		SubStates: []animation.SubStateOptions{{Name: "blink", Clip: &fakeClip{from: 0, to: 1}, Player: &fakePlayer{}}},
	})
	require.NoError(t, err)
}

func TestFeatureUpdateWithNoTargetLeavesBlendAtOrigin(t *testing.T) {
	bus := messenger.New()
	anim := animation.NewFeature("AnimationFeature", bus)

	ref := &fakeTransform{matrix: identity()}
	g := gaze.New("PointOfInterestFeature", anim, bus, []gaze.TrackingConfig{{Reference: ref, ForwardAxis: gaze.AxisZ}}, nil)
	g.ManageLookLayer("Gaze", "look", false)

	layer := anim.AddLayer("Gaze", animation.Additive, 0)
	newGazeLayer(t, anim, layer)

	g.Update(16)
	g.Update(16)

	l, ok := anim.GetLayer(layer)
	require.True(t, ok)
	s, ok := l.GetState("look")
	require.True(t, ok)
	b2 := s.(*animation.Blend2dState)
	assert.InDelta(t, 0, b2.BlendPoint().X, 1e-9)
	assert.InDelta(t, 0, b2.BlendPoint().Y, 1e-9)
}

func TestFeatureUpdateTriggersBlinkOnLargeGazeJump(t *testing.T) {
	bus := messenger.New()
	anim := animation.NewFeature("AnimationFeature", bus)

	ref := &fakeTransform{matrix: identity()}
	g := gaze.New("PointOfInterestFeature", anim, bus, []gaze.TrackingConfig{{Reference: ref, ForwardAxis: gaze.AxisZ}}, nil)
	g.ManageLookLayer("Gaze", "look", false)
	g.ManageBlinkLayer("Blink")

	layer := anim.AddLayer("Gaze", animation.Additive, 0)
	newGazeLayer(t, anim, layer)
	blinkLayer := anim.AddLayer("Blink", animation.Additive, 0)
	newBlinkLayer(t, anim, blinkLayer)

	var played []string
	bus.ListenTo("AnimationFeature.playAnimation", func(p any) {
		evt := p.(animation.PlayEvent)
		played = append(played, evt.AnimationName)
	})

	target := &fakeTransform{pos: [3]float64{0, 0, 1}}
	g.SetTarget(target)
	g.Update(16)

	target.pos = [3]float64{5, 0, 1}
	g.Update(16)

	assert.Contains(t, played, "blink")
}

func TestSetTargetNilClearsTracking(t *testing.T) {
	bus := messenger.New()
	anim := animation.NewFeature("AnimationFeature", bus)

	ref := &fakeTransform{matrix: identity()}
	g := gaze.New("PointOfInterestFeature", anim, bus, []gaze.TrackingConfig{{Reference: ref, ForwardAxis: gaze.AxisZ}}, nil)
	g.ManageLookLayer("Gaze", "look", false)

	layer := anim.AddLayer("Gaze", animation.Additive, 0)
	newGazeLayer(t, anim, layer)

	target := &fakeTransform{pos: [3]float64{1, 0, 1}}
	g.SetTarget(target)
	g.Update(16)

	g.SetTarget(nil)
	assert.NotPanics(t, func() { g.Update(16) })
}
