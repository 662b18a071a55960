package animation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxy-host/hostanim-go/animation"
	"github.com/oxy-host/hostanim-go/mathutil"
	"github.com/oxy-host/hostanim-go/messenger"
)

func TestFeatureRemoveLayerUnknownErrors(t *testing.T) {
	f := animation.NewFeature("AnimationFeature", messenger.New())
	assert.Error(t, f.RemoveLayer("missing"))
}

func TestFeatureRemoveLayerEmitsEvent(t *testing.T) {
	bus := messenger.New()
	f := animation.NewFeature("AnimationFeature", bus)
	layer := f.AddLayer("base", animation.Override, 0)

	var evt animation.RemoveLayerEvent
	bus.ListenTo("AnimationFeature.removeLayer", func(p any) { evt = p.(animation.RemoveLayerEvent) })

	require.NoError(t, f.RemoveLayer(layer))
	assert.Equal(t, layer, evt.Name)
	_, ok := f.GetLayer(layer)
	assert.False(t, ok)
}

func TestFeatureRenameLayerPreservesStackPosition(t *testing.T) {
	bus := messenger.New()
	f := animation.NewFeature("AnimationFeature", bus)
	f.AddLayer("base", animation.Override, 0)
	top := f.AddLayer("top", animation.Override, 0)

	require.NoError(t, f.RenameLayer(top, "overlay"))

	names := f.LayerNames()
	require.Len(t, names, 2)
	assert.Equal(t, "overlay", names[1])
}

func TestFeatureRenameLayerUnknownErrors(t *testing.T) {
	f := animation.NewFeature("AnimationFeature", messenger.New())
	assert.Error(t, f.RenameLayer("missing", "x"))
}

func TestFeatureRemoveAnimationEmitsEvent(t *testing.T) {
	bus := messenger.New()
	f := animation.NewFeature("AnimationFeature", bus)
	layer := f.AddLayer("base", animation.Override, 0)
	_, err := f.AddAnimation(layer, "idle", animation.AddAnimationOptions{
		Type:      animation.SingleType,
		SubStates: []animation.SubStateOptions{newSingleSubStateOptions("idle")},
	})
	require.NoError(t, err)

	var evt animation.RemovedAnimationEvent
	bus.ListenTo("AnimationFeature.removeAnimation", func(p any) { evt = p.(animation.RemovedAnimationEvent) })

	require.NoError(t, f.RemoveAnimation(layer, "idle"))
	assert.Equal(t, "idle", evt.AnimationName)
}

func TestFeatureRemoveAnimationUnknownLayerErrors(t *testing.T) {
	f := animation.NewFeature("AnimationFeature", messenger.New())
	assert.Error(t, f.RemoveAnimation("missing", "idle"))
}

func TestFeatureRenameAnimationEmitsEvent(t *testing.T) {
	bus := messenger.New()
	f := animation.NewFeature("AnimationFeature", bus)
	layer := f.AddLayer("base", animation.Override, 0)
	_, err := f.AddAnimation(layer, "idle", animation.AddAnimationOptions{
		Type:      animation.SingleType,
		SubStates: []animation.SubStateOptions{newSingleSubStateOptions("idle")},
	})
	require.NoError(t, err)

	var evt animation.RenameAnimationEvent
	bus.ListenTo("AnimationFeature.renameAnimation", func(p any) { evt = p.(animation.RenameAnimationEvent) })

	require.NoError(t, f.RenameAnimation(layer, "idle", "resting"))
	assert.Equal(t, "resting", evt.NewName)
	l, _ := f.GetLayer(layer)
	_, ok := l.GetState("resting")
	assert.True(t, ok)
}

func newQueueSubStateOptions(name string) animation.SubStateOptions {
	return animation.SubStateOptions{Name: name, Clip: newFakeClip(0, 1), Player: newFakePlayer(), LoopCount: animation.InfiniteLoop}
}

func TestFeaturePlayNextAnimationEmitsNextEvent(t *testing.T) {
	bus := messenger.New()
	f := animation.NewFeature("AnimationFeature", bus)
	layer := f.AddLayer("gesture", animation.Additive, 0)
	_, err := f.AddAnimation(layer, "wave", animation.AddAnimationOptions{
		Type: animation.QueueType,
		SubStates: []animation.SubStateOptions{
			newQueueSubStateOptions("loopA"),
			newQueueSubStateOptions("loopB"),
		},
	})
	require.NoError(t, err)
	f.PlayAnimation(layer, "wave", 0, mathutil.Linear, animation.PlayCallbacks{})

	var evt animation.NextEvent
	bus.ListenTo("AnimationFeature.playNextAnimation", func(p any) { evt = p.(animation.NextEvent) })

	require.NoError(t, f.PlayNextAnimation(layer, "wave"))
	assert.Equal(t, "loopB", evt.NextQueuedAnimation)
}

func TestFeaturePlayNextAnimationRejectsNonQueueState(t *testing.T) {
	f := animation.NewFeature("AnimationFeature", messenger.New())
	layer := f.AddLayer("base", animation.Override, 0)
	_, err := f.AddAnimation(layer, "idle", animation.AddAnimationOptions{
		Type:      animation.SingleType,
		SubStates: []animation.SubStateOptions{newSingleSubStateOptions("idle")},
	})
	require.NoError(t, err)

	assert.Error(t, f.PlayNextAnimation(layer, "idle"))
}

func TestFeaturePauseAndResumeAnimation(t *testing.T) {
	bus := messenger.New()
	f := animation.NewFeature("AnimationFeature", bus)
	layer := f.AddLayer("base", animation.Override, 0)
	_, err := f.AddAnimation(layer, "idle", animation.AddAnimationOptions{
		Type:      animation.SingleType,
		SubStates: []animation.SubStateOptions{newSingleSubStateOptions("idle")},
	})
	require.NoError(t, err)
	f.PlayAnimation(layer, "idle", 0, mathutil.Linear, animation.PlayCallbacks{})

	require.NoError(t, f.PauseAnimation(layer))
	l, _ := f.GetLayer(layer)
	assert.True(t, l.CurrentState().Paused())

	finish, err := f.ResumeAnimation(layer, "idle", animation.PlayCallbacks{})
	require.NoError(t, err)
	require.NotNil(t, finish)
	assert.False(t, l.CurrentState().Paused())
}

func TestFeatureStopAnimationEmitsEvent(t *testing.T) {
	bus := messenger.New()
	f := animation.NewFeature("AnimationFeature", bus)
	layer := f.AddLayer("base", animation.Override, 0)
	_, err := f.AddAnimation(layer, "idle", animation.AddAnimationOptions{
		Type:      animation.SingleType,
		SubStates: []animation.SubStateOptions{newSingleSubStateOptions("idle")},
	})
	require.NoError(t, err)
	f.PlayAnimation(layer, "idle", 0, mathutil.Linear, animation.PlayCallbacks{})

	var evt animation.StopEvent
	bus.ListenTo("AnimationFeature.stopAnimation", func(p any) { evt = p.(animation.StopEvent) })

	require.NoError(t, f.StopAnimation(layer))
	assert.Equal(t, "idle", evt.AnimationName)
}
