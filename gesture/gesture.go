// Package gesture implements GestureFeature: plays a gesture animation on
// demand, subject to active-layer gating and a minimum-replay interval, and
// drives an infinite-loop gesture's queue forward by a hold-timer rather
// than letting it auto-advance.
package gesture

import (
	"github.com/sirupsen/logrus"

	"github.com/oxy-host/hostanim-go/animation"
	"github.com/oxy-host/hostanim-go/deferred"
	"github.com/oxy-host/hostanim-go/feature"
	"github.com/oxy-host/hostanim-go/messenger"
)

// CancelReason is the structured payload a cancelled PlayGesture Deferred
// carries, following a "reason, value" cancellation contract.
type CancelReason struct {
	Reason string
	Value  float64
}

const (
	ReasonInactive        = "inactive"
	ReasonPlaying         = "playing"
	ReasonMinimumInterval = "minimumInterval"
)

// PlayOptions configures one PlayGesture call. MinimumInterval overrides the
// feature's default when non-zero. A zero TransitionTime uses the layer's
// transition time. HoldTime is not read: the hold timer of an infinite-loop
// gesture always runs for the feature's defaultHoldTime.
type PlayOptions struct {
	HoldTime        float64
	MinimumInterval float64
	TransitionTime  float64
	Force           bool
}

type layerState struct {
	layerName       string
	currentGesture  string
	playTimerActive bool
	playTimer       float64
	holdTimer       *deferred.Deferred[struct{}]
	autoDisable     bool
}

// Feature plays gestures — named queue animations on managed layers — and
// coordinates their hold-timer-driven advance and minimum-replay gating.
type Feature struct {
	className string
	anim      *animation.Feature
	bus       *messenger.Messenger
	managed   *feature.ManagedAnimationLayer
	dependent *feature.Dependent

	layers map[string]*layerState

	defaultHoldTime        float64
	defaultMinimumInterval float64

	log *logrus.Entry
}

var _ feature.Feature = (*Feature)(nil)

// New constructs a GestureFeature driving anim over bus.
// defaultMinimumInterval is the fallback a zero PlayOptions.MinimumInterval
// uses; defaultHoldTime is the hold time of every hold timer.
func New(className string, anim *animation.Feature, bus *messenger.Messenger, defaultHoldTime, defaultMinimumInterval float64, log *logrus.Entry) *Feature {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	f := &Feature{
		className:              className,
		anim:                   anim,
		bus:                    bus,
		managed:                feature.NewManagedAnimationLayer(),
		layers:                 map[string]*layerState{},
		defaultHoldTime:        defaultHoldTime,
		defaultMinimumInterval: defaultMinimumInterval,
		log:                    log.WithField("feature", className),
	}
	f.dependent = feature.NewDependent(bus, []feature.Dependency{
		{
			FeatureName: anim.ClassName(),
			Events: feature.EventHandlers{
				"addLayer":          func(p any) { f.handleAnimEvent(p) },
				"removeLayer":       func(p any) { f.handleAnimEvent(p) },
				"renameLayer":       func(p any) { f.handleAnimEvent(p) },
				"addAnimation":      func(p any) { f.handleAnimEvent(p) },
				"removeAnimation":   func(p any) { f.handleAnimEvent(p) },
				"renameAnimation":   func(p any) { f.handleAnimEvent(p) },
				"playNextAnimation": func(p any) { f.handleNext(p) },
				"stopAnimation":     func(p any) { f.handleStopOrInterrupt(p) },
				"interruptAnimation": func(p any) { f.handleStopOrInterrupt(p) },
			},
		},
	})
	f.dependent.OnFeatureAdded(anim.ClassName())
	return f
}

// ClassName satisfies feature.Feature.
func (f *Feature) ClassName() string { return f.className }

// ManageLayer declares layerName as a gesture layer this feature drives.
// autoDisable, when true, zeroes the layer weight when its gesture
// stops/interrupts rather than leaving the layer at whatever weight the
// gesture left it.
//
// Call this before anim.AddLayer(layerName, ...): presence is tracked off
// the addLayer/addAnimation events anim emits, and an event emitted before
// this feature subscribed to it is missed.
func (f *Feature) ManageLayer(layerName string, autoDisable bool) {
	f.managed.Declare(layerName)
	f.layers[layerName] = &layerState{layerName: layerName, autoDisable: autoDisable}
}

func (f *Feature) handleAnimEvent(payload any) {
	evt, ok := payload.(animation.Event)
	if !ok {
		return
	}
	f.managed.HandleAnimationEvent(evt)
}

func (f *Feature) handleNext(payload any) {
	evt, ok := payload.(animation.NextEvent)
	if !ok {
		return
	}
	ls, ok := f.layers[evt.LayerName]
	if !ok || ls.currentGesture != evt.AnimationName {
		return
	}
	if ls.holdTimer != nil {
		ls.holdTimer.Cancel(nil)
		ls.holdTimer = nil
	}
	if !evt.CanAdvance && !evt.IsQueueEnd {
		holdTime := f.defaultHoldTime
		ls.holdTimer = newHoldTimer(holdTime, func() {
			_ = f.anim.PlayNextAnimation(evt.LayerName, evt.AnimationName)
		})
	}
}

func (f *Feature) handleStopOrInterrupt(payload any) {
	var layerName, animName string
	switch e := payload.(type) {
	case animation.StopEvent:
		layerName, animName = e.LayerName, e.AnimationName
	case animation.InterruptEvent:
		layerName, animName = e.LayerName, e.AnimationName
	default:
		return
	}
	ls, ok := f.layers[layerName]
	if !ok || ls.currentGesture != animName {
		return
	}
	ls.currentGesture = ""
	if ls.holdTimer != nil {
		ls.holdTimer.Cancel(nil)
		ls.holdTimer = nil
	}
	if ls.autoDisable {
		if layer, ok := f.anim.GetLayer(layerName); ok {
			layer.SetWeight(0)
		}
	}
}

// newHoldTimer builds a Deferred that resolves (and invokes onExpire) once
// holdTimeSeconds of Execute-driven wall time has elapsed.
func newHoldTimer(holdTimeSeconds float64, onExpire func()) *deferred.Deferred[struct{}] {
	elapsed := 0.0
	d := deferred.MustNew[struct{}](func(resolve func(struct{}), reject func(error), cancel func(any), deltaMs float64) {
		elapsed += deltaMs / 1000
		if elapsed >= holdTimeSeconds {
			resolve(struct{}{})
		}
	})
	d.SetOnResolve(func(struct{}) { onExpire() })
	return d
}

// PlayGesture plays animationName on layerName, subject to the active-layer,
// already-playing, and minimum-interval gates. On any gate failure the
// returned Deferred is cancelled with a CancelReason payload and the
// rejection is logged at warn level.
func (f *Feature) PlayGesture(layerName, animationName string, opts PlayOptions) *deferred.Deferred[animation.Signal] {
	if !f.managed.IsLayerActive(layerName) || !f.managed.IsAnimationActive(layerName, animationName) {
		return f.cancel(layerName, animationName, CancelReason{Reason: ReasonInactive})
	}

	ls, ok := f.layers[layerName]
	if !ok {
		return f.cancel(layerName, animationName, CancelReason{Reason: ReasonInactive})
	}

	if ls.currentGesture == animationName && !opts.Force {
		return f.cancel(layerName, animationName, CancelReason{Reason: ReasonPlaying})
	}

	minInterval := opts.MinimumInterval
	if minInterval == 0 {
		minInterval = f.defaultMinimumInterval
	}
	if ls.playTimerActive && ls.playTimer < minInterval && !opts.Force {
		return f.cancel(layerName, animationName, CancelReason{Reason: ReasonMinimumInterval, Value: minInterval - ls.playTimer})
	}

	ls.currentGesture = animationName
	ls.playTimerActive = true
	ls.playTimer = 0
	if ls.holdTimer != nil {
		ls.holdTimer.Cancel(nil)
		ls.holdTimer = nil
	}
	if layer, ok := f.anim.GetLayer(layerName); ok && layer.Weight() == 0 {
		layer.SetWeight(1)
	}

	transitionTime := opts.TransitionTime
	if transitionTime == 0 {
		transitionTime = -1
	}
	return f.anim.PlayAnimation(layerName, animationName, transitionTime, nil, animation.PlayCallbacks{})
}

func (f *Feature) cancel(layerName, animationName string, reason CancelReason) *deferred.Deferred[animation.Signal] {
	f.log.WithFields(logrus.Fields{
		"layer":     layerName,
		"animation": animationName,
		"reason":    reason.Reason,
		"value":     reason.Value,
	}).Warn("gesture play skipped")
	return deferred.CanceledWith[animation.Signal](reason)
}

// Update progresses each active managed layer's hold-timer and play-timer,
// provided the layer's current animation isn't paused. A paused layer's
// timers hold in place rather than advancing out from under it.
func (f *Feature) Update(deltaMs float64) {
	for _, ls := range f.layers {
		if !f.managed.IsLayerActive(ls.layerName) {
			continue
		}
		if layer, ok := f.anim.GetLayer(ls.layerName); ok {
			if cur := layer.CurrentState(); cur != nil && cur.Paused() {
				continue
			}
		}
		if ls.holdTimer != nil {
			ls.holdTimer.Execute(deltaMs)
		}
		if ls.playTimerActive {
			ls.playTimer += deltaMs / 1000
		}
	}
}

// Discard unregisters this feature's event subscriptions.
func (f *Feature) Discard() {
	f.dependent.Discard()
}
