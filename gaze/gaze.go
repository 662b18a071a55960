// Package gaze implements PointOfInterestFeature: the saccade scheduler,
// gaze-angle computation against a tracked target, and the blink trigger on
// large gaze deltas.
package gaze

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/oxy-host/hostanim-go/animation"
	"github.com/oxy-host/hostanim-go/engineadapter"
	"github.com/oxy-host/hostanim-go/feature"
	"github.com/oxy-host/hostanim-go/mathutil"
	"github.com/oxy-host/hostanim-go/messenger"
)

// SaccadeTarget names the social-triangle anchor a macro-saccade last
// settled on, driving the cyclic transition rule in setMacroSaccade.
type SaccadeTarget int

const (
	EyeCenter SaccadeTarget = iota
	EyeLeft
	EyeRight
	Mouth
)

// BlinkThreshold is the minimum one-tick gaze angle delta, in degrees, that
// triggers a blink on every active blink layer.
const BlinkThreshold = 35.0

// TrackingConfig pairs a reference transform with the local axis it
// considers forward, used to express a target direction as angles relative
// to that reference's own facing.
type TrackingConfig struct {
	Reference   engineadapter.Transform
	ForwardAxis Axis
}

// lookLayer is the per-managed-layer saccade and damping state backing a
// single point-of-interest gaze layer.
type lookLayer struct {
	layerName     string
	animationName string
	hasSaccade    bool

	maxHSpeed, maxVSpeed float64
	hDuration, vDuration float64
	hVelocity, vVelocity float64

	microSaccadeTimer float64
	macroSaccadeTimer float64
	microSaccade      mathutil.V2
	macroSaccade      mathutil.V2

	saccadeTarget SaccadeTarget
	prevAngles    mathutil.V2
	hasPrevAngles bool
}

// Feature is PointOfInterestFeature: it tracks an optional world-space
// target, computes gaze angles against a set of tracking references, drives
// one or more Blend2dState "look" animations toward those angles with
// saccade jitter layered on top, and triggers blink layers on large jumps.
type Feature struct {
	className string
	anim      *animation.Feature
	bus       *messenger.Messenger
	managed   *feature.ManagedAnimationLayer
	dependent *feature.Dependent

	trackingConfigs []TrackingConfig
	target          engineadapter.Transform
	hasPrevTarget   bool
	prevTargetPos   mathutil.V3
	isTargetMoving  bool

	lookLayers  map[string]*lookLayer
	blinkLayers []string

	log *logrus.Entry
}

var _ feature.Feature = (*Feature)(nil)

// New constructs a PointOfInterestFeature driving anim over bus, tracking
// target via trackingConfigs.
func New(className string, anim *animation.Feature, bus *messenger.Messenger, trackingConfigs []TrackingConfig, log *logrus.Entry) *Feature {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	f := &Feature{
		className:       className,
		anim:            anim,
		bus:             bus,
		managed:         feature.NewManagedAnimationLayer(),
		trackingConfigs: trackingConfigs,
		lookLayers:      map[string]*lookLayer{},
		log:             log.WithField("feature", className),
	}
	f.dependent = feature.NewDependent(bus, []feature.Dependency{
		{
			FeatureName: anim.ClassName(),
			Events: feature.EventHandlers{
				"addLayer":        func(p any) { f.handleAnimEvent(p) },
				"removeLayer":     func(p any) { f.handleAnimEvent(p) },
				"renameLayer":     func(p any) { f.handleAnimEvent(p) },
				"addAnimation":    func(p any) { f.handleAnimEvent(p) },
				"removeAnimation": func(p any) { f.handleAnimEvent(p) },
				"renameAnimation": func(p any) { f.handleAnimEvent(p) },
			},
		},
	})
	f.dependent.OnFeatureAdded(anim.ClassName())
	return f
}

func (f *Feature) handleAnimEvent(payload any) {
	evt, ok := payload.(animation.Event)
	if !ok {
		return
	}
	f.managed.HandleAnimationEvent(evt)
}

// ClassName satisfies feature.Feature.
func (f *Feature) ClassName() string { return f.className }

// SetTarget changes (or clears, with nil) the world-space point of interest.
func (f *Feature) SetTarget(target engineadapter.Transform) {
	f.target = target
	f.hasPrevTarget = false
}

// ManageLookLayer declares layerName/animationName as a gaze-driven
// Blend2dState this feature updates every tick.
//
// Call this before anim.AddLayer(layerName, ...): presence is tracked off
// the addLayer/addAnimation events anim emits, and an event emitted before
// this feature subscribed to it is missed.
func (f *Feature) ManageLookLayer(layerName, animationName string, hasSaccade bool) {
	f.managed.Declare(layerName)
	ll := &lookLayer{layerName: layerName, animationName: animationName, hasSaccade: hasSaccade, saccadeTarget: EyeCenter}
	if hasSaccade {
		f.setMicroSaccade(ll)
		f.setMacroSaccade(ll)
	}
	f.lookLayers[layerName] = ll
}

// ManageBlinkLayer declares layerName as a layer to play a blink animation
// on whenever a tracked gaze angle jumps by BlinkThreshold or more.
//
// Call this before anim.AddLayer(layerName, ...), for the same reason as
// ManageLookLayer.
func (f *Feature) ManageBlinkLayer(layerName string) {
	f.managed.Declare(layerName)
	f.blinkLayers = append(f.blinkLayers, layerName)
}

// Update implements the four-step per-tick pipeline: angle computation,
// saccade scheduling, blend-target application, and blink triggering.
func (f *Feature) Update(deltaMs float64) {
	deltaSec := deltaMs / 1000

	angles, hasAngles := f.computeAngles()

	for _, ll := range f.lookLayers {
		if ll.hasSaccade {
			ll.microSaccadeTimer -= deltaSec
			ll.macroSaccadeTimer -= deltaSec
			if ll.microSaccadeTimer <= 0 {
				f.setMicroSaccade(ll)
			}
			if ll.macroSaccadeTimer <= 0 {
				f.setMacroSaccade(ll)
			}
		}
	}

	var maxDelta float64
	anyDelta := false
	for name, ll := range f.lookLayers {
		if !f.managed.IsLayerActive(name) || !f.managed.IsAnimationActive(name, ll.animationName) {
			continue
		}
		target := angles
		if !hasAngles {
			target = mathutil.V2{}
		}
		if ll.hasSaccade {
			// Reference behavior doubles the macro-saccade amplitude before
			// damping it — preserved verbatim per the design notes' open
			// question rather than "fixed" to the presumably-intended value.
			doubledH := ll.macroSaccade.X + ll.macroSaccade.X
			doubledV := ll.macroSaccade.Y + ll.macroSaccade.Y
			dampedH, velH := mathutil.DampValue(0, doubledH, ll.hVelocity, deltaSec, ll.hDuration, ll.maxHSpeed)
			dampedV, velV := mathutil.DampValue(0, doubledV, ll.vVelocity, deltaSec, ll.vDuration, ll.maxVSpeed)
			ll.hVelocity, ll.vVelocity = velH, velV
			target.X += dampedH + ll.microSaccade.X
			target.Y += dampedV + ll.microSaccade.Y
		}

		current := f.currentBlendWeight(name, ll.animationName)
		maxStep := deltaSec * math.Max(ll.maxHSpeed, ll.maxVSpeed)
		next := approach(current, target, maxStep)
		f.setBlendWeight(name, ll.animationName, next)

		if hasAngles && ll.hasPrevAngles {
			d := math.Max(math.Abs(angles.X-ll.prevAngles.X), math.Abs(angles.Y-ll.prevAngles.Y))
			if d > maxDelta {
				maxDelta = d
				anyDelta = true
			}
		}
		if hasAngles {
			ll.prevAngles = angles
			ll.hasPrevAngles = true
		}
	}

	if f.isTargetMoving && anyDelta && maxDelta >= BlinkThreshold {
		for _, layerName := range f.blinkLayers {
			if f.managed.IsLayerActive(layerName) {
				f.anim.PlayAnimation(layerName, "blink", -1, nil, animation.PlayCallbacks{})
			}
		}
	}
}

func approach(current, target mathutil.V2, maxStep float64) mathutil.V2 {
	dx, dy := target.X-current.X, target.Y-current.Y
	dist := math.Hypot(dx, dy)
	if dist <= maxStep || dist == 0 {
		return target
	}
	t := maxStep / dist
	return mathutil.V2{X: current.X + dx*t, Y: current.Y + dy*t}
}

func (f *Feature) currentBlendWeight(layerName, animName string) mathutil.V2 {
	layer, ok := f.anim.GetLayer(layerName)
	if !ok {
		return mathutil.V2{}
	}
	state, ok := layer.GetState(animName)
	if !ok {
		return mathutil.V2{}
	}
	b2, ok := state.(*animation.Blend2dState)
	if !ok {
		return mathutil.V2{}
	}
	return b2.BlendPoint()
}

func (f *Feature) setBlendWeight(layerName, animName string, v mathutil.V2) {
	layer, ok := f.anim.GetLayer(layerName)
	if !ok {
		return
	}
	state, ok := layer.GetState(animName)
	if !ok {
		return
	}
	if b2, ok := state.(*animation.Blend2dState); ok {
		b2.SetBlendWeight(v)
	}
}

// computeAngles returns the aggregate gaze angle {h,v} toward the current
// target across every tracking config, and whether a target is set at all.
// isTargetMoving is updated as a side effect.
func (f *Feature) computeAngles() (mathutil.V2, bool) {
	if f.target == nil || len(f.trackingConfigs) == 0 {
		f.isTargetMoving = false
		return mathutil.V2{}, false
	}
	targetPos := v3(f.target.WorldPosition())
	if f.hasPrevTarget {
		f.isTargetMoving = targetPos != f.prevTargetPos
	} else {
		f.isTargetMoving = false
	}
	f.prevTargetPos = targetPos
	f.hasPrevTarget = true

	var sumH, sumV float64
	for _, cfg := range f.trackingConfigs {
		refPos := v3(cfg.Reference.WorldPosition())
		targetDir := sub(targetPos, refPos)
		targetAngles := mathutil.CartesianToSpherical(targetDir.X, targetDir.Y, targetDir.Z).ToBlendAngles()

		forward := direction(cfg.Reference.WorldMatrix(), cfg.ForwardAxis)
		forwardAngles := mathutil.CartesianToSpherical(forward.X, forward.Y, forward.Z).ToBlendAngles()

		sumH += targetAngles.H - forwardAngles.H
		sumV += targetAngles.V - forwardAngles.V
	}
	n := float64(len(f.trackingConfigs))
	return mathutil.V2{X: sumH / n, Y: sumV / n}, true
}

// setMicroSaccade samples a new micro-saccade offset and timer. Focused
// (target set) ranges are tighter than idle ranges.
func (f *Feature) setMicroSaccade(ll *lookLayer) {
	lo, hi := 0.01, 0.30
	if f.target != nil {
		hi = 0.15
	}
	ll.microSaccade = mathutil.V2{X: randRange(lo, hi), Y: randRange(lo, hi)}
	ll.microSaccadeTimer = randRange(0.8, 1.75)
}

// setMacroSaccade samples a new macro-saccade amplitude, derives its speed
// and duration, resets the macro timer, and cycles the social-triangle
// target when a point of interest is focused.
func (f *Feature) setMacroSaccade(ll *lookLayer) {
	var h, v float64
	var macroLo, macroHi float64

	if f.target == nil {
		h = randRange(-35, 35)
		v = randRange(-30, 25)
		macroLo, macroHi = 5.0, 8.0
	} else {
		next := nextSaccadeTarget(ll.saccadeTarget)
		ll.saccadeTarget = next
		switch next {
		case Mouth:
			h, v = 0, -15
			macroLo, macroHi = 0.2, 0.75
		case EyeLeft:
			h, v = -5, 5
			macroLo, macroHi = 1.5, 4.0
		case EyeRight:
			h, v = 5, 5
			macroLo, macroHi = 1.5, 4.0
		default:
			h, v = 0, 0
			macroLo, macroHi = 5.0, 8.0
		}
	}

	ll.macroSaccade = mathutil.V2{X: h, Y: v}
	ll.macroSaccadeTimer = randRange(macroLo, macroHi)
	ll.microSaccadeTimer = randRange(0.6, 1.3125)

	amplitude := math.Hypot(h, v)
	ll.maxHSpeed = 473 * (1 - math.Exp(-amplitude/7.8))
	ll.maxVSpeed = ll.maxHSpeed
	ll.hDuration = 0.025 + 0.00235*math.Abs(amplitude)
	ll.vDuration = ll.hDuration
}

// nextSaccadeTarget implements the social-triangle cycle: from eye-center
// to one of the two eyes; from an eye to the opposite eye with probability
// 0.75, else the mouth; from the mouth to one eye with even odds.
func nextSaccadeTarget(current SaccadeTarget) SaccadeTarget {
	switch current {
	case EyeCenter:
		if rand.Float64() < 0.5 {
			return EyeLeft
		}
		return EyeRight
	case EyeLeft:
		if rand.Float64() < 0.75 {
			return EyeRight
		}
		return Mouth
	case EyeRight:
		if rand.Float64() < 0.75 {
			return EyeLeft
		}
		return Mouth
	case Mouth:
		if rand.Float64() < 0.5 {
			return EyeLeft
		}
		return EyeRight
	default:
		return EyeCenter
	}
}

func randRange(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rand.Float64()*(hi-lo)
}

// Discard unregisters this feature's event subscriptions.
func (f *Feature) Discard() {
	f.dependent.Discard()
}
