package animation

import (
	"github.com/oxy-host/hostanim-go/deferred"
	"github.com/oxy-host/hostanim-go/engineadapter"
	"github.com/oxy-host/hostanim-go/mathutil"
	"github.com/oxy-host/hostanim-go/messenger"
)

// StateType selects which State variant AddAnimation constructs.
type StateType int

const (
	SingleType StateType = iota
	FreeBlendType
	Blend1dType
	Blend2dType
	QueueType
	RandomAnimationType
)

// SubStateOptions describes one clip-backed SingleState to be created as
// either a top-level animation or a member of a blend/queue container.
type SubStateOptions struct {
	Name      string
	Clip      engineadapter.Clip
	Player    engineadapter.Player
	TimeScale float64
	LoopCount int
}

// BlendThresholdOptions pairs a SubStateOptions with its blend-axis
// position: Value1d for Blend1dState, Point2d for Blend2dState.
type BlendThresholdOptions struct {
	SubStateOptions
	Value1d    float64
	Point2d    mathutil.V2
	PhaseMatch bool
}

// AddAnimationOptions configures AddAnimation. Exactly the option slice
// matching Type is consulted; BlendMode defaults to the owning layer's blend
// mode when left at its zero value (Override). There is no transition-time
// option: PlayAnimation uses the layer's transitionTime unless a call passes
// its own.
type AddAnimationOptions struct {
	Type        StateType
	BlendMode   BlendMode
	SubStates   []SubStateOptions
	Thresholds  []BlendThresholdOptions
	AutoAdvance bool
	PlayInterval float64
}

// Feature is the top-level animation composition engine: an ordered stack
// of Layers, a shared messenger for event emission, and the top-down
// internal-weight pass that masks lower layers under opaque override weight.
type Feature struct {
	className string
	bus       *messenger.Messenger

	layers *orderedMap[*Layer]
}

// NewFeature constructs an empty Feature that emits events on bus.
func NewFeature(className string, bus *messenger.Messenger) *Feature {
	return &Feature{className: className, bus: bus, layers: newOrderedMap[*Layer]()}
}

// ClassName returns the name this feature prefixes its emitted events with,
// and the key HostObject installs it under.
func (f *Feature) ClassName() string { return f.className }

// Discard discards every layer's current state and every registered state,
// releasing engine resources. Satisfies the feature.Feature interface.
func (f *Feature) Discard() {
	for _, layer := range f.layers.Values() {
		for _, name := range layer.StateNames() {
			if s, ok := layer.GetState(name); ok {
				s.Discard()
			}
		}
	}
}

func (f *Feature) topic(name string) string { return f.className + "." + name }

func (f *Feature) emit(name string, evt Event) { f.bus.Emit(f.topic(name), evt) }

// LayerNames returns layer names bottom-to-top (insertion order).
func (f *Feature) LayerNames() []string { return f.layers.Keys() }

// GetLayer looks up a layer by name.
func (f *Feature) GetLayer(name string) (*Layer, bool) { return f.layers.Get(name) }

// AddLayer appends a new layer, silently renaming on collision.
func (f *Feature) AddLayer(name string, mode BlendMode, transitionTime float64) string {
	layer := NewLayer(name, mode, transitionTime)
	actual := uniqueName(f.layers, name)
	layer.SetName(actual)
	f.layers.Set(actual, layer)
	f.emit(TopicAddLayer, AddLayerEvent{Name: actual, Index: f.layers.Len() - 1})
	return actual
}

// RemoveLayer removes the named layer. Fails with NotFoundKind if unknown.
func (f *Feature) RemoveLayer(name string) error {
	idx := indexOf(f.layers.Keys(), name)
	if idx < 0 {
		return errNotFound("layer", name)
	}
	f.layers.Delete(name)
	f.emit(TopicRemoveLayer, RemoveLayerEvent{Name: name, Index: idx})
	return nil
}

// RenameLayer renames a layer in place, preserving its stack position.
// Fails with NotFoundKind if unknown.
func (f *Feature) RenameLayer(oldName, newName string) error {
	layer, ok := f.layers.Get(oldName)
	if !ok {
		return errNotFound("layer", oldName)
	}
	actual := uniqueName(f.layers, newName)
	if !f.layers.Rename(oldName, actual) {
		return errNotFound("layer", oldName)
	}
	layer.SetName(actual)
	f.emit(TopicRenameLayer, RenameLayerEvent{OldName: oldName, NewName: actual})
	return nil
}

func indexOf(keys []string, name string) int {
	for i, k := range keys {
		if k == name {
			return i
		}
	}
	return -1
}

// AddAnimation constructs a State of the requested type from opts, inheriting
// the layer's BlendMode where the option is left at zero, and
// registers it on layerName. Fails with NotFoundKind if the layer is unknown.
func (f *Feature) AddAnimation(layerName, animName string, opts AddAnimationOptions) (string, error) {
	layer, ok := f.layers.Get(layerName)
	if !ok {
		return "", errNotFound("layer", layerName)
	}

	mode := opts.BlendMode
	if mode == Override {
		mode = layer.BlendMode()
	}

	var state State
	switch opts.Type {
	case SingleType:
		if len(opts.SubStates) != 1 {
			return "", errArgument("single animation requires exactly one substate option")
		}
		state = buildSingleState(animName, opts.SubStates[0], mode)
	case FreeBlendType:
		fb := NewFreeBlendState(animName)
		for _, so := range opts.SubStates {
			fb.AddSubstate(so.Name, buildSingleState(so.Name, so, mode))
		}
		state = fb
	case Blend1dType:
		b1 := NewBlend1dState(animName)
		for _, th := range opts.Thresholds {
			sub := buildSingleState(th.Name, th.SubStateOptions, mode)
			b1.AddSubstate(th.Name, sub)
			if err := b1.AddThreshold(th.Name, th.Value1d, th.PhaseMatch); err != nil {
				return "", err
			}
		}
		state = b1
	case Blend2dType:
		b2 := NewBlend2dState(animName)
		for _, th := range opts.Thresholds {
			sub := buildSingleState(th.Name, th.SubStateOptions, mode)
			b2.AddSubstate(th.Name, sub)
			b2.AddThreshold(th.Name, th.Point2d)
		}
		state = b2
	case QueueType:
		q := NewQueueState(animName, opts.AutoAdvance)
		for _, so := range opts.SubStates {
			q.AddSubstate(so.Name, buildSingleState(so.Name, so, mode))
		}
		state = q
	case RandomAnimationType:
		r := NewRandomAnimationState(animName, opts.PlayInterval)
		for _, so := range opts.SubStates {
			r.AddSubstate(so.Name, buildSingleState(so.Name, so, mode))
		}
		state = r
	default:
		return "", errArgument("unknown animation state type")
	}

	actual := layer.AddState(animName, state)
	f.emit(TopicAddAnimation, AddAnimationEvent{LayerName: layerName, AnimationName: actual})
	return actual, nil
}

func buildSingleState(name string, so SubStateOptions, mode BlendMode) *SingleState {
	opts := []SingleStateOption{WithBlendMode(mode)}
	if so.TimeScale != 0 {
		opts = append(opts, WithTimeScale(so.TimeScale))
	}
	if so.LoopCount != 0 {
		opts = append(opts, WithLoopCount(so.LoopCount))
	} else {
		opts = append(opts, WithLoopCount(InfiniteLoop))
	}
	return NewSingleState(name, so.Clip, so.Player, opts...)
}

// RemoveAnimation discards and unregisters an animation. Fails with
// NotFoundKind if the layer or animation is unknown.
func (f *Feature) RemoveAnimation(layerName, animName string) error {
	layer, ok := f.layers.Get(layerName)
	if !ok {
		return errNotFound("layer", layerName)
	}
	if !layer.RemoveState(animName) {
		return errNotFound("animation", animName)
	}
	f.emit(TopicRemoveAnimation, RemovedAnimationEvent{LayerName: layerName, AnimationName: animName})
	return nil
}

// RenameAnimation renames an animation within its layer.
func (f *Feature) RenameAnimation(layerName, oldName, newName string) error {
	layer, ok := f.layers.Get(layerName)
	if !ok {
		return errNotFound("layer", layerName)
	}
	if !layer.RenameState(oldName, newName) {
		return errNotFound("animation", oldName)
	}
	f.emit(TopicRenameAnimation, RenameAnimationEvent{LayerName: layerName, OldName: oldName, NewName: newName})
	return nil
}

// PlayAnimation plays animName on layerName. Returns a rejected Deferred
// carrying NotFoundKind if the layer or animation is unknown, rather than
// failing synchronously, so callers can chain off the result uniformly.
func (f *Feature) PlayAnimation(layerName, animName string, transitionTime float64, easing mathutil.Easing, cb PlayCallbacks) *deferred.Deferred[Signal] {
	layer, ok := f.layers.Get(layerName)
	if !ok {
		return deferred.RejectedWith[Signal](errNotFound("layer", layerName))
	}
	wasCurrent := layer.CurrentState()
	finish, err := layer.PlayAnimation(animName, transitionTime, easing, cb)
	if err != nil {
		return deferred.RejectedWith[Signal](err)
	}
	if wasCurrent != nil && wasCurrent != layer.CurrentState() {
		f.emit(TopicInterrupt, InterruptEvent{LayerName: layerName, AnimationName: animName})
	}
	f.emit(TopicPlay, PlayEvent{LayerName: layerName, AnimationName: animName})
	return finish
}

// PlayNextAnimation advances a QueueState-backed animation to its next
// substate, emitting the "next" event describing the new queue head.
func (f *Feature) PlayNextAnimation(layerName, animName string) error {
	layer, ok := f.layers.Get(layerName)
	if !ok {
		return errNotFound("layer", layerName)
	}
	state, ok := layer.GetState(animName)
	if !ok {
		return errNotFound("animation", animName)
	}
	q, ok := state.(*QueueState)
	if !ok {
		return errInvalidState("animation is not a queue: " + animName)
	}
	q.PlayNext()
	names := q.SubstateNames()
	idx := q.CurrentIndex()
	isQueueEnd := idx >= len(names)-1
	nextName := ""
	if idx >= 0 && idx < len(names) {
		nextName = names[idx]
	}
	canAdvance := !isQueueEnd
	if sub, ok := q.Current(); ok {
		canAdvance = !isInfiniteLoop(sub) && !isQueueEnd
	}
	f.emit(TopicNext, NextEvent{
		LayerName:           layerName,
		AnimationName:       animName,
		NextQueuedAnimation: nextName,
		CanAdvance:          canAdvance,
		IsQueueEnd:          isQueueEnd,
	})
	return nil
}

// PauseAnimation pauses layerName's current animation.
func (f *Feature) PauseAnimation(layerName string) error {
	layer, ok := f.layers.Get(layerName)
	if !ok {
		return errNotFound("layer", layerName)
	}
	layer.PauseAnimation()
	f.emit(TopicPause, PauseEvent{LayerName: layerName})
	return nil
}

// ResumeAnimation resumes layerName's named (or current) animation.
func (f *Feature) ResumeAnimation(layerName, animName string, cb PlayCallbacks) (*deferred.Deferred[Signal], error) {
	layer, ok := f.layers.Get(layerName)
	if !ok {
		return nil, errNotFound("layer", layerName)
	}
	finish, err := layer.ResumeAnimation(animName, cb)
	if err != nil {
		return nil, err
	}
	f.emit(TopicResume, ResumeEvent{LayerName: layerName, AnimationName: animName})
	return finish, nil
}

// StopAnimation stops layerName's current animation.
func (f *Feature) StopAnimation(layerName string) error {
	layer, ok := f.layers.Get(layerName)
	if !ok {
		return errNotFound("layer", layerName)
	}
	animName := ""
	if cur := layer.CurrentState(); cur != nil {
		animName = cur.Name()
	}
	layer.StopAnimation()
	f.emit(TopicStop, StopEvent{LayerName: layerName, AnimationName: animName})
	return nil
}

// Update recomputes every layer's internal weight top-down, then advances
// every layer's current state by deltaMs. The weight pass always completes
// before any state update for the tick.
func (f *Feature) Update(deltaMs float64) {
	f.updateInternalWeights()
	for _, layer := range f.layers.Values() {
		layer.Update(deltaMs)
	}
}

// updateInternalWeights walks the layer stack from the top (end of the
// insertion-order list) down, maintaining a shared weight budget that each
// Override layer consumes from: budget *= (1 - current_state.weight) after
// that layer's own internal-weight update is applied. The multiplier must
// use the state's raw, layer-relative Weight(), not its InternalWeight() —
// InternalWeight() is already budget-scaled by this same pass, so feeding it
// back in would double-apply the incoming budget at every level below the
// top.
func (f *Feature) updateInternalWeights() {
	budget := 1.0
	layers := f.layers.Values()
	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		layer.UpdateInternalWeight(budget)
		if layer.BlendMode() == Override {
			stateWeight := 0.0
			if cur := layer.CurrentState(); cur != nil {
				stateWeight = cur.Weight()
			}
			budget *= 1 - stateWeight
		}
	}
}
