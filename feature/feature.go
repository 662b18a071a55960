// Package feature implements the host-side feature registry: the Feature
// interface every behavior (animation, gesture, gaze) satisfies, the
// HostObject that owns and ticks installed features in insertion order, and
// the composable dependency mixins that let one feature observe another's
// events without a hard import-time coupling.
package feature

// Feature is the minimal contract HostObject drives: a class name used to
// key the feature in the host's registry and to prefix its own emitted
// events, an update hook called once per host tick, and a discard hook
// called when the feature is removed or the host itself is torn down.
//
// Concrete features compose additional behavior via the mixins in this
// package (Dependent, ManagedAnimationLayer) rather than through
// inheritance, standing in for mixin-via-multiple-inheritance.
type Feature interface {
	ClassName() string
	Update(deltaMs float64)
	Discard()
}
