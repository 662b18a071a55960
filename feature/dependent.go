package feature

import "github.com/oxy-host/hostanim-go/messenger"

// EventHandlers maps an event name (unprefixed, e.g. "playAnimation") to the
// callback invoked when that feature emits it. Payloads are whatever
// concrete Event type the producing feature defines (see package animation's
// Event sum type); handlers type-assert to the shape they expect.
type EventHandlers map[string]func(payload any)

// Dependency declares that this feature listens to the named set of events
// from a feature of class FeatureName, once that feature is installed on
// the same host.
type Dependency struct {
	FeatureName string
	Events      EventHandlers
}

// Dependent is the FeatureDependent / AnimationFeatureDependent mixin: a
// feature declares, at construction, which other features'
// events it cares about; Dependent registers and unregisters the matching
// messenger subscriptions as those features come and go on the host,
// driven by OnFeatureAdded/OnFeatureRemoved calls made by the owning feature
// (gesture.New and gaze.New call OnFeatureAdded); HostObject does not call
// them.
type Dependent struct {
	bus        *messenger.Messenger
	deps       map[string]Dependency
	registered map[string]bool
}

// NewDependent constructs a Dependent listening on bus for the given
// dependencies, keyed by the dependency's FeatureName.
func NewDependent(bus *messenger.Messenger, deps []Dependency) *Dependent {
	byName := make(map[string]Dependency, len(deps))
	for _, d := range deps {
		byName[d.FeatureName] = d
	}
	return &Dependent{bus: bus, deps: byName, registered: map[string]bool{}}
}

// OnFeatureAdded registers this feature's declared handlers against name's
// event namespace, if name is one of the declared dependencies and is not
// already registered.
func (d *Dependent) OnFeatureAdded(name string) {
	dep, ok := d.deps[name]
	if !ok || d.registered[name] {
		return
	}
	for event, handler := range dep.Events {
		d.bus.ListenTo(name+"."+event, handler)
	}
	d.registered[name] = true
}

// OnFeatureRemoved unregisters this feature's handlers from name's event
// namespace.
func (d *Dependent) OnFeatureRemoved(name string) {
	dep, ok := d.deps[name]
	if !ok || !d.registered[name] {
		return
	}
	for event, handler := range dep.Events {
		d.bus.StopListening(name+"."+event, handler)
	}
	delete(d.registered, name)
}

// Discard unregisters every currently-registered dependency, used when the
// owning feature itself is removed from the host.
func (d *Dependent) Discard() {
	for name := range d.registered {
		d.OnFeatureRemoved(name)
	}
}

// IsDependencyActive reports whether name is currently a registered
// dependency (i.e. that feature is installed on the host).
func (d *Dependent) IsDependencyActive(name string) bool {
	return d.registered[name]
}
