package feature

import (
	"github.com/oxy-host/hostanim-go/deferred"
	"github.com/oxy-host/hostanim-go/engineadapter"
	"github.com/oxy-host/hostanim-go/hosterr"
	"github.com/oxy-host/hostanim-go/messenger"
)

// Wait is a deferred whose Execute is ticked by HostObject.Update every
// frame until it settles, independent of any installed feature. Used for
// one-off timed callbacks (e.g. "do X after 2 seconds") that don't belong to
// any particular feature's own update.
type Wait = deferred.Deferred[struct{}]

// HostObject is the update root every feature is installed on. It owns an
// optional external engine transform (owner), a unique
// id, the installed feature registry keyed by class name, and a list of
// pending waits progressed ahead of features every tick.
type HostObject struct {
	id    string
	owner engineadapter.Transform
	bus   *messenger.Messenger

	order    []string
	features map[string]Feature

	waits []*Wait

	lastUpdate float64
}

// NewHostObject constructs a HostObject identified by id, optionally backed
// by an external engine transform, emitting lifecycle events on bus.
func NewHostObject(id string, owner engineadapter.Transform, bus *messenger.Messenger) *HostObject {
	return &HostObject{
		id:       id,
		owner:    owner,
		bus:      bus,
		features: map[string]Feature{},
	}
}

// ID returns this host's identifier.
func (h *HostObject) ID() string { return h.id }

// Owner returns the external engine transform this host animates, if any.
func (h *HostObject) Owner() engineadapter.Transform { return h.owner }

// Messenger returns the bus this host and its features emit lifecycle and
// feature events on.
func (h *HostObject) Messenger() *messenger.Messenger { return h.bus }

// AddFeature installs f under its ClassName, replacing (and discarding) any
// feature previously installed under the same name, and emits onAddFeature.
func (h *HostObject) AddFeature(f Feature) {
	name := f.ClassName()
	if existing, ok := h.features[name]; ok {
		existing.Discard()
	} else {
		h.order = append(h.order, name)
	}
	h.features[name] = f
	h.bus.Emit("onAddFeature", name)
}

// RemoveFeature discards and uninstalls the named feature. Fails with
// NotFoundKind if it isn't installed.
func (h *HostObject) RemoveFeature(name string) error {
	f, ok := h.features[name]
	if !ok {
		return hosterr.New(hosterr.NotFoundKind, "feature not installed: "+name)
	}
	f.Discard()
	delete(h.features, name)
	for i, n := range h.order {
		if n == name {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	h.bus.Emit("onRemoveFeature", name)
	return nil
}

// GetFeature looks up an installed feature by class name.
func (h *HostObject) GetFeature(name string) (Feature, bool) {
	f, ok := h.features[name]
	return f, ok
}

// FeatureNames returns installed feature class names in install order.
func (h *HostObject) FeatureNames() []string {
	return append([]string(nil), h.order...)
}

// AddWait registers d to be ticked ahead of every feature on each Update
// call until it settles, after which it is dropped from the list
// automatically.
func (h *HostObject) AddWait(d *Wait) {
	h.waits = append(h.waits, d)
}

// Update progresses every pending wait, then every installed feature in
// insertion order, by deltaMs, and finally emits onUpdate. Waits that
// settle during this call are pruned from the list before returning.
func (h *HostObject) Update(deltaMs float64) {
	h.lastUpdate += deltaMs

	for _, w := range h.waits {
		w.Execute(deltaMs)
	}
	remaining := h.waits[:0]
	for _, w := range h.waits {
		if w.Pending() {
			remaining = append(remaining, w)
		}
	}
	h.waits = remaining

	for _, name := range h.order {
		h.features[name].Update(deltaMs)
	}

	h.bus.Emit("onUpdate", deltaMs)
}

// Discard discards every installed feature and clears the registry.
func (h *HostObject) Discard() {
	for _, name := range h.order {
		h.features[name].Discard()
	}
	h.order = nil
	h.features = map[string]Feature{}
	h.waits = nil
}
