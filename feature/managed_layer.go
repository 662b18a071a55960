package feature

import "github.com/oxy-host/hostanim-go/animation"

// managedLayerState is the per-layer state machine: a managed entry is
// always declared, and is present exactly when the backing
// AnimationFeature currently carries a layer of that name.
type managedLayerState struct {
	name    string
	present bool
}

// ManagedAnimationLayer tracks a declared set of AnimationFeature layer (and
// per-layer animation) names, marking each present or absent as add/remove/
// rename events arrive from the AnimationFeature this mixin is wired to via
// Dependent. GestureFeature and PointOfInterestFeature both embed one to
// know whether the layer they want to drive currently exists.
type ManagedAnimationLayer struct {
	order   []string
	layers  map[string]*managedLayerState
	anims   map[string]map[string]bool // layerName -> animName -> present
}

// NewManagedAnimationLayer constructs an empty mixin. Call Declare for each
// layer name the owning feature wants to manage.
func NewManagedAnimationLayer() *ManagedAnimationLayer {
	return &ManagedAnimationLayer{
		layers: map[string]*managedLayerState{},
		anims:  map[string]map[string]bool{},
	}
}

// Declare registers layerName as managed (initially absent) unless already
// declared.
func (m *ManagedAnimationLayer) Declare(layerName string) {
	if _, ok := m.layers[layerName]; ok {
		return
	}
	m.order = append(m.order, layerName)
	m.layers[layerName] = &managedLayerState{name: layerName}
	m.anims[layerName] = map[string]bool{}
}

// IsLayerActive reports whether layerName is declared and currently present.
func (m *ManagedAnimationLayer) IsLayerActive(layerName string) bool {
	s, ok := m.layers[layerName]
	return ok && s.present
}

// IsAnimationActive reports whether animName is currently present on
// layerName.
func (m *ManagedAnimationLayer) IsAnimationActive(layerName, animName string) bool {
	anims, ok := m.anims[layerName]
	return ok && anims[animName]
}

// DeclaredLayers returns the declared layer names in declaration order.
func (m *ManagedAnimationLayer) DeclaredLayers() []string {
	return append([]string(nil), m.order...)
}

// HandleAnimationEvent updates managed presence in response to one of
// animation.Event's concrete types, as emitted by the AnimationFeature this
// mixin is subscribed to. Call this from the handler a Dependent registers
// for each relevant event name.
func (m *ManagedAnimationLayer) HandleAnimationEvent(evt animation.Event) {
	switch e := evt.(type) {
	case animation.AddLayerEvent:
		if s, ok := m.layers[e.Name]; ok {
			s.present = true
		}
	case animation.RemoveLayerEvent:
		if s, ok := m.layers[e.Name]; ok {
			s.present = false
		}
	case animation.RenameLayerEvent:
		if s, ok := m.layers[e.OldName]; ok {
			delete(m.layers, e.OldName)
			s.name = e.NewName
			m.layers[e.NewName] = s
			m.anims[e.NewName] = m.anims[e.OldName]
			delete(m.anims, e.OldName)
			for i, n := range m.order {
				if n == e.OldName {
					m.order[i] = e.NewName
				}
			}
		}
	case animation.AddAnimationEvent:
		if anims, ok := m.anims[e.LayerName]; ok {
			anims[e.AnimationName] = true
		}
	case animation.RemovedAnimationEvent:
		if anims, ok := m.anims[e.LayerName]; ok {
			anims[e.AnimationName] = false
		}
	case animation.RenameAnimationEvent:
		if anims, ok := m.anims[e.LayerName]; ok {
			if active, had := anims[e.OldName]; had {
				delete(anims, e.OldName)
				anims[e.NewName] = active
			}
		}
	}
}
