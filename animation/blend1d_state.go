package animation

import "sort"

// Blend1dThreshold associates a substate name with a position on the
// one-dimensional blend axis. PhaseMatch marks the substate as eligible to
// drive its neighbor's normalizedTime when both are active.
type Blend1dThreshold struct {
	Name       string
	Value      float64
	PhaseMatch bool
}

// Blend1dState blends between substates arranged along a single parameter
// axis by threshold value. Exactly one or two substates are ever non-zero:
// the parameter's two bracketing thresholds, or a single extreme state when
// the parameter is at or beyond either end.
type Blend1dState struct {
	*AbstractBlendState

	thresholds []Blend1dThreshold
	value      float64
	weights    map[string]float64
}

var _ State = (*Blend1dState)(nil)

// NewBlend1dState constructs an empty Blend1dState; add substates with
// AddSubstate and AddThreshold before calling SetBlendWeight.
func NewBlend1dState(name string) *Blend1dState {
	return &Blend1dState{
		AbstractBlendState: NewAbstractBlendState("blend1d", name),
		weights:            map[string]float64{},
	}
}

// AddThreshold registers substateName at the given axis value. Returns a
// BlendGeometryKind error if value duplicates an existing threshold — the
// blend axis requires unique positions to bracket unambiguously.
func (b *Blend1dState) AddThreshold(substateName string, value float64, phaseMatch bool) error {
	for _, th := range b.thresholds {
		if th.Value == value {
			return errBlendGeometry("blend1d threshold value already in use: " + substateName)
		}
	}
	b.thresholds = append(b.thresholds, Blend1dThreshold{Name: substateName, Value: value, PhaseMatch: phaseMatch})
	sort.Slice(b.thresholds, func(i, j int) bool { return b.thresholds[i].Value < b.thresholds[j].Value })
	return nil
}

// Thresholds returns the thresholds sorted by value.
func (b *Blend1dState) Thresholds() []Blend1dThreshold {
	return append([]Blend1dThreshold(nil), b.thresholds...)
}

// BlendValue returns the most recently set blend parameter.
func (b *Blend1dState) BlendValue() float64 { return b.value }

// SetBlendWeight sets the blend parameter and recomputes which substates are
// active. If v is at or beyond either extreme threshold, that extreme
// substate alone receives weight 1. Otherwise v is bracketed by its two
// neighboring thresholds and linearly interpolated between them. Equality at
// a threshold counts as the extreme case for that threshold's substate,
// matching the reference behavior recorded as an open question in the
// design notes.
func (b *Blend1dState) SetBlendWeight(v float64) {
	b.value = v
	b.weights = computeBlend1dWeights(b.thresholds, v)
	b.syncPhaseMatch()
}

func computeBlend1dWeights(thresholds []Blend1dThreshold, v float64) map[string]float64 {
	weights := make(map[string]float64, len(thresholds))
	if len(thresholds) == 0 {
		return weights
	}
	if len(thresholds) == 1 {
		weights[thresholds[0].Name] = 1
		return weights
	}
	if v <= thresholds[0].Value {
		weights[thresholds[0].Name] = 1
		return weights
	}
	last := thresholds[len(thresholds)-1]
	if v >= last.Value {
		weights[last.Name] = 1
		return weights
	}
	for i := 0; i < len(thresholds)-1; i++ {
		lo, hi := thresholds[i], thresholds[i+1]
		if v >= lo.Value && v <= hi.Value {
			span := hi.Value - lo.Value
			t := 0.0
			if span != 0 {
				t = (v - lo.Value) / span
			}
			weights[lo.Name] = 1 - t
			weights[hi.Name] = t
			return weights
		}
	}
	return weights
}

// syncPhaseMatch copies the phase-leading active substate's normalizedTime
// into the other active substate when both are marked phase-matched: the
// higher-weight substate leads.
func (b *Blend1dState) syncPhaseMatch() {
	var active []Blend1dThreshold
	for _, th := range b.thresholds {
		if w := b.weights[th.Name]; w > 0 && th.PhaseMatch {
			active = append(active, th)
		}
	}
	if len(active) != 2 {
		return
	}
	leadName, followName := active[0].Name, active[1].Name
	if b.weights[followName] > b.weights[leadName] {
		leadName, followName = followName, leadName
	}
	lead, okLead := b.GetSubstate(leadName)
	follow, okFollow := b.GetSubstate(followName)
	if !okLead || !okFollow {
		return
	}
	leadSingle, ok1 := lead.(*SingleState)
	followSingle, ok2 := follow.(*SingleState)
	if ok1 && ok2 {
		followSingle.SetNormalizedTime(leadSingle.NormalizedTime())
	}
}

// UpdateInternalWeight propagates factor into every substate weighted by
// its current blend weight (0 for inactive substates).
func (b *Blend1dState) UpdateInternalWeight(factor float64) {
	b.applyBlendWeights(factor, b.weights)
}
