package animation

// FreeBlendState plays every substate simultaneously, each weighted by its
// own Weight(). Unlike Blend1d/Blend2d, there is no blend parameter and no
// bracketing rule: every substate is always active. Per the
// updateInternalWeight rule, if the substate weights sum to more than 1 the
// incoming factor is renormalized by that sum first, so the substates'
// internal weights never collectively exceed factor.
type FreeBlendState struct {
	*AbstractBlendState
}

var _ State = (*FreeBlendState)(nil)

// NewFreeBlendState constructs an empty FreeBlendState.
func NewFreeBlendState(name string) *FreeBlendState {
	return &FreeBlendState{AbstractBlendState: NewAbstractBlendState("freeBlend", name)}
}

// UpdateInternalWeight renormalizes factor by max(sum of substate weights, 1)
// before propagating factor*weight to each substate.
func (f *FreeBlendState) UpdateInternalWeight(factor float64) {
	sumWeights := 0.0
	for _, sub := range f.Substates() {
		sumWeights += sub.Weight()
	}
	denom := sumWeights
	if denom < 1 {
		denom = 1
	}
	norm := factor / denom

	sum := 0.0
	for _, sub := range f.Substates() {
		sub.UpdateInternalWeight(norm)
		sum += sub.InternalWeight()
	}
	if sum > 1 {
		sum = 1
	}
	f.internalWeight = sum
}
