package deferred_test

import (
	"errors"
	"testing"

	"github.com/oxy-host/hostanim-go/deferred"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIsIdempotent(t *testing.T) {
	var calls int
	d, err := deferred.New[int](nil, deferred.OnResolve(func(v int) { calls++ }))
	require.NoError(t, err)

	d.Resolve(1)
	d.Resolve(2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, deferred.Resolved, d.Status())
	assert.Equal(t, 1, d.Value())
}

func TestRejectAfterResolveIsNoop(t *testing.T) {
	d := deferred.MustNew[int](nil)
	d.Resolve(42)
	d.Reject(errors.New("too late"))

	assert.Equal(t, deferred.Resolved, d.Status())
	assert.Equal(t, 42, d.Value())
}

func TestCancelInvokesOnCancelExactlyOnce(t *testing.T) {
	var calls int
	var lastReason any
	d := deferred.MustNew[int](nil, deferred.OnCancel(func(reason any) {
		calls++
		lastReason = reason
	}))

	d.Cancel("stopped")
	d.Cancel("stopped again")

	assert.Equal(t, 1, calls)
	assert.Equal(t, "stopped", lastReason)
	assert.Equal(t, deferred.Canceled, d.Status())
}

func TestExecuteIsNoopOnceResolved(t *testing.T) {
	var ticks int
	d := deferred.MustNew(deferred.Executable[int](func(resolve func(int), reject func(error), cancel func(any), deltaMs float64) {
		ticks++
		if ticks >= 2 {
			resolve(ticks)
		}
	}))

	d.Execute(16)
	d.Execute(16)
	d.Execute(16) // should no-op now that it's resolved

	assert.Equal(t, deferred.Resolved, d.Status())
	assert.Equal(t, 2, d.Value())
	assert.Equal(t, 2, ticks)
}

func TestAllResolvesWithOrderedValues(t *testing.T) {
	a := deferred.MustNew[int](nil)
	b := deferred.MustNew[int](nil)
	c := deferred.MustNew[int](nil)

	group := deferred.All([]*deferred.Deferred[int]{a, b, c})

	b.Resolve(2)
	a.Resolve(1)
	require.Equal(t, deferred.Pending, group.Status())
	c.Resolve(3)

	require.Equal(t, deferred.Resolved, group.Status())
	assert.Equal(t, []int{1, 2, 3}, group.Value())
}

func TestAllRejectsGroupWhenAnyMemberRejects(t *testing.T) {
	a := deferred.MustNew[int](nil)
	b := deferred.MustNew[int](nil)

	group := deferred.All([]*deferred.Deferred[int]{a, b})

	wantErr := errors.New("boom")
	a.Reject(wantErr)
	b.Resolve(1)

	require.Equal(t, deferred.Rejected, group.Status())
	assert.Equal(t, wantErr, group.Err())
}

func TestAllCancelPropagatesToPendingMembers(t *testing.T) {
	a := deferred.MustNew[int](nil)
	b := deferred.MustNew[int](nil)

	group := deferred.All([]*deferred.Deferred[int]{a, b})
	group.Cancel("abort")

	assert.Equal(t, deferred.Canceled, a.Status())
	assert.Equal(t, deferred.Canceled, b.Status())
	assert.Equal(t, "abort", a.CancelReason())
}

func TestAllResolvePropagatesToPendingMembers(t *testing.T) {
	a := deferred.MustNew[int](nil)
	b := deferred.MustNew[int](nil)

	group := deferred.All([]*deferred.Deferred[int]{a, b})
	group.Resolve([]int{3, 4})

	assert.Equal(t, deferred.Resolved, a.Status())
	assert.Equal(t, 3, a.Value())
	assert.Equal(t, deferred.Resolved, b.Status())
	assert.Equal(t, 4, b.Value())
}

func TestAllRejectPropagatesToPendingMembers(t *testing.T) {
	a := deferred.MustNew[int](nil)
	b := deferred.MustNew[int](nil)

	group := deferred.All([]*deferred.Deferred[int]{a, b})
	boom := errors.New("boom")
	group.Reject(boom)

	assert.Equal(t, deferred.Rejected, a.Status())
	assert.Equal(t, boom, a.Err())
	assert.Equal(t, deferred.Rejected, b.Status())
	assert.Equal(t, boom, b.Err())
}

func TestAllEmptyResolvesImmediately(t *testing.T) {
	group := deferred.All([]*deferred.Deferred[int]{})
	assert.Equal(t, deferred.Resolved, group.Status())
	assert.Empty(t, group.Value())
}

func TestAllMemberAlreadySettledBeforeAllIsCalled(t *testing.T) {
	a := deferred.MustNew[int](nil)
	a.Resolve(7)
	b := deferred.MustNew[int](nil)

	group := deferred.All([]*deferred.Deferred[int]{a, b})
	b.Resolve(8)

	require.Equal(t, deferred.Resolved, group.Status())
	assert.Equal(t, []int{7, 8}, group.Value())
}
