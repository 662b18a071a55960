package animation

import "github.com/oxy-host/hostanim-go/deferred"

// wrapGroup adapts a Deferred[[]T] (the shape deferred.All returns) into a
// Deferred[Signal], so composite states (TransitionState, the blend states)
// can fold a parallel group of sub-tweens into the single play/weight/finish
// Deferred triplet AbstractState expects. Settlement is forwarded both ways:
// the group settling settles the wrapper, and externally cancelling the
// wrapper cancels the group (and, through deferred.All's own wiring, every
// member still pending).
func wrapGroup[T any](g *deferred.Deferred[[]T]) *deferred.Deferred[Signal] {
	wrapper := deferred.MustNew[Signal](nil)

	g.SetOnResolve(func([]T) { wrapper.Resolve(sig) })
	g.SetOnReject(func(err error) { wrapper.Reject(err) })
	g.SetOnCancel(func(reason any) { wrapper.Cancel(reason) })
	wrapper.SetOnCancel(func(reason any) { g.Cancel(reason) })

	switch g.Status() {
	case deferred.Resolved:
		wrapper.Resolve(sig)
	case deferred.Rejected:
		wrapper.Reject(g.Err())
	case deferred.Canceled:
		wrapper.Cancel(g.CancelReason())
	}
	return wrapper
}
