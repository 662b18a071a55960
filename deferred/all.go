package deferred

// All returns a Deferred that resolves, with the ordered slice of each
// member's resolution value, once every member of members has resolved.
// Rejecting any member rejects the group with that member's error.
// Cancelling any member cancels the group; cancelling the returned group
// Deferred in turn cancels every member still pending.
//
// A member that is already settled when All is called is accounted for
// synchronously — All never leaves a call to Resolve/Reject/Cancel
// unobserved by arriving "late".
func All[T any](members []*Deferred[T]) *Deferred[[]T] {
	group, _ := New[[]T](nil)

	if len(members) == 0 {
		group.Resolve(nil)
		return group
	}

	values := make([]T, len(members))
	remaining := len(members)
	var once bool // group has already settled via reject/cancel

	settleIfDone := func() {
		if !once && remaining == 0 {
			once = true
			group.Resolve(append([]T(nil), values...))
		}
	}

	for i, m := range members {
		i, m := i, m
		switch m.Status() {
		case Resolved:
			values[i] = m.Value()
			remaining--
		case Rejected:
			once = true
			group.Reject(m.Err())
		case Canceled:
			once = true
			group.Cancel(m.CancelReason())
		default:
			m.onResolve = chain(m.onResolve, func(v T) {
				if once {
					return
				}
				values[i] = v
				remaining--
				settleIfDone()
			})
			m.onReject = chainErr(m.onReject, func(err error) {
				if once {
					return
				}
				once = true
				group.Reject(err)
			})
			m.onCancel = chainCancel(m.onCancel, func(reason any) {
				if once {
					return
				}
				once = true
				group.Cancel(reason)
			})
		}
	}
	settleIfDone()

	// Propagate settlement of the group down to every member still pending,
	// symmetric across all three terminal outcomes. The group's own hooks
	// run after the status has already flipped, so these are wired via a
	// wrapping Option-free assignment rather than through the constructor.
	// Resolve/Reject/Cancel are all no-ops on an already-settled member, so
	// this only ever touches members still pending at the time the group
	// settles directly (bypassing the normal all-members-resolved path).
	group.onResolve = chain(group.onResolve, func(v []T) {
		for i, m := range members {
			if i < len(v) {
				m.Resolve(v[i])
			}
		}
	})
	group.onReject = chainErr(group.onReject, func(err error) {
		for _, m := range members {
			m.Reject(err)
		}
	})
	group.onCancel = chainCancel(group.onCancel, func(reason any) {
		for _, m := range members {
			m.Cancel(reason)
		}
	})

	return group
}

func chain[T any](existing func(T), added func(T)) func(T) {
	if existing == nil {
		return added
	}
	return func(v T) {
		existing(v)
		added(v)
	}
}

func chainErr(existing func(error), added func(error)) func(error) {
	if existing == nil {
		return added
	}
	return func(err error) {
		existing(err)
		added(err)
	}
}

func chainCancel(existing func(any), added func(any)) func(any) {
	if existing == nil {
		return added
	}
	return func(reason any) {
		existing(reason)
		added(reason)
	}
}
