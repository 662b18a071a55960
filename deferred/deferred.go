// Package deferred implements the cancellable-promise primitive the rest of
// the animation core is built on: a resolvable/rejectable/cancellable async
// value that is progressed not by a scheduler but by repeated calls to
// Execute from a single-threaded host update loop.
package deferred

import (
	"sync"

	"github.com/oxy-host/hostanim-go/hosterr"
)

// Status is the lifecycle state of a Deferred. Pending is the only status
// from which a transition is possible; the other three are terminal and
// mutually exclusive.
type Status int

const (
	Pending Status = iota
	Resolved
	Rejected
	Canceled
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Rejected:
		return "rejected"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Executable is re-invoked once per Execute call while the Deferred is
// pending. It drives the async work forward by deltaMs and calls resolve,
// reject, or cancel when the work completes.
type Executable[T any] func(resolve func(T), reject func(error), cancel func(any), deltaMs float64)

// Option configures a Deferred at construction time.
type Option[T any] func(*Deferred[T])

// OnResolve registers the callback invoked exactly once when the Deferred
// resolves. A nil func registers no callback.
func OnResolve[T any](cb func(T)) Option[T] {
	return func(d *Deferred[T]) { d.onResolve = cb }
}

// OnReject registers the callback invoked exactly once when the Deferred
// rejects.
func OnReject[T any](cb func(error)) Option[T] {
	return func(d *Deferred[T]) { d.onReject = cb }
}

// OnCancel registers the callback invoked exactly once when the Deferred is
// canceled.
func OnCancel[T any](cb func(any)) Option[T] {
	return func(d *Deferred[T]) { d.onCancel = cb }
}

// Deferred is a cancellable, externally-driven async value. Zero value is
// not usable; construct with New.
type Deferred[T any] struct {
	mu         sync.Mutex
	status     Status
	value      T
	err        error
	cancelVal  any
	executable Executable[T]
	onResolve  func(T)
	onReject   func(error)
	onCancel   func(any)
}

// New constructs a pending Deferred. executable may be nil for a Deferred
// that is only ever resolved/rejected/canceled directly (never ticked).
//
// The error result is always nil: a callback option carrying a nil function
// value registers no callback, and settling the Deferred then invokes
// nothing for it.
func New[T any](executable Executable[T], opts ...Option[T]) (*Deferred[T], error) {
	d := &Deferred[T]{status: Pending, executable: executable}
	for _, opt := range opts {
		opt(d)
	}
	if d.onResolve == nil && d.onReject == nil && d.onCancel == nil {
		// No callbacks registered at all is fine — this is the common case
		// for a Deferred created solely to be awaited by All.
		return d, nil
	}
	return d, nil
}

// MustNew is New without the error return, for call sites (most of the
// codebase) that construct Deferreds with compile-time-known, always-valid
// options.
func MustNew[T any](executable Executable[T], opts ...Option[T]) *Deferred[T] {
	d, err := New(executable, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// SetOnResolve (re)registers the resolve callback after construction. Used
// by callers that need to wire continuations once the Deferred's identity
// (and thus whether it is worth reacting to) is known, such as AbstractState
// binding its finish Deferred's settlement to user-supplied Play callbacks.
func (d *Deferred[T]) SetOnResolve(cb func(T)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onResolve = cb
}

// SetOnReject (re)registers the reject callback after construction.
func (d *Deferred[T]) SetOnReject(cb func(error)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onReject = cb
}

// SetOnCancel (re)registers the cancel callback after construction.
func (d *Deferred[T]) SetOnCancel(cb func(any)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onCancel = cb
}

// Status returns the current lifecycle status.
func (d *Deferred[T]) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Pending reports whether the Deferred has not yet settled.
func (d *Deferred[T]) Pending() bool {
	return d.Status() == Pending
}

// Value returns the resolved value. Only meaningful once Status() == Resolved.
func (d *Deferred[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Err returns the rejection error. Only meaningful once Status() == Rejected.
func (d *Deferred[T]) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Resolve settles the Deferred with v. No-op if already settled.
func (d *Deferred[T]) Resolve(v T) {
	d.mu.Lock()
	if d.status != Pending {
		d.mu.Unlock()
		return
	}
	d.status = Resolved
	d.value = v
	cb := d.onResolve
	d.mu.Unlock()
	if cb != nil {
		cb(v)
	}
}

// Reject settles the Deferred with err. No-op if already settled.
func (d *Deferred[T]) Reject(err error) {
	d.mu.Lock()
	if d.status != Pending {
		d.mu.Unlock()
		return
	}
	d.status = Rejected
	d.err = err
	cb := d.onReject
	d.mu.Unlock()
	if cb != nil {
		cb(err)
	}
}

// Cancel settles the Deferred as canceled, carrying reason. No-op if already
// settled. Cancellation is idempotent: a second Cancel call after the first
// is simply ignored, it does not re-invoke onCancel.
func (d *Deferred[T]) Cancel(reason any) {
	d.mu.Lock()
	if d.status != Pending {
		d.mu.Unlock()
		return
	}
	d.status = Canceled
	d.cancelVal = reason
	cb := d.onCancel
	d.mu.Unlock()
	if cb != nil {
		cb(reason)
	}
}

// CancelReason returns the payload passed to Cancel. Only meaningful once
// Status() == Canceled.
func (d *Deferred[T]) CancelReason() any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelVal
}

// Execute advances the executable by deltaMs. No-op once the Deferred has
// settled, and a no-op if no executable was supplied.
func (d *Deferred[T]) Execute(deltaMs float64) {
	d.mu.Lock()
	if d.status != Pending || d.executable == nil {
		d.mu.Unlock()
		return
	}
	exec := d.executable
	d.mu.Unlock()
	exec(d.Resolve, d.Reject, d.Cancel, deltaMs)
}

// Static convenience constructors for a Deferred that is already settled.

// ResolvedWith returns an already-resolved Deferred.
func ResolvedWith[T any](v T) *Deferred[T] {
	d := MustNew[T](nil)
	d.Resolve(v)
	return d
}

// RejectedWith returns an already-rejected Deferred.
func RejectedWith[T any](err error) *Deferred[T] {
	d := MustNew[T](nil)
	d.Reject(err)
	return d
}

// CanceledWith returns an already-canceled Deferred, carrying reason.
func CanceledWith[T any](reason any) *Deferred[T] {
	d := MustNew[T](nil)
	d.Cancel(reason)
	return d
}

// RejectedArgument is a convenience for the common "constructor validation
// failed" path: a Deferred rejected with a hosterr ArgumentKind error.
func RejectedArgument[T any](message string) *Deferred[T] {
	return RejectedWith[T](hosterr.New(hosterr.ArgumentKind, message))
}
