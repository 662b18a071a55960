// Package hosterr defines the error taxonomy shared across the animation
// composition core: every package that can fail classifies the failure with
// one of a small set of kinds rather than inventing its own sentinel errors.
package hosterr

import "fmt"

// Kind classifies a failure so callers can branch on errors.Is/errors.As
// without depending on a specific message string.
type Kind int

const (
	// ArgumentKind marks invalid inputs: options with the wrong shape, such
	// as a single animation without exactly one substate or an unknown state
	// type.
	ArgumentKind Kind = iota

	// NotFoundKind marks an unknown layer, animation, or state name.
	NotFoundKind

	// InvalidStateKind marks an operation attempted on a discarded or
	// deactivated resource, or on a Deferred that is no longer pending.
	InvalidStateKind

	// BlendGeometryKind marks duplicate thresholds or a mismatched
	// threshold count in a blend state.
	BlendGeometryKind

	// DependencyKind marks a missing required collaborator feature.
	DependencyKind

	// EngineKind marks an error surfaced by the external 3D engine or
	// speech services.
	EngineKind
)

// String renders the kind the way it would appear in a log line.
func (k Kind) String() string {
	switch k {
	case ArgumentKind:
		return "ArgumentKind"
	case NotFoundKind:
		return "NotFoundKind"
	case InvalidStateKind:
		return "InvalidStateKind"
	case BlendGeometryKind:
		return "BlendGeometryKind"
	case DependencyKind:
		return "DependencyKind"
	case EngineKind:
		return "EngineKind"
	default:
		return "UnknownKind"
	}
}

// Error is the concrete error type returned by every public operation in
// this module that fails with a classified error. Wrap it with fmt.Errorf's
// %w verb to add call-site context without losing the Kind.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, hosterr.New(SomeKind, "")) match purely on Kind,
// ignoring Message and Cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New constructs an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an *Error of the given kind that wraps cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// OfKind reports whether err is a *Error of the given kind, unwrapping
// through any wrapping in the chain.
func OfKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ae, ok := err.(*Error); ok {
			e = ae
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
