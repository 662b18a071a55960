package animation

import (
	"fmt"

	"github.com/oxy-host/hostanim-go/hosterr"
)

func errNotFound(kind, name string) error {
	return hosterr.New(hosterr.NotFoundKind, fmt.Sprintf("%s %q not found", kind, name))
}

func errInvalidState(message string) error {
	return hosterr.New(hosterr.InvalidStateKind, message)
}

func errArgument(message string) error {
	return hosterr.New(hosterr.ArgumentKind, message)
}

func errBlendGeometry(message string) error {
	return hosterr.New(hosterr.BlendGeometryKind, message)
}
