package messenger_test

import (
	"regexp"
	"testing"

	"github.com/oxy-host/hostanim-go/messenger"
	"github.com/stretchr/testify/assert"
)

func TestListenToAndEmitSynchronous(t *testing.T) {
	m := messenger.New()
	var got any
	var calls int
	m.ListenTo("topic", func(v any) {
		calls++
		got = v
	})

	m.Emit("topic", 42)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 42, got)
}

func TestStopListeningPreventsFutureCalls(t *testing.T) {
	m := messenger.New()
	var calls int
	cb := func(v any) { calls++ }
	m.ListenTo("topic", cb)
	m.StopListening("topic", cb)

	m.Emit("topic", nil)

	assert.Equal(t, 0, calls)
}

func TestCallbacksRunInRegistrationOrder(t *testing.T) {
	m := messenger.New()
	var order []int
	m.ListenTo("topic", func(v any) { order = append(order, 1) })
	m.ListenTo("topic", func(v any) { order = append(order, 2) })
	m.ListenTo("topic", func(v any) { order = append(order, 3) })

	m.Emit("topic", nil)

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestStopListeningByRegexp(t *testing.T) {
	m := messenger.New()
	var calls int
	cb := func(v any) { calls++ }
	m.ListenTo("feature.playAnimation", cb)
	m.ListenTo("feature.stopAnimation", cb)
	m.ListenTo("other.topic", cb)

	m.StopListeningByRegexp(regexp.MustCompile(`^feature\.`), nil)
	m.Emit("feature.playAnimation", nil)
	m.Emit("feature.stopAnimation", nil)
	m.Emit("other.topic", nil)

	assert.Equal(t, 1, calls)
}

func TestStopListeningToAll(t *testing.T) {
	m := messenger.New()
	var calls int
	m.ListenTo("a", func(v any) { calls++ })
	m.ListenTo("b", func(v any) { calls++ })

	m.StopListeningToAll()
	m.Emit("a", nil)
	m.Emit("b", nil)

	assert.Equal(t, 0, calls)
}

func TestInstancesHaveUniqueIDs(t *testing.T) {
	a := messenger.New()
	b := messenger.New()
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestGlobalInstanceIsUsable(t *testing.T) {
	var calls int
	cb := func(v any) { calls++ }
	messenger.Global.ListenTo("hostanim_test_topic", cb)
	defer messenger.Global.StopListening("hostanim_test_topic", cb)

	messenger.Global.Emit("hostanim_test_topic", nil)
	assert.Equal(t, 1, calls)
}
