// Package messenger implements the topic-keyed publish/subscribe bus that
// lets features observe each other's events without a hard-wired dependency.
package messenger

import (
	"reflect"
	"regexp"
	"sync"
	"sync/atomic"
)

// Callback receives the value published to a topic.
type Callback func(value any)

var nextID int64

// Messenger is a topic-keyed event bus. The zero value is not usable;
// construct with New. Each instance carries a unique local id so multiple
// Messenger instances sharing process-wide infrastructure (or callers that
// build per-feature topic prefixes, as AnimationFeature does) can tell their
// own traffic apart.
type Messenger struct {
	id        string
	mu        sync.Mutex
	listeners map[string][]Callback
}

// New constructs an empty Messenger with a fresh unique id.
func New() *Messenger {
	id := atomic.AddInt64(&nextID, 1)
	return &Messenger{
		id:        idString(id),
		listeners: make(map[string][]Callback),
	}
}

func idString(n int64) string {
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	if n == 0 {
		return "0"
	}
	var buf [16]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = digits[n%int64(len(digits))]
		n /= int64(len(digits))
	}
	return string(buf[i:])
}

// ID returns this Messenger's unique local id.
func (m *Messenger) ID() string { return m.id }

// ListenTo registers cb to be called whenever topic is Emit'd. Multiple
// registrations of the same (topic, cb) pair each fire independently — call
// StopListening first if you want to replace a subscription.
func (m *Messenger) ListenTo(topic string, cb Callback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners[topic] = append(m.listeners[topic], cb)
}

// StopListening removes cb's subscription to topic. If cb is nil, every
// subscription to topic is removed.
func (m *Messenger) StopListening(topic string, cb Callback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cb == nil {
		delete(m.listeners, topic)
		return
	}
	m.listeners[topic] = removeCallback(m.listeners[topic], cb)
	if len(m.listeners[topic]) == 0 {
		delete(m.listeners, topic)
	}
}

// StopListeningByRegexp removes, from every topic matching re, cb's
// subscription (or every subscription on matching topics, if cb is nil).
func (m *Messenger) StopListeningByRegexp(re *regexp.Regexp, cb Callback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for topic := range m.listeners {
		if !re.MatchString(topic) {
			continue
		}
		if cb == nil {
			delete(m.listeners, topic)
			continue
		}
		m.listeners[topic] = removeCallback(m.listeners[topic], cb)
		if len(m.listeners[topic]) == 0 {
			delete(m.listeners, topic)
		}
	}
}

// StopListeningToAll clears every subscription on this Messenger.
func (m *Messenger) StopListeningToAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = make(map[string][]Callback)
}

// Emit synchronously invokes, in registration order, every callback
// subscribed to topic. Callbacks registered or removed by a callback that
// runs during this Emit do not affect the set of callbacks this Emit call
// invokes — a snapshot is taken up front.
func (m *Messenger) Emit(topic string, value any) {
	m.mu.Lock()
	cbs := append([]Callback(nil), m.listeners[topic]...)
	m.mu.Unlock()

	for _, cb := range cbs {
		cb(value)
	}
}

func removeCallback(cbs []Callback, target Callback) []Callback {
	if target == nil {
		return cbs
	}
	targetPtr := reflect.ValueOf(target).Pointer()
	out := cbs[:0:0]
	for _, cb := range cbs {
		if cb == nil || reflect.ValueOf(cb).Pointer() == targetPtr {
			continue
		}
		out = append(out, cb)
	}
	return out
}

// Global is the process-wide messenger instance, exposed for call sites that
// explicitly choose to use a shared bus rather than being handed one. Core
// logic in the animation, gesture, and gaze packages never reads this
// implicitly — it is always passed in as a constructor argument.
var Global = New()
