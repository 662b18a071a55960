// Package speech defines the speechmark contract the animation core
// consumes from synthesized-speech collaborators, plus a
// gorilla/websocket-backed feed that publishes marks delivered
// over a live connection onto a Messenger.
package speech

import "time"

// MarkType distinguishes the speechmark kinds a TTS collaborator emits.
type MarkType string

const (
	MarkWord     MarkType = "word"
	MarkSentence MarkType = "sentence"
	MarkViseme   MarkType = "viseme"
	MarkSSML     MarkType = "ssml"
)

// Mark is one timed annotation delivered alongside synthesized audio. Value
// carries mark-type-specific data: the word text, the viseme name, or the
// raw SSML mark payload (a gesture speechmark payload, see package
// gesture's CreateGestureMap).
type Mark struct {
	Type  MarkType
	Time  time.Duration
	Value string
}

// Source is anything that can deliver a timed stream of marks alongside
// audio playback — a TTS SDK response or a pre-recorded mark track. WSFeed
// does not implement Source; it publishes marks on a Messenger instead.
type Source interface {
	// Marks returns every mark in this utterance, already sorted by Time.
	Marks() []Mark
}
