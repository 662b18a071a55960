package speech

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/oxy-host/hostanim-go/messenger"
)

// TopicMark is the Messenger topic WSFeed emits each received mark on.
const TopicMark = "speech.mark"

// wireMark is the wire encoding of a Mark: Time as milliseconds, since JSON
// has no native duration type.
type wireMark struct {
	Type    MarkType `json:"type"`
	TimeMs  float64  `json:"timeMs"`
	Value   string   `json:"value"`
}

// WSFeed reads a stream of JSON-encoded speechmarks off a websocket
// connection and republishes each as a Mark on a Messenger, letting
// gesture/gaze/lipsync features subscribe without depending on the
// transport. Connection lifecycle (dial, reconnect) is the caller's
// responsibility; WSFeed only owns an already-established connection.
type WSFeed struct {
	conn *websocket.Conn
	bus  *messenger.Messenger
	log  *logrus.Entry

	closed chan struct{}
}

// NewWSFeed wraps conn, publishing received marks on bus under TopicMark.
func NewWSFeed(conn *websocket.Conn, bus *messenger.Messenger, log *logrus.Entry) *WSFeed {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &WSFeed{conn: conn, bus: bus, log: log.WithField("component", "speechWSFeed"), closed: make(chan struct{})}
}

// Run blocks reading marks off the connection until it closes or an
// unrecoverable read error occurs, publishing each successfully decoded
// mark synchronously before reading the next. Intended to run in its own
// goroutine; the animation core's own update loop remains single-threaded,
// this only marshals external async delivery onto the Messenger.
func (f *WSFeed) Run() error {
	defer close(f.closed)
	for {
		_, data, err := f.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			f.log.WithError(err).Warn("speechmark feed read failed")
			return err
		}

		var wm wireMark
		if err := json.Unmarshal(data, &wm); err != nil {
			f.log.WithError(err).Warn("speechmark feed decode failed")
			continue
		}
		f.bus.Emit(TopicMark, Mark{Type: wm.Type, Time: time.Duration(wm.TimeMs) * time.Millisecond, Value: wm.Value})
	}
}

// Close closes the underlying connection.
func (f *WSFeed) Close() error {
	return f.conn.Close()
}

// Done is closed once Run returns.
func (f *WSFeed) Done() <-chan struct{} { return f.closed }
