package mirror

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// Frame types.
const (
	TypeInit     = "wheel_init"
	TypeStarted  = "scroll_started"
	TypeScroll   = "scroll"
	TypeFinished = "scroll_finished"
)

// State is the data payload of every frame.
type State struct {
	Value float64 `json:"value"`
	Tick  int     `json:"tick"`
}

// envelope is the wire format of a frame.
type envelope struct {
	Type string     `json:"type"`
	Ts   *time.Time `json:"ts,omitempty"`
	Data any        `json:"data,omitempty"`
}

// Message is a decoded frame.
type Message struct {
	Type  string
	Ts    time.Time
	State State
}

// Encode serializes a frame. A zero at omits the timestamp.
func Encode(typ string, s State, at time.Time) ([]byte, error) {
	env := envelope{Type: typ, Data: s}
	if !at.IsZero() {
		utc := at.UTC()
		env.Ts = &utc
	}
	return json.Marshal(env)
}

// Decode parses a frame. Unknown fields are ignored so newer servers can
// add to the payload.
func Decode(msg []byte) (Message, error) {
	if !gjson.ValidBytes(msg) {
		return Message{}, fmt.Errorf("mirror: invalid frame %q", msg)
	}
	typ := gjson.GetBytes(msg, "type")
	if typ.Type != gjson.String || typ.Str == "" {
		return Message{}, fmt.Errorf("mirror: frame without type %q", msg)
	}
	m := Message{
		Type: typ.Str,
		State: State{
			Value: gjson.GetBytes(msg, "data.value").Float(),
			Tick:  int(gjson.GetBytes(msg, "data.tick").Int()),
		},
	}
	if ts := gjson.GetBytes(msg, "ts"); ts.Exists() {
		parsed, err := time.Parse(time.RFC3339Nano, ts.Str)
		if err != nil {
			return Message{}, fmt.Errorf("mirror: bad timestamp: %w", err)
		}
		m.Ts = parsed
	}
	return m, nil
}
