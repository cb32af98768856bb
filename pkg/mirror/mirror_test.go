package mirror

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestEncodeDecode(t *testing.T) {
	at := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	msg, err := Encode(TypeScroll, State{Value: -0.25, Tick: -9}, at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"type":"scroll","ts":"2026-01-02T15:04:05Z","data":{"value":-0.25,"tick":-9}}`
	if string(msg) != want {
		t.Errorf("expected %s, got %s", want, msg)
	}

	got, err := Decode(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != TypeScroll || got.State.Value != -0.25 || got.State.Tick != -9 || !got.Ts.Equal(at) {
		t.Errorf("unexpected message %+v", got)
	}
}

func TestEncodeWithoutTimestamp(t *testing.T) {
	msg, _ := Encode(TypeInit, State{}, time.Time{})
	if strings.Contains(string(msg), `"ts"`) {
		t.Errorf("expected no timestamp, got %s", msg)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []string{
		`not json`,
		`{"data":{"value":1}}`,
		`{"type":3}`,
		`{"type":"scroll","ts":"yesterday"}`,
	}
	for _, in := range tests {
		if _, err := Decode([]byte(in)); err == nil {
			t.Errorf("Decode(%s): expected error", in)
		}
	}
}

func TestDecodeIgnoresExtraFields(t *testing.T) {
	m, err := Decode([]byte(`{"type":"scroll","data":{"value":0.5,"tick":18,"page":1},"v":2}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.State.Value != 0.5 || m.State.Tick != 18 {
		t.Errorf("unexpected state %+v", m.State)
	}
}

func TestListenerPublishes(t *testing.T) {
	hub := newTestHub(t, 4, 8)
	l := NewListener(hub, nil)
	l.Now = func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }

	l.OnScrollStarted(0, 0)
	l.OnScroll(0.5, 18)
	l.OnScrollFinished(0.5, 18)

	wantTypes := []string{TypeStarted, TypeScroll, TypeFinished}
	for _, typ := range wantTypes {
		m, err := Decode(<-hub.broadcast)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Type != typ {
			t.Errorf("expected %s, got %s", typ, m.Type)
		}
	}
	if got := l.Latest(); got != (State{Value: 0.5, Tick: 18}) {
		t.Errorf("expected latest 0.5/18, got %+v", got)
	}
}

func TestServerAndFollow(t *testing.T) {
	hub := newTestHub(t, 8, 8)
	runHub(t, hub)

	l := NewListener(hub, nil)
	l.Set(State{Value: 0.25, Tick: 9})

	mux := http.NewServeMux()
	NewServer(hub, l, nil).Register(mux, DefaultPath)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages := make(chan Message, 8)
	errc := make(chan error, 1)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + DefaultPath
	go func() {
		errc <- Follow(ctx, url, func(m Message) { messages <- m }, nil)
	}()

	next := func() Message {
		t.Helper()
		select {
		case m := <-messages:
			return m
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for frame")
			return Message{}
		}
	}

	greeting := next()
	if greeting.Type != TypeInit || greeting.State != (State{Value: 0.25, Tick: 9}) {
		t.Errorf("expected init with latest state, got %+v", greeting)
	}

	waitUntil(t, time.Second, func() bool { return hub.Clients() == 1 }, "client not registered")
	l.OnScroll(-0.5, -18)
	m := next()
	if m.Type != TypeScroll || m.State.Value != -0.5 || m.State.Tick != -18 {
		t.Errorf("expected scroll frame, got %+v", m)
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Follow did not return")
	}
}

func TestFollowDialError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	if err := Follow(context.Background(), url, func(Message) {}, nil); err == nil {
		t.Error("expected dial error")
	}
}
