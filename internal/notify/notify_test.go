package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func TestLocalBus_FanOut(t *testing.T) {
	bus := NewLocalBus(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := bus.Subscribe(ctx)
	b := bus.Subscribe(ctx)

	bus.Publish(ctx, Change{Topic: TopicAppointments, Action: "created", ID: "ap-1"})

	for _, ch := range []<-chan Change{a, b} {
		select {
		case c := <-ch:
			if c.ID != "ap-1" || c.At.IsZero() {
				t.Fatalf("unexpected change: %+v", c)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for change")
		}
	}
}

func TestLocalBus_UnsubscribeOnCancel(t *testing.T) {
	bus := NewLocalBus(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	ch := bus.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("subscription not closed after cancel")
	}

	// publishing after unsubscribe must not panic
	bus.Publish(context.Background(), Change{Topic: TopicSettings})
}

func TestLocalBus_Close(t *testing.T) {
	bus := NewLocalBus(zerolog.Nop())
	ch := bus.Subscribe(context.Background())
	_ = bus.Close()

	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel after Close")
	}
	if _, ok := <-bus.Subscribe(context.Background()); ok {
		t.Fatal("expected closed channel when subscribing to a closed bus")
	}
}

func dial(t *testing.T, srv *httptest.Server, user string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=" + user
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func waitClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, hub.Clients())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub_DeliversByAudience(t *testing.T) {
	hub := NewHub(zerolog.Nop(), nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.URL.Query().Get("user")
		if err := hub.Serve(w, r, user, user == "admin"); err != nil {
			t.Errorf("serve: %v", err)
		}
	}))
	defer srv.Close()

	changes := make(chan Change, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx, changes)

	alice := dial(t, srv, "alice")
	defer alice.Close()
	bob := dial(t, srv, "bob")
	defer bob.Close()
	admin := dial(t, srv, "admin")
	defer admin.Close()
	waitClients(t, hub, 3)

	changes <- Change{Topic: TopicMessages, Action: "created", Audience: "alice"}
	changes <- Change{Topic: TopicSettings, Action: "updated"}

	read := func(conn *websocket.Conn) Change {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var c Change
		if err := json.Unmarshal(data, &c); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return c
	}

	if c := read(alice); c.Topic != TopicMessages {
		t.Fatalf("alice expected messages first, got %s", c.Topic)
	}
	if c := read(admin); c.Topic != TopicMessages {
		t.Fatalf("admin expected messages first, got %s", c.Topic)
	}
	if c := read(bob); c.Topic != TopicSettings {
		t.Fatalf("bob must skip alice's message, got %s", c.Topic)
	}
}

func TestDiscard(t *testing.T) {
	Discard.Publish(context.Background(), Change{Topic: TopicUsers})
}
