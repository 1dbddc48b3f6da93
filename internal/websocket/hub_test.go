package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"cuet-tuition-backend/internal/middleware"
	"cuet-tuition-backend/internal/models"
)

func dial(t *testing.T, h *Hub, jwtAuth *middleware.JWTAuth) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)

	token, err := jwtAuth.GenerateAccessToken(&models.Session{ID: "sess-1", Email: "a@b.c", Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial hub: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	waitFor(t, func() bool { return h.Count() == 1 })
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) models.WSMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	var msg models.WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	return msg
}

func TestHub_RejectsMissingOrBadToken(t *testing.T) {
	h := NewHub(nil, middleware.NewJWTAuth("test-secret"))
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer srv.Close()

	for _, q := range []string{"", "?token=garbage"} {
		resp, err := http.Get(srv.URL + q)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%q: expected 401, got %d", q, resp.StatusCode)
		}
	}
}

func TestHub_LocalBroadcast(t *testing.T) {
	jwtAuth := middleware.NewJWTAuth("test-secret")
	h := NewHub(nil, jwtAuth)
	conn := dial(t, h, jwtAuth)

	if err := h.PublishTuition(context.Background(), &models.Tuition{Title: "Physics Problem Solving"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	msg := readEvent(t, conn)
	if msg.Type != EventTuitionPosted {
		t.Errorf("Expected %q event, got %q", EventTuitionPosted, msg.Type)
	}
	payload, _ := msg.Payload.(map[string]interface{})
	if payload["title"] != "Physics Problem Solving" {
		t.Errorf("Expected tuition payload, got %v", msg.Payload)
	}

	conn.Close()
	waitFor(t, func() bool { return h.Count() == 0 })
}

func TestHub_RedisFanOut(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	jwtAuth := middleware.NewJWTAuth("test-secret")
	h := NewHub(client, jwtAuth)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	waitFor(t, func() bool {
		n, err := client.PubSubNumSub(ctx, TuitionChannel).Result()
		return err == nil && n[TuitionChannel] == 1
	})

	conn := dial(t, h, jwtAuth)

	if err := h.PublishTuition(ctx, &models.Tuition{Title: "Chemistry Lab Techniques"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if msg := readEvent(t, conn); msg.Type != EventTuitionPosted {
		t.Errorf("Expected %q event, got %q", EventTuitionPosted, msg.Type)
	}
}

func TestHub_CloseSession(t *testing.T) {
	jwtAuth := middleware.NewJWTAuth("test-secret")
	h := NewHub(nil, jwtAuth)
	conn := dial(t, h, jwtAuth)

	if n := h.CloseSession("another-session"); n != 0 {
		t.Errorf("Expected no connections closed for another session, got %d", n)
	}
	if n := h.CloseSession("sess-1"); n != 1 {
		t.Fatalf("Expected 1 connection closed, got %d", n)
	}
	if h.Count() != 0 {
		t.Errorf("Expected no registered connections, got %d", h.Count())
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Errorf("Expected the client side to see the connection closed")
	}
}
