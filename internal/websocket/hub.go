package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"cuet-tuition-backend/internal/middleware"
	"cuet-tuition-backend/internal/models"
)

const (
	// TuitionChannel carries tuition.posted events between server instances.
	TuitionChannel = "tuitions:posted"

	EventTuitionPosted = "tuition.posted"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type tokenParser interface {
	ParseToken(tokenStr string) (*middleware.Claims, error)
}

// Hub pushes board events to every connected browser. With a Redis client
// events go through pub/sub so all instances see them; without one they are
// broadcast locally.
type Hub struct {
	mu          sync.Mutex
	connections map[*websocket.Conn]*middleware.Claims
	redisClient *redis.Client
	tokens      tokenParser
}

func NewHub(redisClient *redis.Client, tokens tokenParser) *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]*middleware.Claims),
		redisClient: redisClient,
		tokens:      tokens,
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Authenticate via token query param
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokens.ParseToken(tokenStr)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.register(conn, claims)

	// Keep connection alive and handle disconnect
	go func() {
		defer h.unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) register(conn *websocket.Conn, claims *middleware.Claims) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[conn] = claims
	log.Printf("WebSocket connected: session %s (total: %d)", claims.SessionID, len(h.connections))
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()
	if claims, ok := h.connections[conn]; ok {
		delete(h.connections, conn)
		log.Printf("WebSocket disconnected: session %s", claims.SessionID)
	}
}

// CloseSession drops every local connection opened with a token of
// sessionID and returns how many were closed. Connections held by other
// instances stay open until their own reads fail.
func (h *Hub) CloseSession(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	closed := 0
	for conn, claims := range h.connections {
		if claims.SessionID != sessionID {
			continue
		}
		delete(h.connections, conn)
		conn.Close()
		closed++
	}
	if closed > 0 {
		log.Printf("WebSocket closed on logout: session %s (%d connections)", sessionID, closed)
	}
	return closed
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

// PublishTuition announces a new tuition post.
func (h *Hub) PublishTuition(ctx context.Context, t *models.Tuition) error {
	data, err := json.Marshal(models.WSMessage{Type: EventTuitionPosted, Payload: t})
	if err != nil {
		return fmt.Errorf("failed to encode tuition event: %w", err)
	}

	if h.redisClient == nil {
		h.broadcast(data)
		return nil
	}

	if err := h.redisClient.Publish(ctx, TuitionChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish tuition event: %w", err)
	}
	return nil
}

// Run relays pub/sub events to local connections until ctx is done. It
// returns immediately when the hub has no Redis client.
func (h *Hub) Run(ctx context.Context) {
	if h.redisClient == nil {
		return
	}

	pubsub := h.redisClient.Subscribe(ctx, TuitionChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast([]byte(msg.Payload))
		}
	}
}

// broadcast holds the lock while writing; a gorilla connection supports a
// single concurrent writer.
func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.connections {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("WebSocket write failed: %v", err)
		}
	}
}
