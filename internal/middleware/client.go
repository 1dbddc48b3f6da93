package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	clientCookieName = "tuition_client"
	clientIDField    = "client_id"
	clientCookieAge  = 400 * 24 * 60 * 60
)

// ClientIdentity gives every browser a stable, signed client id. The id
// plays the role of the browser's local storage: sessions are persisted
// under it.
type ClientIdentity struct {
	store *sessions.CookieStore
}

func NewClientIdentity(hashKey []byte, secure bool) *ClientIdentity {
	store := sessions.NewCookieStore(hashKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   clientCookieAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &ClientIdentity{store: store}
}

func (c *ClientIdentity) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A tampered or stale cookie yields a fresh, empty session.
		sess, _ := c.store.Get(r, clientCookieName)

		clientID, _ := sess.Values[clientIDField].(string)
		if _, err := uuid.Parse(clientID); err != nil {
			clientID = uuid.New().String()
			sess.Values[clientIDField] = clientID
			if err := sess.Save(r, w); err != nil {
				log.Printf("client identity: failed to save cookie: %v", err)
			}
		}

		ctx := context.WithValue(r.Context(), ClientIDKey, clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientID extracts the browser client id from request context
func GetClientID(ctx context.Context) string {
	id, _ := ctx.Value(ClientIDKey).(string)
	return id
}
