package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"cuet-tuition-backend/internal/middleware"
	"cuet-tuition-backend/internal/models"
	"cuet-tuition-backend/internal/services"
)

type tokenIssuer interface {
	GenerateAccessToken(s *models.Session) (string, error)
}

// liveConnections is told when a session ends so it can drop the
// connections opened with that session's tokens.
type liveConnections interface {
	CloseSession(sessionID string) int
}

type SessionHandler struct {
	sessions *services.Sessions
	tokens   tokenIssuer
	conns    liveConnections
}

// NewSessionHandler builds the handler; conns may be nil.
func NewSessionHandler(sessions *services.Sessions, tokens tokenIssuer, conns liveConnections) *SessionHandler {
	return &SessionHandler{sessions: sessions, tokens: tokens, conns: conns}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fields := make(map[string]string)
	email := strings.TrimSpace(req.Email)
	if email == "" {
		fields["email"] = "Email is required"
	}
	if req.Password == "" {
		fields["password"] = "Password is required"
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		fields["role"] = "Role must be student or tutor"
	}
	if len(fields) > 0 {
		handleServiceError(w, r, &services.ValidationError{Fields: fields})
		return
	}

	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}

	sess, err := mgr.Login(r.Context(), email, req.Password, role)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.writeSession(w, r, http.StatusOK, sess)
}

func (h *SessionHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fields := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "Name is required"
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		fields["email"] = "Email is required"
	}
	if req.Password == "" {
		fields["password"] = "Password is required"
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		fields["role"] = "Role must be student or tutor"
	}
	if len(fields) > 0 {
		handleServiceError(w, r, &services.ValidationError{Fields: fields})
		return
	}

	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}

	sess, err := mgr.Signup(r.Context(), req.Name, email, req.Password, role, req.Department, req.Year)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.writeSession(w, r, http.StatusCreated, sess)
}

// Current restores the persisted session of the calling client and hands
// out a fresh access token for it. No session is not an error.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}

	sess, err := mgr.Restore(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if sess == nil {
		writeJSON(w, http.StatusOK, models.SessionResponse{})
		return
	}

	h.writeSession(w, r, http.StatusOK, sess)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}

	sess, err := mgr.Restore(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := mgr.Logout(r.Context()); err != nil {
		handleServiceError(w, r, err)
		return
	}

	if sess != nil && h.conns != nil {
		h.conns.CloseSession(sess.ID)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *SessionHandler) manager(w http.ResponseWriter, r *http.Request) (*services.SessionManager, bool) {
	clientID := middleware.GetClientID(r.Context())
	if clientID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("MISSING_CLIENT", "Client cookie is required", r))
		return nil, false
	}
	return h.sessions.For(clientID), true
}

func (h *SessionHandler) writeSession(w http.ResponseWriter, r *http.Request, status int, sess *models.Session) {
	token, err := h.tokens.GenerateAccessToken(sess)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, status, models.SessionResponse{
		Session:     sess,
		AccessToken: token,
		ExpiresIn:   int(middleware.AccessTokenTTL.Seconds()),
	})
}
