package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"cuet-tuition-backend/internal/middleware"
	"cuet-tuition-backend/internal/models"
	"cuet-tuition-backend/internal/services"
)

type tuitionBoard interface {
	List(ctx context.Context, c models.TuitionCriteria) ([]models.Tuition, error)
	Subjects(ctx context.Context) ([]string, error)
	Levels(ctx context.Context) ([]string, error)
	Post(ctx context.Context, sess *models.Session, req models.CreateTuitionRequest) (*models.Tuition, error)
}

type TuitionHandler struct {
	board    tuitionBoard
	sessions *services.Sessions
}

func NewTuitionHandler(board tuitionBoard, sessions *services.Sessions) *TuitionHandler {
	return &TuitionHandler{board: board, sessions: sessions}
}

// List handles GET /tuitions?search=&subject=&level=
func (h *TuitionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tuitions, err := h.board.List(r.Context(), models.TuitionCriteria{
		SearchText: strings.TrimSpace(q.Get("search")),
		Subject:    q.Get("subject"),
		Level:      q.Get("level"),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tuitions": tuitions,
		"total":    len(tuitions),
	})
}

func (h *TuitionHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.board.Subjects(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"subjects": subjects})
}

func (h *TuitionHandler) Levels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.board.Levels(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"levels": levels})
}

// Post publishes a tuition for the tutor signed in on the calling client.
// The bearer token must belong to that same session.
func (h *TuitionHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTuitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	clientID := middleware.GetClientID(r.Context())
	if clientID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("MISSING_CLIENT", "Client cookie is required", r))
		return
	}

	sess, err := h.sessions.For(clientID).Restore(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, errorResp("UNAUTHORIZED", "Session has expired, please sign in again", r))
		return
	}
	if claims := middleware.GetClaims(r.Context()); claims != nil && claims.SessionID != sess.ID {
		writeJSON(w, http.StatusUnauthorized, errorResp("UNAUTHORIZED", "Token does not belong to this session", r))
		return
	}

	tuition, err := h.board.Post(r.Context(), sess, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tuition)
}
