package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cuet-tuition-backend/internal/middleware"
	"cuet-tuition-backend/internal/models"
)

func newTestSessionHandler() (*SessionHandler, *middleware.JWTAuth) {
	jwtAuth := middleware.NewJWTAuth("test-secret")
	return NewSessionHandler(newTestSessions(), jwtAuth, nil), jwtAuth
}

func decodeSession(t *testing.T, rr *httptest.ResponseRecorder) models.SessionResponse {
	t.Helper()
	var resp models.SessionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode session response: %v", err)
	}
	return resp
}

func TestSessionHandler_Login(t *testing.T) {
	h, jwtAuth := newTestSessionHandler()

	rr := httptest.NewRecorder()
	h.Login(rr, newRequest(http.MethodPost, "/api/v1/session/login", map[string]string{
		"email":    "ahmed.hassan@student.cuet.ac.bd",
		"password": "anything",
		"role":     "student",
	}, testClientID))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	resp := decodeSession(t, rr)
	if resp.Session == nil || resp.Session.Name != "Ahmed Hassan" {
		t.Fatalf("Expected session for Ahmed Hassan, got %+v", resp.Session)
	}
	if resp.Session.Department != "CSE" || resp.Session.Year != "4th Year" {
		t.Errorf("Expected student defaults, got %+v", resp.Session)
	}

	claims, err := jwtAuth.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("Expected a valid access token, got %v", err)
	}
	if claims.SessionID != resp.Session.ID || claims.Role != models.RoleStudent {
		t.Errorf("Token claims do not match session: %+v", claims)
	}
	if resp.ExpiresIn != int(middleware.AccessTokenTTL.Seconds()) {
		t.Errorf("Expected expires_in %d, got %d", int(middleware.AccessTokenTTL.Seconds()), resp.ExpiresIn)
	}
}

func TestSessionHandler_LoginValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]string
		wantFields []string
	}{
		{"missing email", map[string]string{"password": "x", "role": "student"}, []string{"email"}},
		{"missing password", map[string]string{"email": "a@b.c", "role": "tutor"}, []string{"password"}},
		{"unknown role", map[string]string{"email": "a@b.c", "password": "x", "role": "admin"}, []string{"role"}},
		{"empty body", map[string]string{}, []string{"email", "password", "role"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newTestSessionHandler()
			rr := httptest.NewRecorder()
			h.Login(rr, newRequest(http.MethodPost, "/api/v1/session/login", tc.body, testClientID))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", rr.Code)
			}
			body := decodeError(t, rr)
			for _, f := range tc.wantFields {
				if _, ok := body.Error.Fields[f]; !ok {
					t.Errorf("Expected field error for %q, got %v", f, body.Error.Fields)
				}
			}
		})
	}
}

func TestSessionHandler_InvalidBody(t *testing.T) {
	h, _ := newTestSessionHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session/login", nil)
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty body, got %d", rr.Code)
	}
}

func TestSessionHandler_MissingClient(t *testing.T) {
	h, _ := newTestSessionHandler()
	rr := httptest.NewRecorder()
	h.Current(rr, newRequest(http.MethodGet, "/api/v1/session", nil, ""))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rr.Code)
	}
	if body := decodeError(t, rr); body.Error.Code != "MISSING_CLIENT" {
		t.Errorf("Expected MISSING_CLIENT, got %q", body.Error.Code)
	}
}

func TestSessionHandler_SignupRestoreLogout(t *testing.T) {
	h, _ := newTestSessionHandler()

	rr := httptest.NewRecorder()
	h.Signup(rr, newRequest(http.MethodPost, "/api/v1/session/signup", map[string]string{
		"name":     "Nusrat Jahan",
		"email":    "nusrat@student.cuet.ac.bd",
		"password": "pw",
		"role":     "tutor",
	}, testClientID))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	created := decodeSession(t, rr)
	if created.Session.Role != models.RoleTutor || len(created.Session.Subjects) != 0 {
		t.Errorf("Expected empty tutor profile, got %+v", created.Session)
	}

	// Same client sees the session again.
	rr = httptest.NewRecorder()
	h.Current(rr, newRequest(http.MethodGet, "/api/v1/session", nil, testClientID))
	restored := decodeSession(t, rr)
	if restored.Session == nil || restored.Session.ID != created.Session.ID {
		t.Fatalf("Expected restored session %s, got %+v", created.Session.ID, restored.Session)
	}
	if restored.AccessToken == "" {
		t.Errorf("Expected restore to issue an access token")
	}

	// Another client does not.
	rr = httptest.NewRecorder()
	h.Current(rr, newRequest(http.MethodGet, "/api/v1/session", nil, "another-client"))
	if other := decodeSession(t, rr); other.Session != nil {
		t.Errorf("Expected no session for another client, got %+v", other.Session)
	}

	rr = httptest.NewRecorder()
	h.Logout(rr, newRequest(http.MethodDelete, "/api/v1/session", nil, testClientID))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 on logout, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.Current(rr, newRequest(http.MethodGet, "/api/v1/session", nil, testClientID))
	if rr.Body.String() != "{\"session\":null}\n" {
		t.Errorf("Expected null session after logout, got %s", rr.Body.String())
	}
}

type recordingConns struct {
	closed []string
}

func (c *recordingConns) CloseSession(sessionID string) int {
	c.closed = append(c.closed, sessionID)
	return 1
}

func TestSessionHandler_LogoutClosesLiveConnections(t *testing.T) {
	conns := &recordingConns{}
	h := NewSessionHandler(newTestSessions(), middleware.NewJWTAuth("test-secret"), conns)

	rr := httptest.NewRecorder()
	h.Login(rr, newRequest(http.MethodPost, "/api/v1/session/login", map[string]string{
		"email": "t@student.cuet.ac.bd", "password": "pw", "role": "tutor",
	}, testClientID))
	login := decodeSession(t, rr)

	rr = httptest.NewRecorder()
	h.Logout(rr, newRequest(http.MethodDelete, "/api/v1/session", nil, testClientID))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if len(conns.closed) != 1 || conns.closed[0] != login.Session.ID {
		t.Errorf("Expected connections of %s to be closed, got %v", login.Session.ID, conns.closed)
	}

	// Logging out again has no session and nothing to close.
	rr = httptest.NewRecorder()
	h.Logout(rr, newRequest(http.MethodDelete, "/api/v1/session", nil, testClientID))
	if rr.Code != http.StatusOK || len(conns.closed) != 1 {
		t.Errorf("Expected idempotent logout without closing, got %d / %v", rr.Code, conns.closed)
	}
}
