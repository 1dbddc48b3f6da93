package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cuet-tuition-backend/internal/middleware"
	"cuet-tuition-backend/internal/models"
	"cuet-tuition-backend/internal/repository"
	"cuet-tuition-backend/internal/services"
)

func newTestTuitionHandler() (*TuitionHandler, *services.Sessions) {
	sessions := newTestSessions()
	board := services.NewTuitionService(repository.NewMemoryTuitionRepo(repository.SeedTuitions(time.Now())), nil)
	return NewTuitionHandler(board, sessions), sessions
}

func validPost() models.CreateTuitionRequest {
	return models.CreateTuitionRequest{
		Title:       "Data Structures Crash Course",
		Subject:     "Computer Science",
		Level:       "University",
		Location:    "CUET Campus",
		Schedule:    "Sun, Tue - 5:00 PM",
		MonthlyFee:  3500,
		Description: "Arrays to graphs in eight weeks.",
	}
}

func withClaims(r *http.Request, sess *models.Session) *http.Request {
	claims := &middleware.Claims{SessionID: sess.ID, Email: sess.Email, Role: sess.Role}
	return r.WithContext(context.WithValue(r.Context(), middleware.ClaimsKey, claims))
}

func TestTuitionHandler_List(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"all", "", 4},
		{"all option", "?subject=All&level=All", 4},
		{"subject", "?subject=Physics", 1},
		{"level", "?level=HSC", 4},
		{"search tutor name", "?search=fatima", 1},
		{"unknown subject", "?subject=Biology", 0},
	}

	h, _ := newTestTuitionHandler()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.List(rr, httptest.NewRequest(http.MethodGet, "/api/v1/tuitions"+tc.query, nil))

			var resp struct {
				Tuitions []models.Tuition `json:"tuitions"`
				Total    int              `json:"total"`
			}
			json.NewDecoder(rr.Body).Decode(&resp)
			if resp.Total != tc.want || len(resp.Tuitions) != tc.want {
				t.Errorf("Expected %d tuitions, got %d", tc.want, resp.Total)
			}
		})
	}
}

func TestTuitionHandler_Facets(t *testing.T) {
	h, _ := newTestTuitionHandler()

	rr := httptest.NewRecorder()
	h.Subjects(rr, httptest.NewRequest(http.MethodGet, "/api/v1/tuitions/subjects", nil))
	var subjects struct {
		Subjects []string `json:"subjects"`
	}
	json.NewDecoder(rr.Body).Decode(&subjects)
	want := []string{"Mathematics", "Chemistry", "English", "Physics"}
	if len(subjects.Subjects) != len(want) {
		t.Fatalf("Expected %v, got %v", want, subjects.Subjects)
	}
	for i := range want {
		if subjects.Subjects[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, subjects.Subjects)
		}
	}

	rr = httptest.NewRecorder()
	h.Levels(rr, httptest.NewRequest(http.MethodGet, "/api/v1/tuitions/levels", nil))
	var levels struct {
		Levels []string `json:"levels"`
	}
	json.NewDecoder(rr.Body).Decode(&levels)
	if len(levels.Levels) != 1 || levels.Levels[0] != "HSC" {
		t.Errorf("Expected [HSC], got %v", levels.Levels)
	}
}

func TestTuitionHandler_PostByTutor(t *testing.T) {
	h, sessions := newTestTuitionHandler()
	sess, err := sessions.For(testClientID).Login(context.Background(), "rahim.uddin@student.cuet.ac.bd", "pw", models.RoleTutor)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	rr := httptest.NewRecorder()
	h.Post(rr, withClaims(newRequest(http.MethodPost, "/api/v1/tuitions", validPost(), testClientID), sess))

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var created models.Tuition
	json.NewDecoder(rr.Body).Decode(&created)
	if created.Tutor.Name != "Rahim Uddin" || created.Tutor.Rating != 4.8 {
		t.Errorf("Expected tutor details from the session, got %+v", created.Tutor)
	}

	rr = httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/v1/tuitions", nil))
	var resp struct {
		Tuitions []models.Tuition `json:"tuitions"`
	}
	json.NewDecoder(rr.Body).Decode(&resp)
	if len(resp.Tuitions) != 5 || resp.Tuitions[0].ID != created.ID {
		t.Errorf("Expected new tuition at the head of the board")
	}
}

func TestTuitionHandler_PostRejections(t *testing.T) {
	t.Run("no session", func(t *testing.T) {
		h, _ := newTestTuitionHandler()
		rr := httptest.NewRecorder()
		h.Post(rr, newRequest(http.MethodPost, "/api/v1/tuitions", validPost(), testClientID))
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rr.Code)
		}
	})

	t.Run("student", func(t *testing.T) {
		h, sessions := newTestTuitionHandler()
		sess, _ := sessions.For(testClientID).Login(context.Background(), "s@student.cuet.ac.bd", "pw", models.RoleStudent)
		rr := httptest.NewRecorder()
		h.Post(rr, withClaims(newRequest(http.MethodPost, "/api/v1/tuitions", validPost(), testClientID), sess))
		if rr.Code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d", rr.Code)
		}
	})

	t.Run("token from an older session", func(t *testing.T) {
		h, sessions := newTestTuitionHandler()
		old, _ := sessions.For(testClientID).Login(context.Background(), "t@student.cuet.ac.bd", "pw", models.RoleTutor)
		sessions.For(testClientID).Login(context.Background(), "t@student.cuet.ac.bd", "pw", models.RoleTutor)

		rr := httptest.NewRecorder()
		h.Post(rr, withClaims(newRequest(http.MethodPost, "/api/v1/tuitions", validPost(), testClientID), old))
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rr.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		h, sessions := newTestTuitionHandler()
		sess, _ := sessions.For(testClientID).Login(context.Background(), "t@student.cuet.ac.bd", "pw", models.RoleTutor)
		req := validPost()
		req.Title = ""
		req.MonthlyFee = 0

		rr := httptest.NewRecorder()
		h.Post(rr, withClaims(newRequest(http.MethodPost, "/api/v1/tuitions", req, testClientID), sess))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", rr.Code)
		}
		body := decodeError(t, rr)
		if _, ok := body.Error.Fields["title"]; !ok {
			t.Errorf("Expected title field error, got %v", body.Error.Fields)
		}
		if _, ok := body.Error.Fields["monthly_fee"]; !ok {
			t.Errorf("Expected monthly_fee field error, got %v", body.Error.Fields)
		}
	})
}
