package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
)

// ParseRole accepts the role names used by the login and signup forms.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleTutor:
		return RoleTutor, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Session is the signed-in identity of one browser client. Department and
// Year are only set for students; Subjects, Rating, HourlyRate and Bio only
// for tutors.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`

	Department string `json:"department,omitempty"`
	Year       string `json:"year,omitempty"`

	Subjects   []string `json:"subjects,omitempty"`
	Rating     float64  `json:"rating,omitempty"`
	HourlyRate int      `json:"hourly_rate,omitempty"`
	Bio        string   `json:"bio,omitempty"`

	CreatedAtMillis int64 `json:"created_at_ms"`
}

type sessionCore struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            Role   `json:"role"`
	CreatedAtMillis int64  `json:"created_at_ms"`
}

// MarshalJSON always writes the profile fields of the session's role, even
// when they are empty, and leaves out those of the other role.
func (s Session) MarshalJSON() ([]byte, error) {
	core := sessionCore{
		ID:              s.ID,
		Name:            s.Name,
		Email:           s.Email,
		Role:            s.Role,
		CreatedAtMillis: s.CreatedAtMillis,
	}

	switch s.Role {
	case RoleStudent:
		return json.Marshal(struct {
			sessionCore
			Department string `json:"department"`
			Year       string `json:"year"`
		}{core, s.Department, s.Year})
	case RoleTutor:
		subjects := s.Subjects
		if subjects == nil {
			subjects = []string{}
		}
		return json.Marshal(struct {
			sessionCore
			Subjects   []string `json:"subjects"`
			Rating     float64  `json:"rating"`
			HourlyRate int      `json:"hourly_rate"`
			Bio        string   `json:"bio"`
		}{core, subjects, s.Rating, s.HourlyRate, s.Bio})
	}

	type plain Session
	return json.Marshal(plain(s))
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type SignupRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Year       string `json:"year"`
}

type SessionResponse struct {
	Session     *Session `json:"session"`
	AccessToken string   `json:"access_token,omitempty"`
	ExpiresIn   int      `json:"expires_in,omitempty"`
}
