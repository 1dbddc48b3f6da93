package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"cuet-tuition-backend/internal/models"
	"cuet-tuition-backend/internal/storage"
)

const (
	userKey      = "user"
	loginTimeKey = "login_time"

	// ExpiryWindow is how long a persisted session is honoured after login.
	ExpiryWindow = 30 * 24 * time.Hour
)

// Profile defaults handed to a freshly logged-in account, taken from the
// demo profile of the tuition board.
var (
	defaultStudentDepartment = "CSE"
	defaultStudentYear       = "4th Year"
	defaultTutorSubjects     = []string{"Mathematics", "Programming", "Data Structures"}
	defaultTutorRating       = 4.8
	defaultTutorHourlyRate   = 500
	defaultTutorBio          = "Passionate about teaching and helping fellow students excel in their academic journey."
)

// SessionManager owns the single current session of one client and its
// persisted copy in kv.
type SessionManager struct {
	kv       storage.KV
	verifier CredentialVerifier
	now      func() time.Time
	current  *models.Session
}

func NewSessionManager(kv storage.KV, verifier CredentialVerifier) *SessionManager {
	if verifier == nil {
		verifier = AcceptAnyPassword{}
	}
	return &SessionManager{
		kv:       kv,
		verifier: verifier,
		now:      time.Now,
	}
}

// Current returns the session established by the last Login, Signup or
// Restore, or nil.
func (m *SessionManager) Current() *models.Session {
	return m.current
}

// Login signs the client in. The password is only checked by the configured
// verifier; with AcceptAnyPassword every non-empty password is accepted.
func (m *SessionManager) Login(ctx context.Context, email, password string, role models.Role) (*models.Session, error) {
	if err := m.verifier.Verify(ctx, email, password); err != nil {
		return nil, err
	}

	now := m.now()
	s := &models.Session{
		ID:              uuid.New().String(),
		Name:            DisplayNameFromEmail(email),
		Email:           email,
		Role:            role,
		CreatedAtMillis: now.UnixMilli(),
	}

	switch role {
	case models.RoleStudent:
		s.Department = defaultStudentDepartment
		s.Year = defaultStudentYear
	case models.RoleTutor:
		s.Subjects = append([]string(nil), defaultTutorSubjects...)
		s.Rating = defaultTutorRating
		s.HourlyRate = defaultTutorHourlyRate
		s.Bio = defaultTutorBio
	}

	if err := m.persist(ctx, s, now); err != nil {
		return nil, err
	}
	return s, nil
}

// Signup creates a session from the registration form. Tutors start with an
// empty profile.
func (m *SessionManager) Signup(ctx context.Context, name, email, password string, role models.Role, department, year string) (*models.Session, error) {
	now := m.now()
	s := &models.Session{
		ID:              uuid.New().String(),
		Name:            name,
		Email:           email,
		Role:            role,
		CreatedAtMillis: now.UnixMilli(),
	}
	switch role {
	case models.RoleStudent:
		s.Department = department
		s.Year = year
	case models.RoleTutor:
		s.Subjects = []string{}
	}

	if err := m.persist(ctx, s, now); err != nil {
		return nil, err
	}
	return s, nil
}

// Restore loads the persisted session. Missing, corrupted or expired entries
// yield a nil session; only storage failures are returned as errors.
func (m *SessionManager) Restore(ctx context.Context) (*models.Session, error) {
	raw, ok, err := m.kv.Get(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		m.current = nil
		return nil, nil
	}

	rawTime, ok, err := m.kv.Get(ctx, loginTimeKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read login time: %w", err)
	}
	if !ok {
		m.current = nil
		return nil, nil
	}

	loginMillis, err := strconv.ParseInt(rawTime, 10, 64)
	if err != nil {
		log.Printf("session: discarding entry with bad login time %q", rawTime)
		return nil, m.clear(ctx)
	}

	var s models.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		log.Printf("session: discarding undecodable entry: %v", err)
		return nil, m.clear(ctx)
	}

	if _, err := models.ParseRole(string(s.Role)); err != nil || s.ID == "" {
		log.Printf("session: discarding entry without identity")
		return nil, m.clear(ctx)
	}

	if m.now().UnixMilli()-loginMillis >= ExpiryWindow.Milliseconds() {
		return nil, m.clear(ctx)
	}

	m.current = &s
	return &s, nil
}

// Logout drops the current and persisted session. It is safe to call when
// nobody is signed in.
func (m *SessionManager) Logout(ctx context.Context) error {
	return m.clear(ctx)
}

func (m *SessionManager) persist(ctx context.Context, s *models.Session, at time.Time) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := m.kv.Set(ctx, userKey, string(data)); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	if err := m.kv.Set(ctx, loginTimeKey, strconv.FormatInt(at.UnixMilli(), 10)); err != nil {
		return fmt.Errorf("failed to store login time: %w", err)
	}
	m.current = s
	return nil
}

func (m *SessionManager) clear(ctx context.Context) error {
	m.current = nil
	if err := m.kv.Remove(ctx, userKey); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	if err := m.kv.Remove(ctx, loginTimeKey); err != nil {
		return fmt.Errorf("failed to remove login time: %w", err)
	}
	return nil
}

// DisplayNameFromEmail turns the local part of an address into a name:
// "ahmed.hassan123@x" becomes "Ahmed Hassan".
func DisplayNameFromEmail(email string) string {
	local := email
	if i := strings.Index(email, "@"); i >= 0 {
		local = email[:i]
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return ' '
	}, local)

	words := strings.Fields(cleaned)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	if len(words) == 0 {
		return local
	}
	return strings.Join(words, " ")
}

// Sessions hands out a SessionManager per browser client, each one working
// on its own namespace of the shared store.
type Sessions struct {
	kv       storage.KV
	verifier CredentialVerifier
}

func NewSessions(kv storage.KV, verifier CredentialVerifier) *Sessions {
	return &Sessions{kv: kv, verifier: verifier}
}

func (s *Sessions) For(clientID string) *SessionManager {
	return NewSessionManager(storage.WithPrefix(s.kv, "client:"+clientID+":"), s.verifier)
}
