package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"cuet-tuition-backend/internal/models"
)

// TuitionStore persists tuition posts, newest first on List.
type TuitionStore interface {
	List(ctx context.Context) ([]models.Tuition, error)
	Create(ctx context.Context, t *models.Tuition) error
}

// TuitionNotifier is told about every new post.
type TuitionNotifier interface {
	PublishTuition(ctx context.Context, t *models.Tuition) error
}

type TuitionService struct {
	store    TuitionStore
	notifier TuitionNotifier
	now      func() time.Time
}

func NewTuitionService(store TuitionStore, notifier TuitionNotifier) *TuitionService {
	return &TuitionService{store: store, notifier: notifier, now: time.Now}
}

func (s *TuitionService) List(ctx context.Context, c models.TuitionCriteria) ([]models.Tuition, error) {
	tuitions, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tuitions: %w", err)
	}
	return FilterTuitions(tuitions, c), nil
}

func (s *TuitionService) Subjects(ctx context.Context) ([]string, error) {
	tuitions, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tuitions: %w", err)
	}
	return TuitionSubjects(tuitions), nil
}

func (s *TuitionService) Levels(ctx context.Context) ([]string, error) {
	tuitions, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tuitions: %w", err)
	}
	return TuitionLevels(tuitions), nil
}

// Post publishes a tuition on behalf of a signed-in tutor.
func (s *TuitionService) Post(ctx context.Context, sess *models.Session, req models.CreateTuitionRequest) (*models.Tuition, error) {
	if sess == nil {
		return nil, &UnauthorizedError{Message: "Please sign in to post a tuition"}
	}
	if sess.Role != models.RoleTutor {
		return nil, &ForbiddenError{Message: "Only tutors can post tuitions"}
	}

	fieldErrors := make(map[string]string)
	required := map[string]string{
		"title":       req.Title,
		"subject":     req.Subject,
		"level":       req.Level,
		"location":    req.Location,
		"schedule":    req.Schedule,
		"description": req.Description,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			fieldErrors[field] = "This field is required"
		}
	}
	if req.MonthlyFee <= 0 {
		fieldErrors["monthly_fee"] = "This field is required"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	t := &models.Tuition{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Subject:     req.Subject,
		Level:       req.Level,
		Location:    req.Location,
		Schedule:    strings.TrimSpace(req.Schedule),
		MonthlyFee:  req.MonthlyFee,
		Description: strings.TrimSpace(req.Description),
		Tutor: models.TuitionTutor{
			ID:         sess.ID,
			Name:       sess.Name,
			Department: sess.Department,
			Year:       sess.Year,
			Rating:     sess.Rating,
		},
		Requirements: cleanRequirements(req.Requirements),
		PostedAt:     s.now().UTC(),
	}

	if err := s.store.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save tuition: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.PublishTuition(ctx, t); err != nil {
			log.Printf("tuition %s: failed to notify subscribers: %v", t.ID, err)
		}
	}

	return t, nil
}

// FilterTuitions keeps the order of tuitions. The search text matches the
// title, the subject or the tutor's name.
func FilterTuitions(tuitions []models.Tuition, c models.TuitionCriteria) []models.Tuition {
	query := strings.ToLower(c.SearchText)

	out := make([]models.Tuition, 0, len(tuitions))
	for _, t := range tuitions {
		if query != "" && !containsFold(t.Title, query) && !containsFold(t.Subject, query) && !containsFold(t.Tutor.Name, query) {
			continue
		}
		if !isWildcard(c.Subject) && t.Subject != c.Subject {
			continue
		}
		if !isWildcard(c.Level) && t.Level != c.Level {
			continue
		}
		out = append(out, t)
	}
	return out
}

func TuitionSubjects(tuitions []models.Tuition) []string {
	seen := make(map[string]struct{})
	subjects := make([]string, 0)
	for _, t := range tuitions {
		subjects = appendUnique(subjects, seen, t.Subject)
	}
	return subjects
}

func TuitionLevels(tuitions []models.Tuition) []string {
	seen := make(map[string]struct{})
	levels := make([]string, 0)
	for _, t := range tuitions {
		levels = appendUnique(levels, seen, t.Level)
	}
	return levels
}

func isWildcard(v string) bool {
	return v == "" || v == models.AllOption
}

func cleanRequirements(in []string) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
