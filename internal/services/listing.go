package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"cuet-tuition-backend/internal/models"
)

// ListingSource supplies the tutor catalog.
type ListingSource interface {
	ListTutors(ctx context.Context) ([]models.TutorListing, error)
}

type ListingService struct {
	source ListingSource
}

func NewListingService(source ListingSource) *ListingService {
	return &ListingService{source: source}
}

func (s *ListingService) Search(ctx context.Context, c models.FilterCriteria) ([]models.TutorListing, error) {
	listings, err := s.source.ListTutors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tutor listings: %w", err)
	}
	return FilterListings(listings, c), nil
}

func (s *ListingService) Subjects(ctx context.Context) ([]string, error) {
	listings, err := s.source.ListTutors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tutor listings: %w", err)
	}
	return ListingSubjects(listings), nil
}

func (s *ListingService) Departments(ctx context.Context) ([]string, error) {
	listings, err := s.source.ListTutors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tutor listings: %w", err)
	}
	return ListingDepartments(listings), nil
}

// FilterListings returns, in their original order, the listings matching
// every active clause of c.
func FilterListings(listings []models.TutorListing, c models.FilterCriteria) []models.TutorListing {
	query := strings.ToLower(c.SearchText)

	out := make([]models.TutorListing, 0, len(listings))
	for _, l := range listings {
		if matchesListing(l, c, query) {
			out = append(out, l)
		}
	}
	return out
}

func matchesListing(l models.TutorListing, c models.FilterCriteria, query string) bool {
	if query != "" && !containsFold(l.Name, query) && !anyContainsFold(l.Subjects, query) {
		return false
	}
	if c.Department != "" && l.Department != c.Department {
		return false
	}
	if c.Subject != "" && !slices.Contains(l.Subjects, c.Subject) {
		return false
	}
	if l.HourlyRate < c.PriceFloor {
		return false
	}
	if c.PriceCeiling != nil && l.HourlyRate > *c.PriceCeiling {
		return false
	}
	return true
}

// ListingSubjects lists every subject once, in first-seen order.
func ListingSubjects(listings []models.TutorListing) []string {
	seen := make(map[string]struct{})
	subjects := make([]string, 0)
	for _, l := range listings {
		for _, s := range l.Subjects {
			subjects = appendUnique(subjects, seen, s)
		}
	}
	return subjects
}

func ListingDepartments(listings []models.TutorListing) []string {
	seen := make(map[string]struct{})
	departments := make([]string, 0)
	for _, l := range listings {
		departments = appendUnique(departments, seen, l.Department)
	}
	return departments
}

// containsFold expects lowerQuery to be lower-cased already.
func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}

func anyContainsFold(values []string, lowerQuery string) bool {
	for _, v := range values {
		if containsFold(v, lowerQuery) {
			return true
		}
	}
	return false
}

func appendUnique(out []string, seen map[string]struct{}, v string) []string {
	if v == "" {
		return out
	}
	if _, ok := seen[v]; ok {
		return out
	}
	seen[v] = struct{}{}
	return append(out, v)
}
