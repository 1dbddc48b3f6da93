package repository

import (
	"context"
	"sync"

	"cuet-tuition-backend/internal/models"
)

// MemoryListingRepo serves a fixed tutor catalog.
type MemoryListingRepo struct {
	listings []models.TutorListing
}

func NewMemoryListingRepo(listings []models.TutorListing) *MemoryListingRepo {
	return &MemoryListingRepo{listings: listings}
}

func (r *MemoryListingRepo) ListTutors(ctx context.Context) ([]models.TutorListing, error) {
	out := make([]models.TutorListing, len(r.listings))
	copy(out, r.listings)
	return out, nil
}

type MemoryTuitionRepo struct {
	mu       sync.RWMutex
	tuitions []models.Tuition
}

func NewMemoryTuitionRepo(seed []models.Tuition) *MemoryTuitionRepo {
	return &MemoryTuitionRepo{tuitions: append([]models.Tuition(nil), seed...)}
}

func (r *MemoryTuitionRepo) List(ctx context.Context) ([]models.Tuition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Tuition, len(r.tuitions))
	copy(out, r.tuitions)
	return out, nil
}

// Create puts t at the head of the board.
func (r *MemoryTuitionRepo) Create(ctx context.Context, t *models.Tuition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tuitions = append([]models.Tuition{*t}, r.tuitions...)
	return nil
}
