package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"cuet-tuition-backend/internal/models"
)

type ListingRepo struct {
	pool *pgxpool.Pool
}

func NewListingRepo(pool *pgxpool.Pool) *ListingRepo {
	return &ListingRepo{pool: pool}
}

// ListTutors returns the catalog in its display order.
func (r *ListingRepo) ListTutors(ctx context.Context) ([]models.TutorListing, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, department, subjects, rating, review_count, hourly_rate, location, availability, bio
		FROM tutor_listings
		ORDER BY position, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]models.TutorListing, 0)
	for rows.Next() {
		var l models.TutorListing
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Department, &l.Subjects, &l.Rating,
			&l.ReviewCount, &l.HourlyRate, &l.Location, &l.Availability, &l.Bio,
		); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}
