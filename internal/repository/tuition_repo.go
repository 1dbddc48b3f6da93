package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"cuet-tuition-backend/internal/models"
)

type TuitionRepo struct {
	pool *pgxpool.Pool
}

func NewTuitionRepo(pool *pgxpool.Pool) *TuitionRepo {
	return &TuitionRepo{pool: pool}
}

func (r *TuitionRepo) List(ctx context.Context) ([]models.Tuition, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, subject, level, location, schedule, monthly_fee,
		       tutor_id, tutor_name, tutor_department, tutor_year, tutor_rating,
		       description, requirements, posted_at
		FROM tuitions
		ORDER BY posted_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tuitions := make([]models.Tuition, 0)
	for rows.Next() {
		var t models.Tuition
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Subject, &t.Level, &t.Location, &t.Schedule, &t.MonthlyFee,
			&t.Tutor.ID, &t.Tutor.Name, &t.Tutor.Department, &t.Tutor.Year, &t.Tutor.Rating,
			&t.Description, &t.Requirements, &t.PostedAt,
		); err != nil {
			return nil, err
		}
		tuitions = append(tuitions, t)
	}

	return tuitions, rows.Err()
}

func (r *TuitionRepo) Create(ctx context.Context, t *models.Tuition) error {
	query := `
		INSERT INTO tuitions (
			id, title, subject, level, location, schedule, monthly_fee,
			tutor_id, tutor_name, tutor_department, tutor_year, tutor_rating,
			description, requirements, posted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.Title, t.Subject, t.Level, t.Location, t.Schedule, t.MonthlyFee,
		t.Tutor.ID, t.Tutor.Name, t.Tutor.Department, t.Tutor.Year, t.Tutor.Rating,
		t.Description, t.Requirements, t.PostedAt,
	)
	return err
}
