package repository

import (
	"context"
	"database/sql"

	"github.com/konris39/TrainGymAppCalendar/internal/model"
)

// RecommendedRepo reads the training templates users can schedule from.
// Templates are seeded by migration and read-only at runtime.
type RecommendedRepo struct{ DB *sql.DB }

func NewRecommendedRepo(db *sql.DB) *RecommendedRepo { return &RecommendedRepo{DB: db} }

func (r *RecommendedRepo) List(ctx context.Context) ([]model.RecommendedTraining, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,description,type FROM recommended_trainings ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RecommendedTraining
	for rows.Next() {
		var t model.RecommendedTraining
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Type); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *RecommendedRepo) GetByID(ctx context.Context, id uint64) (model.RecommendedTraining, error) {
	var t model.RecommendedTraining
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,description,type FROM recommended_trainings WHERE id=? LIMIT 1", id).
		Scan(&t.ID, &t.Name, &t.Description, &t.Type)
	if err == sql.ErrNoRows {
		return model.RecommendedTraining{}, ErrNotFound
	}
	return t, err
}
