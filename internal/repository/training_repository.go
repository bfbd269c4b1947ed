package repository

import (
	"context"
	"database/sql"

	"github.com/konris39/TrainGymAppCalendar/internal/model"
)

type TrainingRepo struct{ DB *sql.DB }

func NewTrainingRepo(db *sql.DB) *TrainingRepo { return &TrainingRepo{DB: db} }

const trainingColumns = "id,user_id,name,description,training_date,completed,accepted"

// Create inserts the training and fills in its generated id.
func (r *TrainingRepo) Create(ctx context.Context, t *model.Training) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO trainings (user_id, name, description, training_date, completed, accepted) VALUES (?,?,?,?,?,?)",
		t.UserID, t.Name, t.Description, t.TrainingDate, t.Completed, t.Accepted)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID fetches a training regardless of owner. Ownership filtering is
// the service's job so the moderation path can see foreign trainings.
func (r *TrainingRepo) GetByID(ctx context.Context, id uint64) (model.Training, error) {
	var t model.Training
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+trainingColumns+" FROM trainings WHERE id=? LIMIT 1", id).
		Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.TrainingDate, &t.Completed, &t.Accepted)
	if err == sql.ErrNoRows {
		return model.Training{}, ErrNotFound
	}
	return t, err
}

// ListByOwner returns all trainings of one user, soonest date first.
func (r *TrainingRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Training, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+trainingColumns+" FROM trainings WHERE user_id=? ORDER BY training_date, id", ownerID)
	if err != nil {
		return nil, err
	}
	return scanTrainings(rows)
}

// ListPendingByTrainer returns the accepted=false trainings owned by any
// client in the trainer's roster.
func (r *TrainingRepo) ListPendingByTrainer(ctx context.Context, trainerID uint64) ([]model.Training, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id,t.user_id,t.name,t.description,t.training_date,t.completed,t.accepted
		   FROM trainings t
		   JOIN user_groups g ON g.user_id = t.user_id
		  WHERE g.trainer_id = ? AND t.accepted = FALSE
		  ORDER BY t.training_date, t.id`, trainerID)
	if err != nil {
		return nil, err
	}
	return scanTrainings(rows)
}

// Update persists every mutable column of the row.
func (r *TrainingRepo) Update(ctx context.Context, t model.Training) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE trainings SET name=?, description=?, training_date=?, completed=?, accepted=? WHERE id=?",
		t.Name, t.Description, t.TrainingDate, t.Completed, t.Accepted, t.ID)
	return err
}

// Delete removes the training row.
func (r *TrainingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM trainings WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTrainings(rows *sql.Rows) ([]model.Training, error) {
	defer rows.Close()
	var out []model.Training
	for rows.Next() {
		var t model.Training
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Description,
			&t.TrainingDate, &t.Completed, &t.Accepted); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
