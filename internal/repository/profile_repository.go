package repository

import (
	"context"
	"database/sql"

	"github.com/konris39/TrainGymAppCalendar/internal/model"
)

type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

// ProfilePatch carries the optional fields of a partial profile update.
// Nil pointers leave the stored value untouched.
type ProfilePatch struct {
	Weight *float64
	Height *float64
	Age    *int
	BP     *float64
	SQ     *float64
	DL     *float64
}

// GetByUserID fetches the 1:1 profile row of a user.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uint64) (model.ProfileData, error) {
	var d model.ProfileData
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,weight,height,age,bp,sq,dl FROM user_data WHERE user_id=? LIMIT 1",
		userID).Scan(&d.ID, &d.UserID, &d.Weight, &d.Height, &d.Age, &d.BP, &d.SQ, &d.DL)
	if err == sql.ErrNoRows {
		return model.ProfileData{}, ErrNotFound
	}
	return d, err
}

// UpdateByUserID applies the patch to the user's profile row and returns
// the updated record.
func (r *ProfileRepo) UpdateByUserID(ctx context.Context, userID uint64, patch ProfilePatch) (model.ProfileData, error) {
	d, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return model.ProfileData{}, err
	}
	if patch.Weight != nil {
		d.Weight = *patch.Weight
	}
	if patch.Height != nil {
		d.Height = *patch.Height
	}
	if patch.Age != nil {
		d.Age = *patch.Age
	}
	if patch.BP != nil {
		d.BP = *patch.BP
	}
	if patch.SQ != nil {
		d.SQ = *patch.SQ
	}
	if patch.DL != nil {
		d.DL = *patch.DL
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE user_data SET weight=?, height=?, age=?, bp=?, sq=?, dl=? WHERE user_id=?",
		d.Weight, d.Height, d.Age, d.BP, d.SQ, d.DL, userID)
	if err != nil {
		return model.ProfileData{}, err
	}
	return d, nil
}
