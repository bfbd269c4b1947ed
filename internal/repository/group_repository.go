package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/konris39/TrainGymAppCalendar/internal/model"
)

// GroupRepo maintains trainer-client membership pairs. Memberships are
// only ever removed by the user-deletion cascade; there is no single
// "leave group" operation.
type GroupRepo struct{ DB *sql.DB }

func NewGroupRepo(db *sql.DB) *GroupRepo { return &GroupRepo{DB: db} }

// Join resolves the trainer by mail and records the membership. Unknown
// mails and users without the trainer flag come back as ErrNotFound;
// joining the same trainer twice is ErrConflict.
func (r *GroupRepo) Join(ctx context.Context, trainerMail string, clientID uint64) error {
	trainerMail = strings.ToLower(strings.TrimSpace(trainerMail))
	var trainerID uint64
	var isTrainer bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, is_trainer FROM users WHERE mail=? LIMIT 1", trainerMail).
		Scan(&trainerID, &isTrainer)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !isTrainer {
		return ErrNotFound
	}
	if _, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_groups (trainer_id, user_id) VALUES (?,?)",
		trainerID, clientID); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
		return err
	}
	return nil
}

// MembershipsForTrainer lists the trainer's roster rows.
func (r *GroupRepo) MembershipsForTrainer(ctx context.Context, trainerID uint64) ([]model.GroupMembership, error) {
	return r.list(ctx, "trainer_id", trainerID)
}

// MembershipsForClient lists every membership the client is part of.
func (r *GroupRepo) MembershipsForClient(ctx context.Context, clientID uint64) ([]model.GroupMembership, error) {
	return r.list(ctx, "user_id", clientID)
}

// FirstTrainerFor returns the trainer id of the client's earliest
// membership. Clients may hold several memberships; ordering by row id
// makes the approval-notification target deterministic (first join wins).
func (r *GroupRepo) FirstTrainerFor(ctx context.Context, clientID uint64) (uint64, error) {
	var trainerID uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT trainer_id FROM user_groups WHERE user_id=? ORDER BY id ASC LIMIT 1",
		clientID).Scan(&trainerID)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	return trainerID, err
}

// IsTrainerOf reports whether the trainer currently supervises the client.
// Callers check this fresh on every moderation action, never from a cache.
func (r *GroupRepo) IsTrainerOf(ctx context.Context, trainerID, clientID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM user_groups WHERE trainer_id=? AND user_id=? LIMIT 1",
		trainerID, clientID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *GroupRepo) list(ctx context.Context, column string, id uint64) ([]model.GroupMembership, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, trainer_id, user_id FROM user_groups WHERE "+column+"=? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GroupMembership
	for rows.Next() {
		var m model.GroupMembership
		if err := rows.Scan(&m.ID, &m.TrainerID, &m.UserID); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
