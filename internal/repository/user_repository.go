package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/konris39/TrainGymAppCalendar/internal/model"
	"github.com/konris39/TrainGymAppCalendar/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,mail,password_hash,is_trainer,is_admin,created_at,updated_at"

// Create inserts a user with both role flags off plus its empty 1:1
// profile row, in one transaction, and returns the new user id.
func (r *UserRepo) Create(ctx context.Context, name, mail, password string, cost int) (uint64, error) {
	mail = strings.ToLower(strings.TrimSpace(mail))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (name, mail, password_hash) VALUES (?,?,?)",
		name, mail, hash)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO user_data (user_id) VALUES (?)", id); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByMail fetches a user by normalized mail.
func (r *UserRepo) GetByMail(ctx context.Context, mail string) (model.User, error) {
	mail = strings.ToLower(strings.TrimSpace(mail))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE mail=? LIMIT 1", mail))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// List returns all users ordered by id. Admin-only at the handler layer.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Mail, &u.PasswordHash,
			&u.IsTrainer, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateSelf changes the profile fields a user may edit on their own
// account. A mail collision surfaces as ErrEmailExists.
func (r *UserRepo) UpdateSelf(ctx context.Context, id uint64, name, mail string) (model.User, error) {
	mail = strings.ToLower(strings.TrimSpace(mail))
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, mail=? WHERE id=?", name, mail, id)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return r.GetByID(ctx, id)
}

// UpdateRoles applies an admin edit: name always, each role flag only when
// the pointer is set.
func (r *UserRepo) UpdateRoles(ctx context.Context, id uint64, name string, trainer, admin *bool) (model.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if trainer != nil {
		u.IsTrainer = *trainer
	}
	if admin != nil {
		u.IsAdmin = *admin
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, is_trainer=?, is_admin=? WHERE id=?",
		name, u.IsTrainer, u.IsAdmin, id); err != nil {
		return model.User{}, err
	}
	u.Name = name
	return u, nil
}

// Delete removes the user row; trainings, memberships and the profile row
// go with it via the schema's ON DELETE CASCADE.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
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

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Mail, &u.PasswordHash,
		&u.IsTrainer, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}
