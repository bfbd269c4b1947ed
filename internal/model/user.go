package model

import "time"

// User mirrors the 'users' table. IsTrainer and IsAdmin are independent
// flags, not an enum: an account may hold both at once. PasswordHash is
// never serialized outward; handlers build their own response types.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Mail         string    // users.mail (unique, authentication subject)
	PasswordHash string    // users.password_hash
	IsTrainer    bool      // users.is_trainer
	IsAdmin      bool      // users.is_admin
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
