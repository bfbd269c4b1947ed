package model

import "time"

// Training is a scheduled or completed workout owned by one user.
// Accepted defaults to true; it is false only when the owner asked for
// trainer approval at creation time and the supervising trainer has not
// accepted yet. Completed never transitions back to false.
type Training struct {
	ID           uint64    // trainings.id
	UserID       uint64    // trainings.user_id (owner)
	Name         string    // trainings.name
	Description  string    // trainings.description
	TrainingDate time.Time // trainings.training_date
	Completed    bool      // trainings.completed
	Accepted     bool      // trainings.accepted
}

// GroupMembership binds one client to one trainer. Rows are only removed
// by the cascade when either side's user row is deleted.
type GroupMembership struct {
	ID        uint64 // user_groups.id
	TrainerID uint64 // user_groups.trainer_id
	UserID    uint64 // user_groups.user_id
}

// RecommendedTraining is a reusable workout template users can schedule
// real trainings from.
type RecommendedTraining struct {
	ID          uint64 // recommended_trainings.id
	Name        string // recommended_trainings.name
	Description string // recommended_trainings.description
	Type        string // recommended_trainings.type
}
