// Package service holds the training lifecycle engine and the broker
// publisher. The engine owns every state transition of a training and all
// ownership/roster authorization rules; handlers stay thin.
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/konris39/TrainGymAppCalendar/internal/model"
	"github.com/konris39/TrainGymAppCalendar/internal/queue"
	"github.com/konris39/TrainGymAppCalendar/internal/repository"
)

// UserStore is the slice of the user repository the engine needs.
type UserStore interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// TrainingStore persists training rows.
type TrainingStore interface {
	Create(ctx context.Context, t *model.Training) error
	GetByID(ctx context.Context, id uint64) (model.Training, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Training, error)
	ListPendingByTrainer(ctx context.Context, trainerID uint64) ([]model.Training, error)
	Update(ctx context.Context, t model.Training) error
	Delete(ctx context.Context, id uint64) error
}

// GroupStore answers roster questions. The engine queries it fresh on
// every moderation call so roster changes take effect immediately.
type GroupStore interface {
	FirstTrainerFor(ctx context.Context, clientID uint64) (uint64, error)
	IsTrainerOf(ctx context.Context, trainerID, clientID uint64) (bool, error)
}

// Publisher is the fire-and-forget notification channel.
type Publisher interface {
	PublishTrainerRequest(ctx context.Context, event queue.TrainerRequestEvent) error
}

// CreateTrainingInput is the request to schedule a new training. With
// AskTrainer set the training starts unaccepted and the client's trainer
// is notified.
type CreateTrainingInput struct {
	Name         string
	Description  string
	TrainingDate time.Time
	AskTrainer   bool
}

// UpdateTrainingInput is a partial update; nil fields stay untouched.
// Completed and accepted are deliberately absent, they move only through
// Complete and Accept/Decline.
type UpdateTrainingInput struct {
	Name         *string
	Description  *string
	TrainingDate *time.Time
}

type TrainingService struct {
	users     UserStore
	trainings TrainingStore
	groups    GroupStore
	publisher Publisher
	log       zerolog.Logger
}

func NewTrainingService(users UserStore, trainings TrainingStore, groups GroupStore, publisher Publisher, log zerolog.Logger) *TrainingService {
	return &TrainingService{users: users, trainings: trainings, groups: groups, publisher: publisher, log: log}
}

// Create persists the training first and only then, on the ask-trainer
// path, resolves the owner's trainer and publishes the approval event.
// The persisted row is the source of truth: a missing trainer membership
// or a failed publish never fails the creation.
func (s *TrainingService) Create(ctx context.Context, ownerID uint64, in CreateTrainingInput) (model.Training, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return model.Training{}, err
	}
	t := model.Training{
		UserID:       owner.ID,
		Name:         in.Name,
		Description:  in.Description,
		TrainingDate: in.TrainingDate,
		Accepted:     !in.AskTrainer,
	}
	if err := s.trainings.Create(ctx, &t); err != nil {
		return model.Training{}, err
	}
	if in.AskTrainer {
		s.notifyTrainer(ctx, t)
	}
	return t, nil
}

// notifyTrainer emits at most one approval event for the freshly created
// training. Without a membership the training simply stays pending.
func (s *TrainingService) notifyTrainer(ctx context.Context, t model.Training) {
	trainerID, err := s.groups.FirstTrainerFor(ctx, t.UserID)
	if err == repository.ErrNotFound {
		return
	}
	if err != nil {
		s.log.Error().Err(err).Uint64("training_id", t.ID).Msg("trainer lookup failed, skipping notification")
		return
	}
	_ = s.publisher.PublishTrainerRequest(ctx, queue.TrainerRequestEvent{
		TrainingID: t.ID,
		UserID:     t.UserID,
		TrainerID:  trainerID,
	})
}

// List returns all trainings owned by the caller.
func (s *TrainingService) List(ctx context.Context, ownerID uint64) ([]model.Training, error) {
	return s.trainings.ListByOwner(ctx, ownerID)
}

// Get returns the training only when the caller owns it. Foreign trainings
// look exactly like missing ones so reads disclose nothing.
func (s *TrainingService) Get(ctx context.Context, ownerID, trainingID uint64) (model.Training, error) {
	return s.getOwned(ctx, ownerID, trainingID)
}

// Update applies the partial update to an owned training.
func (s *TrainingService) Update(ctx context.Context, ownerID, trainingID uint64, in UpdateTrainingInput) (model.Training, error) {
	t, err := s.getOwned(ctx, ownerID, trainingID)
	if err != nil {
		return model.Training{}, err
	}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.TrainingDate != nil {
		t.TrainingDate = *in.TrainingDate
	}
	if err := s.trainings.Update(ctx, t); err != nil {
		return model.Training{}, err
	}
	return t, nil
}

// Complete marks an owned training as done. Completing twice is a no-op
// success; completed never transitions back.
func (s *TrainingService) Complete(ctx context.Context, ownerID, trainingID uint64) (model.Training, error) {
	t, err := s.getOwned(ctx, ownerID, trainingID)
	if err != nil {
		return model.Training{}, err
	}
	t.Completed = true
	if err := s.trainings.Update(ctx, t); err != nil {
		return model.Training{}, err
	}
	return t, nil
}

// Delete hard-deletes an owned training.
func (s *TrainingService) Delete(ctx context.Context, ownerID, trainingID uint64) error {
	if _, err := s.getOwned(ctx, ownerID, trainingID); err != nil {
		return err
	}
	return s.trainings.Delete(ctx, trainingID)
}

// ListPending returns the unaccepted trainings of every client in the
// trainer's roster.
func (s *TrainingService) ListPending(ctx context.Context, trainer model.User) ([]model.Training, error) {
	if !trainer.IsTrainer {
		return nil, repository.ErrForbidden
	}
	return s.trainings.ListPendingByTrainer(ctx, trainer.ID)
}

// Accept flips an unaccepted training to accepted. Only the trainer
// currently supervising the owner may do it.
func (s *TrainingService) Accept(ctx context.Context, trainer model.User, trainingID uint64) error {
	t, err := s.moderated(ctx, trainer, trainingID)
	if err != nil {
		return err
	}
	t.Accepted = true
	return s.trainings.Update(ctx, t)
}

// Decline destroys the approval request: the training is deleted, not
// flagged.
func (s *TrainingService) Decline(ctx context.Context, trainer model.User, trainingID uint64) error {
	t, err := s.moderated(ctx, trainer, trainingID)
	if err != nil {
		return err
	}
	return s.trainings.Delete(ctx, t.ID)
}

// moderated is the single authorization predicate for trainer moderation:
// caller must hold the trainer flag (Forbidden), the training must exist
// (NotFound) and its owner must be in the caller's roster (Forbidden).
// Unlike the owner read path, this one does distinguish Forbidden from
// NotFound.
func (s *TrainingService) moderated(ctx context.Context, trainer model.User, trainingID uint64) (model.Training, error) {
	if !trainer.IsTrainer {
		return model.Training{}, repository.ErrForbidden
	}
	t, err := s.trainings.GetByID(ctx, trainingID)
	if err != nil {
		return model.Training{}, err
	}
	ok, err := s.groups.IsTrainerOf(ctx, trainer.ID, t.UserID)
	if err != nil {
		return model.Training{}, err
	}
	if !ok {
		return model.Training{}, repository.ErrForbidden
	}
	return t, nil
}

// getOwned collapses "missing" and "not yours" into ErrNotFound.
func (s *TrainingService) getOwned(ctx context.Context, ownerID, trainingID uint64) (model.Training, error) {
	t, err := s.trainings.GetByID(ctx, trainingID)
	if err != nil {
		return model.Training{}, err
	}
	if t.UserID != ownerID {
		return model.Training{}, repository.ErrNotFound
	}
	return t, nil
}
