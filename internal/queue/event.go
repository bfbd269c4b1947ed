// Package queue defines message payloads exchanged over the message broker
// plus the logging-only consumer of trainer approval requests.
package queue

// TrainerRequestName is the queue a client's approval request is published
// to when a training is created with the ask-trainer flag set.
const TrainerRequestName = "trainer.requests"

// TrainerRequestEvent is published at most once per training created with
// approval requested. It carries just the three ids; the consuming side
// owns delivery and any further lookup.
type TrainerRequestEvent struct {
	TrainingID uint64 `json:"trainingId"`
	UserID     uint64 `json:"userId"`
	TrainerID  uint64 `json:"trainerId"`
}
