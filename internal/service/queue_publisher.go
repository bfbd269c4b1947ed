package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/konris39/TrainGymAppCalendar/internal/queue"
)

// AmqpPublisher publishes approval events to RabbitMQ. Publishing is
// best-effort: every error is logged and returned so the caller can ignore
// it without interrupting the request that triggered it.
type AmqpPublisher struct {
	URL string
	Log zerolog.Logger
}

func NewAmqpPublisher(url string, log zerolog.Logger) *AmqpPublisher {
	return &AmqpPublisher{URL: url, Log: log}
}

// PublishTrainerRequest sends the event to the durable trainer.requests
// queue with persistent delivery. Queue declaration is idempotent.
func (p *AmqpPublisher) PublishTrainerRequest(ctx context.Context, event queue.TrainerRequestEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.Error().Err(err).Msg("rabbitmq dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Error().Err(err).Msg("rabbitmq channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.TrainerRequestName, true, false, false, false, nil); err != nil {
		p.Log.Error().Err(err).Msg("rabbitmq queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.Log.Error().Err(err).Msg("marshal trainer request failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.TrainerRequestName, false, false, pub); err != nil {
		p.Log.Error().Err(err).Msg("rabbitmq publish failed")
		return err
	}
	return nil
}
