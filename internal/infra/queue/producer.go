package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// CallJob is the detached continuation of POST /api/calls: the uploaded
// audio sits on disk, the Call row already exists, and the worker picks it
// up from here.
type CallJob struct {
	CallID    string `json:"call_id"`
	AudioPath string `json:"audio_path"`
}

type ProducerInterface interface {
	PublishCallJob(ctx context.Context, job CallJob) error
}

type Producer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *Producer {
	return &Producer{Ch: ch}
}

func (p *Producer) PublishCallJob(ctx context.Context, job CallJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal call job: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish call job: %w", err)
	}

	return nil
}
