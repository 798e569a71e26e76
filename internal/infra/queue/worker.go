package queue

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/lead-insights/internal/infra/metrics"
)

// CallProcessor runs the enrichment continuation for one uploaded call.
type CallProcessor interface {
	Execute(ctx context.Context, callID, audioPath string) error
}

type Worker struct {
	Channel   *amqp.Channel
	Processor CallProcessor
	Log       *logrus.Entry
}

func NewWorker(ch *amqp.Channel, processor CallProcessor, log *logrus.Entry) *Worker {
	return &Worker{
		Channel:   ch,
		Processor: processor,
		Log:       log.WithField("component", "call-worker"),
	}
}

// Start consumes call-analysis jobs until the channel closes. Failures are
// logged and dead-lettered, never retried and never surfaced to the client
// that uploaded the call.
func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		w.Log.WithError(err).Fatal("failed to register RabbitMQ consumer")
	}

	w.Log.WithField("queue", queueName).Info("call worker waiting for jobs")

	for d := range msgs {
		var job CallJob
		if err := json.Unmarshal(d.Body, &job); err != nil {
			w.Log.WithError(err).Error("malformed call job, dead-lettering")
			// Rotten message. Reject without requeue so it cannot jam the queue.
			d.Nack(false, false)
			continue
		}

		log := w.Log.WithField("call_id", job.CallID)
		log.Info("processing call analysis")

		if err := w.Processor.Execute(context.Background(), job.CallID, job.AudioPath); err != nil {
			log.WithError(err).Error("call analysis failed")
			metrics.RecordCallProcessed("error")
			d.Nack(false, false)
			continue
		}

		log.Info("call analysis completed")
		metrics.RecordCallProcessed("ok")
		d.Ack(false)
	}
}
