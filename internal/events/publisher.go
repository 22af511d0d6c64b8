// Package events announces completed analyses on a RabbitMQ queue.
package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/streadway/amqp"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
)

// DefaultQueue receives one message per submission
const DefaultQueue = "nutribalance.submissions"

// channel is the subset of *amqp.Channel the publisher uses
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends submissions to a durable queue on the default exchange
type Publisher struct {
	conn    *amqp.Connection
	channel channel
	queue   string
	log     *slog.Logger
}

// Dial connects to the broker at url and declares queue
func Dial(url, queue string, log *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to open rabbitmq channel")
	}

	p, err := newPublisher(ch, queue, log)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn

	go func() {
		if cerr, ok := <-conn.NotifyClose(make(chan *amqp.Error, 1)); ok && cerr != nil {
			log.Warn("rabbitmq connection closed", "error", cerr)
		}
	}()
	return p, nil
}

func newPublisher(ch channel, queue string, log *slog.Logger) (*Publisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, errors.Wrapf(err, "failed to declare queue %s", queue)
	}
	return &Publisher{channel: ch, queue: queue, log: log}, nil
}

// PublishSubmission sends s as a persistent JSON message
func (p *Publisher) PublishSubmission(ctx context.Context, s models.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "failed to encode submission")
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    s.ID,
		Timestamp:    s.Date,
		Type:         "submission.created",
		Body:         body,
	}
	if err := p.channel.Publish("", p.queue, false, false, msg); err != nil {
		return errors.Wrapf(err, "failed to publish submission %s", s.ID)
	}

	p.log.Debug("submission published", "submission_id", s.ID, "queue", p.queue)
	return nil
}

// Close releases the channel and connection
func (p *Publisher) Close() error {
	var errs error
	if err := p.channel.Close(); err != nil {
		errs = errors.CombineErrors(errs, err)
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = errors.CombineErrors(errs, err)
		}
	}
	return errs
}
