package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpFeedbackSink publishes ratings as persistent JSON messages to a durable
// queue on the default exchange. The connection is dialed lazily and
// re-dialed after the broker closes it.
type amqpFeedbackSink struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection

	logger *logger.Logger
}

func NewAMQPFeedbackSink(cfg config.Feedback, log *logger.Logger) (FeedbackSink, error) {
	if cfg.AMQPURL == "" {
		return nil, fmt.Errorf("empty amqp url")
	}
	if cfg.Queue == "" {
		return nil, fmt.Errorf("empty amqp queue")
	}

	return &amqpFeedbackSink{url: cfg.AMQPURL, queue: cfg.Queue, logger: log}, nil
}

func (a *amqpFeedbackSink) Send(ctx context.Context, feedback models.Feedback) error {
	body, err := json.Marshal(newFeedbackEvent(feedback))
	if err != nil {
		return fmt.Errorf("%w: marshal event: %w", ErrFeedbackFailed, err)
	}

	conn, err := a.connection()
	if err != nil {
		return fmt.Errorf("%w: dial: %w", ErrFeedbackFailed, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("%w: open channel: %w", ErrFeedbackFailed, err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(a.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("%w: declare queue: %w", ErrFeedbackFailed, err)
	}

	err = ch.PublishWithContext(ctx, "", a.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: publish: %w", ErrFeedbackFailed, err)
	}

	return nil
}

func (a *amqpFeedbackSink) connection() (*amqp.Connection, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conn != nil && !a.conn.IsClosed() {
		return a.conn, nil
	}

	conn, err := amqp.Dial(a.url)
	if err != nil {
		return nil, err
	}

	a.logger.Info().Str("queue", a.queue).Msg("connected to feedback broker")
	a.conn = conn
	return conn, nil
}

// Close closes the broker connection if one is open.
func (a *amqpFeedbackSink) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conn == nil {
		return nil
	}
	err := a.conn.Close()
	a.conn = nil
	return err
}
