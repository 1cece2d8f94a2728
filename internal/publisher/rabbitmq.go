package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"social_agent/internal/domain"
)

// QueueConfig names the broker and the route scheduled posts travel on.
type QueueConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

// QueueSink hands scheduled posts to a downstream publisher over AMQP. A post
// counts as scheduled once the broker confirms it.
type QueueSink struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	route  QueueConfig
	logger *slog.Logger

	// one publish/confirm pair in flight per channel
	mu  sync.Mutex
	now func() time.Time
}

// DialQueue connects to the broker, declares the post route and switches the
// channel into confirm mode.
func DialQueue(cfg QueueConfig, logger *slog.Logger) (*QueueSink, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	sink := &QueueSink{
		conn:   conn,
		route:  cfg,
		logger: logger.With("component", "queue_sink"),
		now:    time.Now,
	}

	if err := sink.prepareChannel(); err != nil {
		_ = sink.Close()
		return nil, err
	}

	sink.logger.Info("post queue ready",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)
	return sink, nil
}

func (q *QueueSink) prepareChannel() error {
	ch, err := q.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	q.ch = ch

	const durable = true
	if err := ch.ExchangeDeclare(q.route.Exchange, amqp.ExchangeDirect, durable, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %q: %w", q.route.Exchange, err)
	}

	queue, err := ch.QueueDeclare(q.route.QueueName, durable, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue %q: %w", q.route.QueueName, err)
	}
	if err := ch.QueueBind(queue.Name, q.route.RoutingKey, q.route.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %q: %w", queue.Name, err)
	}

	if err := ch.Confirm(false); err != nil {
		return fmt.Errorf("enable publisher confirms: %w", err)
	}
	return nil
}

// Schedule publishes the post and blocks until the broker acks or nacks it.
func (q *QueueSink) Schedule(ctx context.Context, post domain.ScheduledPost) error {
	sentAt := q.now()
	body, err := encodeMessage(post, sentAt)
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		MessageId:    uuid.NewString(),
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    sentAt,
		Body:         body,
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	confirm, err := q.ch.PublishWithDeferredConfirmWithContext(ctx, q.route.Exchange, q.route.RoutingKey, false, false, msg)
	if err != nil {
		return fmt.Errorf("publish post %s: %w", msg.MessageId, err)
	}

	acked, err := confirm.WaitContext(ctx)
	switch {
	case err != nil:
		return fmt.Errorf("wait for confirm of %s: %w", msg.MessageId, err)
	case !acked:
		return fmt.Errorf("broker nacked post %s", msg.MessageId)
	}

	q.logger.Debug("post queued",
		"message_id", msg.MessageId,
		"platform", post.Platform,
		"action", post.Action,
		"post_time", domain.FormatPostTime(post.PostTime),
	)
	return nil
}

// Close shuts the channel and then the connection.
func (q *QueueSink) Close() error {
	var errs []error
	if q.ch != nil {
		if err := q.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if q.conn != nil && !q.conn.IsClosed() {
		errs = append(errs, q.conn.Close())
	}
	return errors.Join(errs...)
}
