// Package queue carries dispatch jobs between the scheduler and the
// worker over RabbitMQ. Jobs are tiny: one campaign id each; all state
// lives in the database.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

const maxRetries = 3

// dispatchJob is the wire format of one queued dispatch.
type dispatchJob struct {
	CampaignID string `json:"campaign_id"`
}

// Connection bundles the AMQP connection, channel and declared queue.
type Connection struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// Dial connects to the broker and declares the durable dispatch queue.
func Dial(addr, queueName string) (*Connection, error) {
	conn, err := amqp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("connecting to broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}
	if _, err = ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring queue %s: %w", queueName, err)
	}
	return &Connection{conn: conn, channel: ch, queue: queueName}, nil
}

func (c *Connection) Close() {
	c.channel.Close()
	c.conn.Close()
}

// PublishDispatch enqueues one campaign for the worker.
func (c *Connection) PublishDispatch(ctx context.Context, campaignID string) error {
	body, err := json.Marshal(dispatchJob{CampaignID: campaignID})
	if err != nil {
		return err
	}
	return c.channel.PublishWithContext(ctx, "", c.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Consume delivers queued campaign ids to the handler until the context is
// cancelled. A handler error requeues the job up to maxRetries times via a
// retry-count header; after that the job is dropped with an error log.
func (c *Connection) Consume(ctx context.Context, logger *slog.Logger, handler func(ctx context.Context, campaignID string) error) error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("registering consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			var job dispatchJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				logger.Warn("dropping malformed dispatch job", slog.Any("error", err))
				_ = d.Ack(false)
				continue
			}
			if err := handler(ctx, job.CampaignID); err != nil {
				retries := retryCount(d.Headers)
				if retries < maxRetries {
					logger.Warn("dispatch job failed, requeueing",
						slog.String("campaign_id", job.CampaignID),
						slog.Int("attempt", retries+1),
						slog.Any("error", err))
					// Republish with an incremented retry header; a plain
					// Nack requeue would never advance the count.
					_ = c.channel.PublishWithContext(ctx, "", c.queue, false, false, amqp.Publishing{
						ContentType:  "application/json",
						DeliveryMode: amqp.Persistent,
						Headers:      amqp.Table{"x-retry-count": int32(retries + 1)},
						Body:         d.Body,
					})
				} else {
					logger.Error("dispatch job permanently failed",
						slog.String("campaign_id", job.CampaignID),
						slog.Any("error", err))
				}
			}
			_ = d.Ack(false)
		}
	}
}

func retryCount(headers amqp.Table) int {
	if headers == nil {
		return 0
	}
	if v, ok := headers["x-retry-count"]; ok {
		if n, ok := v.(int32); ok {
			return int(n)
		}
	}
	return 0
}
