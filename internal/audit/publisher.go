// Package audit publishes accepted-transaction events to RabbitMQ.
//
// The portal itself is stateless: a manually entered transaction is
// validated, acknowledged and then discarded. The audit stream is the
// only trace that the submission happened, so downstream systems can
// pick it up if they care. The publisher is optional; when AMQP is not
// configured the portal runs without it.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/PutuPutra/finance-portal/internal/core"
	"github.com/PutuPutra/finance-portal/internal/log"
)

// Publisher emits audit events for accepted transactions. Implemented
// by the AMQP client and by Noop for unconfigured deployments.
type Publisher interface {
	PublishTransactionAccepted(ctx context.Context, t core.Transaction, username string) error
	Close() error
}

// Noop discards every event. Used when no AMQP URL is configured.
type Noop struct{}

func (Noop) PublishTransactionAccepted(context.Context, core.Transaction, string) error {
	return nil
}

func (Noop) Close() error { return nil }

// Client publishes audit events on a durable direct exchange.
type Client struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	queue    string
	logger   *log.Logger
}

func NewClient(url, exchange, queue string, logger *log.Logger) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	c := &Client{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		queue:    queue,
		logger:   logger,
	}

	if err := c.setup(); err != nil {
		c.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return c, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchange, // name
		"direct",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queue, // name
		true,    // durable
		false,   // delete when unused
		false,   // exclusive
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = c.channel.QueueBind(
		c.queue,    // queue name
		c.queue,    // routing key (same as queue name for direct exchange)
		c.exchange, // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// PublishTransactionAccepted emits the audit event for a transaction
// the portal just accepted from the given user.
func (c *Client) PublishTransactionAccepted(ctx context.Context, t core.Transaction, username string) error {
	msg := NewTransactionAcceptedMessage(t, username)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchange, // exchange
		c.queue,    // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	c.logger.InfoContext(ctx, "published transaction accepted event",
		log.FieldOperation, log.OpPublish,
		log.FieldTxRef, t.ID,
		log.FieldUsername, username,
		"exchange", c.exchange,
		"queue", c.queue)

	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
