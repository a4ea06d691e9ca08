package bankfeed

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/finledger/finledger/internal/core/ports/repositories"
	"github.com/finledger/finledger/internal/platform/metrics"
	"github.com/rabbitmq/amqp091-go"
)

// Consumer drains the bank feed queue into the bank transaction store. The
// upsert is idempotent on the source id, so redeliveries are harmless.
type Consumer struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string

	bankTxRepo portsrepo.BankTransactionWriter
	metrics    *metrics.Metrics
}

// NewConsumer dials the broker and declares the exchange, queue and binding.
func NewConsumer(url, exchangeName, queueName string, bankTxRepo portsrepo.BankTransactionWriter, m *metrics.Metrics) (*Consumer, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	consumer := &Consumer{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
		bankTxRepo:   bankTxRepo,
		metrics:      m,
	}

	if err := consumer.setup(); err != nil {
		consumer.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return consumer, nil
}

func (c *Consumer) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = c.channel.QueueBind(
		c.queueName,    // queue name
		c.queueName,    // routing key (same as queue name for direct exchange)
		c.exchangeName, // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// Run consumes bank transaction messages until the context is cancelled.
// Malformed messages are rejected without requeue; storage failures requeue.
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack (we want manual ack)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming bank feed messages", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping message consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}
			c.handle(ctx, delivery)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, delivery amqp091.Delivery) {
	msg, err := BankTransactionMessageFromJSON(delivery.Body)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to unmarshal bank feed message", "error", err)
		delivery.Nack(false, false) // reject and don't requeue
		c.observe("rejected")
		return
	}
	if err := msg.Validate(); err != nil {
		slog.ErrorContext(ctx, "Invalid bank feed message", "error", err)
		delivery.Nack(false, false)
		c.observe("rejected")
		return
	}

	if err := c.bankTxRepo.UpsertBankTransaction(ctx, msg.ToDomain()); err != nil {
		slog.ErrorContext(ctx, "Failed to upsert bank transaction",
			"error", err,
			"bank_transaction_id", msg.ID)
		delivery.Nack(false, true) // reject and requeue
		c.observe("requeued")
		return
	}

	delivery.Ack(false)
	c.observe("ok")
	slog.InfoContext(ctx, "Bank transaction upserted",
		"bank_transaction_id", msg.ID,
		"type", msg.Type)
}

func (c *Consumer) observe(outcome string) {
	if c.metrics != nil {
		c.metrics.ObserveFeedMessage(outcome)
	}
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
