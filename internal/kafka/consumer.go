package kafka

import (
	"context"
	"errors"
	"time"

	"notifysvc/internal/failure"
	"notifysvc/internal/logger"
	"notifysvc/internal/supervisor"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// RecordHandler processes one inbound record. It must absorb its own
// failures; the consumer commits the offset regardless.
type RecordHandler func(ctx context.Context, topic string, value []byte)

type ConsumerConfig struct {
	Brokers []string
	Topics  []string
	GroupID string
}

type Consumer struct {
	cfg     ConsumerConfig
	reader  *kafka.Reader
	handler RecordHandler
	conn    *supervisor.Conn
	log     zerolog.Logger
}

func NewConsumer(cfg ConsumerConfig, handler RecordHandler, conn *supervisor.Conn) *Consumer {
	return &Consumer{
		cfg:     cfg,
		handler: handler,
		conn:    conn,
		log:     logger.Component("kafka"),
	}
}

// Connect verifies the broker is reachable and creates the group reader.
// The supervisor calls this under its retry loop.
func (c *Consumer) Connect(ctx context.Context) error {
	if len(c.cfg.Brokers) == 0 {
		return failure.EnvironmentBrokersError
	}

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	broker, err := kafka.DialContext(dialCtx, "tcp", c.cfg.Brokers[0])
	if err != nil {
		return failure.BrokerUnreachableError.WithErr(err)
	}
	broker.Close()

	c.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:        c.cfg.Brokers,
		GroupTopics:    c.cfg.Topics,
		GroupID:        c.cfg.GroupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
		MaxAttempts:    3,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	c.conn.SetState(supervisor.StateSubscribed)
	for _, topic := range c.cfg.Topics {
		c.log.Info().Str("topic", topic).Str("group_id", c.cfg.GroupID).Msg("subscribed")
	}

	return nil
}

// Run consumes until the context is cancelled. A handler is invoked for
// every fetched record; fetch errors revert the connection state to
// connecting and the reader's own reconnection brings it back.
func (c *Consumer) Run(ctx context.Context) error {
	c.conn.SetState(supervisor.StateConsuming)
	c.log.Info().Str("group_id", c.cfg.GroupID).Msg("kafka consumer started")

	for {
		select {
		case <-ctx.Done():
			c.log.Info().Msg("kafka consumer stopped")
			return c.reader.Close()
		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return c.reader.Close()
				}
				c.conn.SetState(supervisor.StateConnecting)
				c.log.Error().Err(err).Msg("failed to fetch message")
				time.Sleep(time.Second)
				continue
			}

			if c.conn.State() != supervisor.StateConsuming {
				c.conn.SetState(supervisor.StateConsuming)
			}

			c.handler(ctx, msg.Topic, msg.Value)

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.log.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

func (c *Consumer) Close() error {
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
