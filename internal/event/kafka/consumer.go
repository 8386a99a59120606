package kafka

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/shestoi/food-notification/internal/service"
	"github.com/shestoi/food-notification/platform/observability"
)

// MessageReader часть kafka.Reader, которая нужна consumer
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// NewReader создаёт kafka.Reader для топика в consumer group.
// Offset коммитится только явно (CommitInterval = 0).
func NewReader(brokers []string, groupID, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
}

// Consumer читает один топик и передаёт каждое сообщение в handler
type Consumer struct {
	logger      *zap.Logger
	reader      MessageReader
	handler     service.Handler
	serviceName string
	running     atomic.Bool
}

// NewConsumer создаёт новый consumer для топика reader'а
func NewConsumer(logger *zap.Logger, serviceName string, reader MessageReader, handler service.Handler) *Consumer {
	return &Consumer{
		logger:      logger.With(zap.String("group_id", reader.Config().GroupID)),
		reader:      reader,
		handler:     handler,
		serviceName: serviceName,
	}
}

// Start запускает consumer и блокируется до отмены ctx или закрытия reader.
// At-least-once: FetchMessage, offset коммитится только когда handler вызвал ack.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("starting kafka consumer", zap.String("topic", c.reader.Config().Topic))
	c.running.Store(true)
	defer c.running.Store(false)

	for {
		// FetchMessage вместо ReadMessage для ручного контроля commit
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer context cancelled, stopping", zap.String("topic", c.reader.Config().Topic))
				return nil
			}
			// io.EOF — reader закрыт
			if errors.Is(err, io.EOF) {
				c.logger.Info("kafka reader closed, stopping", zap.String("topic", c.reader.Config().Topic))
				return nil
			}
			c.logger.Error("failed to fetch message from kafka",
				zap.Error(err),
				zap.String("topic", c.reader.Config().Topic),
			)
			continue
		}

		c.processMessage(ctx, m)
	}
}

// processMessage вызывает handler для одного сообщения.
// Ошибка handler'а только логируется: offset не коммитится, сообщение не помечается обработанным.
func (c *Consumer) processMessage(ctx context.Context, m kafka.Message) {
	ctx, span := observability.StartConsumerSpan(ctx, c.serviceName, m)
	defer span.End()

	logger := observability.L(ctx, c.logger)

	ack := service.OnceAck(func() {
		if err := c.reader.CommitMessages(ctx, m); err != nil {
			logger.Error("failed to commit message offset",
				append(observability.MessageFields(m), zap.Error(err))...,
			)
			return
		}
		logger.Debug("message offset committed", observability.MessageFields(m)...)
	})

	if err := c.handler(ctx, m.Value, ack); err != nil {
		span.RecordError(err)

		var desErr *service.DeserializationError
		if errors.As(err, &desErr) {
			logger.Error("failed to deserialize kafka message",
				append(observability.MessageFields(m), zap.Error(err))...,
			)
			return
		}
		logger.Error("failed to handle kafka message",
			append(observability.MessageFields(m), zap.Error(err))...,
		)
	}
}

// Running сообщает, запущен ли цикл чтения (для health check)
func (c *Consumer) Running() bool {
	return c.running.Load()
}

// Close закрывает Kafka reader
func (c *Consumer) Close() error {
	c.logger.Info("closing kafka consumer", zap.String("topic", c.reader.Config().Topic))
	return c.reader.Close()
}
