// Package main публикует тестовое событие в один из топиков Notification Service.
//
// Используется для ручной проверки сервиса локально:
//
//	go run ./cmd/event-playground -topic PAYMENT_COMPLETED -amount 42.50
//	go run ./cmd/event-playground -topic ORDER_DELIVERED -address "12 Elm St" -item Pizza -message Enjoy!
//
// Брокеры берутся из KAFKA_BROKERS (по умолчанию localhost:19092).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shestoi/food-notification/internal/service"
	platformkafka "github.com/shestoi/food-notification/platform/kafka"
	platformlogging "github.com/shestoi/food-notification/platform/logging"
	platformobservability "github.com/shestoi/food-notification/platform/observability"
)

// otelEnv трассировка playground'а, те же переменные, что у сервиса
type otelEnv struct {
	Enabled  bool   `env:"OTEL_ENABLED" envDefault:"false"`
	Endpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"127.0.0.1:4317"`
}

func main() {
	topics := service.DefaultTopics()

	topic := flag.String("topic", topics.PaymentCompleted, "topic to publish to")
	orderID := flag.String("order", "", "order id (random if empty)")
	userID := flag.String("user", "user-1", "user id")
	amount := flag.String("amount", "42.50", "payment amount")
	address := flag.String("address", "12 Elm St", "delivery address")
	item := flag.String("item", "Pizza", "ordered item")
	message := flag.String("message", "Enjoy!", "free text message")
	flag.Parse()

	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: "event-playground",
		Env:         "local",
		Level:       "info",
		Format:      "console",
	})
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer platformlogging.Sync(logger)

	if *orderID == "" {
		*orderID = uuid.New().String()
	}

	payload, err := buildPayload(topics, *topic, *orderID, *userID, *amount, *address, *item, *message)
	if err != nil {
		logger.Error("failed to build event", zap.Error(err), zap.String("topic", *topic))
		os.Exit(1)
	}

	cfg := platformkafka.DefaultConfig(os.Getenv("APP_ENV"))
	if err := platformkafka.LoadEnv(&cfg); err != nil {
		logger.Error("failed to load kafka config", zap.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var otelCfg otelEnv
	if err := env.Parse(&otelCfg); err != nil {
		logger.Error("failed to load otel config", zap.Error(err))
		os.Exit(1)
	}
	otelShutdown, err := platformobservability.Init(ctx, platformobservability.Config{
		Enabled:               otelCfg.Enabled,
		OTLPEndpoint:          otelCfg.Endpoint,
		SamplingRatio:         1,
		ServiceName:           "event-playground",
		DeploymentEnvironment: "local",
	})
	if err != nil {
		logger.Error("failed to init observability", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown observability", zap.Error(err))
		}
	}()

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{}, // один заказ — одна партиция
		AllowAutoTopicCreation: true,
	}
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Error("failed to close kafka writer", zap.Error(err))
		}
	}()

	msg := kafka.Message{
		Topic: *topic,
		Key:   []byte(*orderID),
		Value: payload,
	}
	// traceparent попадает в заголовки только при OTEL_ENABLED=true
	ctx, span := platformobservability.StartProducerSpan(ctx, "event-playground", &msg)
	defer span.End()

	if err := writer.WriteMessages(ctx, msg); err != nil {
		logger.Error("failed to send event",
			zap.Error(err),
			zap.Strings("brokers", cfg.Brokers),
			zap.String("topic", *topic),
		)
		os.Exit(1)
	}

	logger.Info("event sent",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", *topic),
		zap.String("key", string(msg.Key)),
		zap.ByteString("value", payload),
	)
}

// buildPayload собирает JSON события для топика
func buildPayload(topics service.Topics, topic, orderID, userID, amount, address, item, message string) ([]byte, error) {
	switch topic {
	case topics.PaymentCompleted:
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
		}
		return json.Marshal(service.PaymentEvent{OrderID: orderID, UserID: userID, Amount: value})
	case topics.OrderReadyForDelivery:
		return json.Marshal(service.OrderReadyForDeliveryEvent{OrderID: orderID, UserID: userID, Address: address, Item: item, Message: message})
	case topics.OrderDelivered:
		return json.Marshal(service.OrderDeliveredEvent{OrderID: orderID, UserID: userID, Address: address, Item: item, Message: message})
	default:
		return nil, fmt.Errorf("unknown topic %q", topic)
	}
}
