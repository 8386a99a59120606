package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/shestoi/food-notification/internal/templates"
	"github.com/shestoi/food-notification/platform/observability"
)

// Handler обрабатывает тело одного сообщения топика.
// ack подтверждает именно это сообщение; при ошибке handler его не вызывает.
type Handler func(ctx context.Context, body []byte, ack Acknowledgment) error

// NotificationRenderer рендерит текст уведомлений
type NotificationRenderer interface {
	RenderPaymentCompleted(data interface{}) (string, error)
	RenderOrderReadyForDelivery(data interface{}) (string, error)
	RenderOrderDelivered(data interface{}) (string, error)
}

// Listener превращает события из Kafka в уведомления (пока только в лог).
// Состояния между сообщениями не хранит, безопасен для конкурентного вызова.
type Listener struct {
	logger   *zap.Logger
	renderer NotificationRenderer
	topics   Topics
}

// NewListener создаёт новый Listener
func NewListener(logger *zap.Logger, renderer NotificationRenderer, topics Topics) *Listener {
	return &Listener{
		logger:   logger,
		renderer: renderer,
		topics:   topics,
	}
}

// Routes возвращает таблицу топик -> handler, по ней поднимаются consumers
func (l *Listener) Routes() map[string]Handler {
	return map[string]Handler{
		l.topics.PaymentCompleted:      l.HandlePaymentCompleted,
		l.topics.OrderReadyForDelivery: l.HandleOrderReadyForDelivery,
		l.topics.OrderDelivered:        l.HandleOrderDelivered,
	}
}

// HandlePaymentCompleted обрабатывает PAYMENT_COMPLETED: разбирает PaymentEvent,
// подтверждает сообщение и пишет уведомление об оплате
func (l *Listener) HandlePaymentCompleted(ctx context.Context, body []byte, ack Acknowledgment) error {
	var event PaymentEvent
	if err := decodeEvent(body, &event); err != nil {
		return &DeserializationError{Topic: l.topics.PaymentCompleted, Event: "PaymentEvent", Err: err}
	}

	ack.Acknowledge()

	text, err := l.renderer.RenderPaymentCompleted(event)
	if err != nil {
		return fmt.Errorf("render payment completed notification: %w", err)
	}

	observability.L(ctx, l.logger).Info(text,
		zap.String("topic", l.topics.PaymentCompleted),
		zap.String("user_id", event.UserID),
		zap.String("order_id", event.OrderID),
		zap.String("amount", templates.FormatMoney(event.Amount)),
	)
	return nil
}

// HandleOrderReadyForDelivery обрабатывает ORDER_READY_FOR_DELIVER
func (l *Listener) HandleOrderReadyForDelivery(ctx context.Context, body []byte, ack Acknowledgment) error {
	var event OrderReadyForDeliveryEvent
	if err := decodeEvent(body, &event); err != nil {
		return &DeserializationError{Topic: l.topics.OrderReadyForDelivery, Event: "OrderReadyForDeliveryEvent", Err: err}
	}

	ack.Acknowledge()

	text, err := l.renderer.RenderOrderReadyForDelivery(event)
	if err != nil {
		return fmt.Errorf("render order ready for delivery notification: %w", err)
	}

	l.logDelivery(ctx, text, l.topics.OrderReadyForDelivery, event)
	return nil
}

// HandleOrderDelivered обрабатывает ORDER_DELIVERED
func (l *Listener) HandleOrderDelivered(ctx context.Context, body []byte, ack Acknowledgment) error {
	var event OrderDeliveredEvent
	if err := decodeEvent(body, &event); err != nil {
		return &DeserializationError{Topic: l.topics.OrderDelivered, Event: "OrderDeliveredEvent", Err: err}
	}

	ack.Acknowledge()

	text, err := l.renderer.RenderOrderDelivered(event)
	if err != nil {
		return fmt.Errorf("render order delivered notification: %w", err)
	}

	l.logDelivery(ctx, text, l.topics.OrderDelivered, OrderReadyForDeliveryEvent(event))
	return nil
}

func (l *Listener) logDelivery(ctx context.Context, text, topic string, event OrderReadyForDeliveryEvent) {
	observability.L(ctx, l.logger).Info(text,
		zap.String("topic", topic),
		zap.String("order_id", event.OrderID),
		zap.String("user_id", event.UserID),
		zap.String("address", event.Address),
		zap.String("item", event.Item),
		zap.String("message", event.Message),
	)
}

// decodeEvent разбирает ровно один JSON объект; неизвестные поля игнорируются,
// отсутствующие остаются нулевыми
func decodeEvent(body []byte, v interface{}) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotObject
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after JSON object")
	}
	return nil
}
