package observability

import (
	"context"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// headerCarrier адаптирует заголовки kafka.Message к propagation.TextMapCarrier
type headerCarrier struct {
	msg *kafka.Message
}

// NewHeaderCarrier создаёт carrier поверх заголовков сообщения (для Extract и Inject)
func NewHeaderCarrier(msg *kafka.Message) *headerCarrier {
	return &headerCarrier{msg: msg}
}

// Get возвращает значение первого заголовка с ключом key
func (c *headerCarrier) Get(key string) string {
	for _, h := range c.msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// Set заменяет заголовок key или добавляет новый
func (c *headerCarrier) Set(key, value string) {
	for i, h := range c.msg.Headers {
		if h.Key == key {
			c.msg.Headers[i].Value = []byte(value)
			return
		}
	}
	c.msg.Headers = append(c.msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

// Keys возвращает ключи всех заголовков
func (c *headerCarrier) Keys() []string {
	out := make([]string, 0, len(c.msg.Headers))
	for _, h := range c.msg.Headers {
		out = append(out, h.Key)
	}
	return out
}

// StartConsumerSpan извлекает trace context из заголовков сообщения и открывает consumer span.
// Span нужно закрыть вызывающему (span.End()).
func StartConsumerSpan(ctx context.Context, serviceName string, msg kafka.Message) (context.Context, trace.Span) {
	ctx = otel.GetTextMapPropagator().Extract(ctx, NewHeaderCarrier(&msg))
	return otel.Tracer(serviceName).Start(ctx, "kafka.consume "+msg.Topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", msg.Topic),
			attribute.String("messaging.kafka.partition", strconv.Itoa(msg.Partition)),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
}

// StartProducerSpan открывает producer span и записывает его trace context в заголовки msg.
// Span нужно закрыть вызывающему (span.End()).
func StartProducerSpan(ctx context.Context, serviceName string, msg *kafka.Message) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(serviceName).Start(ctx, "kafka.produce "+msg.Topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", msg.Topic),
		),
	)
	InjectHeaders(ctx, msg)
	return ctx, span
}

// InjectHeaders записывает trace context из ctx в заголовки сообщения (для producer)
func InjectHeaders(ctx context.Context, msg *kafka.Message) {
	otel.GetTextMapPropagator().Inject(ctx, NewHeaderCarrier(msg))
}
