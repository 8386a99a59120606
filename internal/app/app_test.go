package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	eventkafka "github.com/shestoi/food-notification/internal/event/kafka"
	"github.com/shestoi/food-notification/internal/service"
	"github.com/shestoi/food-notification/internal/templates"
	platformshutdown "github.com/shestoi/food-notification/platform/shutdown"
)

// topicReader отдаёт одно сообщение, затем блокируется до отмены ctx
type topicReader struct {
	mu        sync.Mutex
	topic     string
	pending   []kafka.Message
	committed []kafka.Message
}

func (r *topicReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.pending) > 0 {
		m := r.pending[0]
		r.pending = r.pending[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *topicReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *topicReader) Config() kafka.ReaderConfig {
	return kafka.ReaderConfig{Topic: r.topic, GroupID: "notification-test"}
}

func (r *topicReader) Close() error { return nil }

func (r *topicReader) committedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

func TestApp_RoutesEveryTopicToItsHandler(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	renderer, err := templates.NewRenderer(logger)
	require.NoError(t, err)
	listener := service.NewListener(logger, renderer, service.DefaultTopics())

	payloads := map[string]string{
		"PAYMENT_COMPLETED":       `{"orderId":"o1","userId":"u1","amount":42.50}`,
		"ORDER_READY_FOR_DELIVER": `{"orderId":"o2","userId":"u2","address":"12 Elm St","item":"Pizza","message":"Soon"}`,
		"ORDER_DELIVERED":         `{"orderId":"o2","userId":"u2","address":"12 Elm St","item":"Pizza","message":"Enjoy!"}`,
	}
	readers := map[string]*topicReader{}

	consumers := buildConsumers(logger, listener.Routes(), func(topic string) eventkafka.MessageReader {
		r := &topicReader{topic: topic, pending: []kafka.Message{{Topic: topic, Value: []byte(payloads[topic])}}}
		readers[topic] = r
		return r
	})
	require.Len(t, consumers, 3)

	a := &App{
		logger:      logger,
		consumers:   consumers,
		shutdownMgr: platformshutdown.New(time.Second, logger),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.RunContext(ctx) }()

	require.Eventually(t, func() bool {
		for _, r := range readers {
			if r.committedCount() != 1 {
				return false
			}
		}
		return true
	}, 2*time.Second, 10*time.Millisecond)
	assert.True(t, readiness(consumers)())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.False(t, readiness(consumers)())

	assert.Equal(t, 1, logs.FilterMessage("Notification: Payment COMPLETED for user u1 on order o1. Amount: 42.50").Len())
	assert.Equal(t, 1, logs.FilterMessage("Notification: Order o2 is READY FOR DELIVERY for user u2. Address: 12 Elm St. Item: Pizza. Message: Soon").Len())
	assert.Equal(t, 1, logs.FilterMessage("Notification: Order o2 is DELIVERED for user u2. Address: 12 Elm St. Item: Pizza. Message: Enjoy!").Len())
}
