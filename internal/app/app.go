package app

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shestoi/food-notification/internal/config"
	eventkafka "github.com/shestoi/food-notification/internal/event/kafka"
	"github.com/shestoi/food-notification/internal/service"
	"github.com/shestoi/food-notification/internal/templates"
	platformhealth "github.com/shestoi/food-notification/platform/health/http"
	platformlogging "github.com/shestoi/food-notification/platform/logging"
	platformobservability "github.com/shestoi/food-notification/platform/observability"
	platformshutdown "github.com/shestoi/food-notification/platform/shutdown"
)

const serviceName = "notification"

// App содержит все зависимости для запуска и корректного shutdown Notification Service
type App struct {
	logger       *zap.Logger
	consumers    []*eventkafka.Consumer
	healthServer *http.Server
	shutdownMgr  *platformshutdown.Manager
	wg           sync.WaitGroup
}

// Build создаёт и настраивает все зависимости Notification Service
func Build(cfg config.Config) (*App, error) {
	const op = "app.Build"

	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: serviceName,
		Env:         string(cfg.AppEnv),
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		return nil, err
	}

	// OpenTelemetry: traces (noop если OTEL_ENABLED=false), propagator ставится всегда
	otelShutdown, err := platformobservability.Init(context.Background(), platformobservability.Config{
		Enabled:               cfg.OTelEnabled,
		OTLPEndpoint:          cfg.OTelEndpoint,
		SamplingRatio:         cfg.OTelSamplingRatio,
		ServiceName:           serviceName,
		DeploymentEnvironment: string(cfg.AppEnv),
	})
	if err != nil {
		return nil, err
	}

	logger.With(zap.String("op", op)).Info("Building Notification service",
		zap.Strings("kafka_brokers", cfg.Kafka.Brokers),
		zap.String("group_id", cfg.ConsumerGroupID),
		zap.String("payment_completed_topic", cfg.PaymentCompletedTopic),
		zap.String("order_ready_for_deliver_topic", cfg.OrderReadyForDeliverTopic),
		zap.String("order_delivered_topic", cfg.OrderDeliveredTopic),
	)

	renderer, err := templates.NewRenderer(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create template renderer: %w", err)
	}

	listener := service.NewListener(logger, renderer, service.Topics{
		PaymentCompleted:      cfg.PaymentCompletedTopic,
		OrderReadyForDelivery: cfg.OrderReadyForDeliverTopic,
		OrderDelivered:        cfg.OrderDeliveredTopic,
	})

	// Один consumer на топик, все в одной consumer group
	consumers := buildConsumers(logger, listener.Routes(), func(topic string) eventkafka.MessageReader {
		return eventkafka.NewReader(cfg.Kafka.Brokers, cfg.ConsumerGroupID, topic)
	})

	shutdownMgr := platformshutdown.New(cfg.ShutdownTimeout, logger)

	// Выполняются в обратном порядке: health, consumers, otel
	shutdownMgr.Add("otel", otelShutdown)
	for _, c := range consumers {
		shutdownMgr.Add("kafka_consumer", platformshutdown.Close(c))
	}

	var healthServer *http.Server
	if cfg.HealthHTTPAddr != "" {
		healthServer = &http.Server{
			Addr:         cfg.HealthHTTPAddr,
			Handler:      platformhealth.NewRouter(serviceName, readiness(consumers)),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		}
		shutdownMgr.Add("health_http_server", platformshutdown.ShutdownHTTPServer(healthServer))
	}

	return &App{
		logger:       logger,
		consumers:    consumers,
		healthServer: healthServer,
		shutdownMgr:  shutdownMgr,
	}, nil
}

// buildConsumers создаёт consumers по таблице топик -> handler в стабильном порядке
func buildConsumers(logger *zap.Logger, routes map[string]service.Handler, newReader func(topic string) eventkafka.MessageReader) []*eventkafka.Consumer {
	topics := make([]string, 0, len(routes))
	for topic := range routes {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	consumers := make([]*eventkafka.Consumer, 0, len(topics))
	for _, topic := range topics {
		consumers = append(consumers, eventkafka.NewConsumer(logger, serviceName, newReader(topic), routes[topic]))
	}
	return consumers
}

// readiness готов, когда все consumers читают свои топики
func readiness(consumers []*eventkafka.Consumer) func() bool {
	return func() bool {
		for _, c := range consumers {
			if !c.Running() {
				return false
			}
		}
		return true
	}
}

// Run запускает сервис и блокируется до получения сигнала shutdown
func (a *App) Run() error {
	return a.RunContext(context.Background())
}

// RunContext как Run, но дополнительно завершается при отмене parent
func (a *App) RunContext(parent context.Context) error {
	defer platformlogging.Sync(a.logger)

	a.logger.Info("Starting Notification service")

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	if a.healthServer != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			if err := a.healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				a.logger.Error("health HTTP server error", zap.Error(err))
			}
		}()
		a.logger.Info("Health server listening", zap.String("addr", a.healthServer.Addr))
	}

	// Каждый топик в своей горутине
	for _, c := range a.consumers {
		a.wg.Add(1)
		go func(c *eventkafka.Consumer) {
			defer a.wg.Done()
			if err := c.Start(ctx); err != nil {
				a.logger.Error("kafka consumer error", zap.Error(err))
			}
		}(c)
	}

	a.logger.Info("Kafka consumers started", zap.Int("consumers", len(a.consumers)))

	// Ожидаем сигнал (или отмену parent) и выполняем shutdown
	a.shutdownMgr.WaitContext(parent)

	cancel()
	a.wg.Wait()

	a.logger.Info("Notification service stopped")
	return nil
}
