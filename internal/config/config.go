package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"

	platformkafka "github.com/shestoi/food-notification/platform/kafka"
)

// Env представляет окружение приложения
type Env string

const (
	// EnvLocal - локальное окружение (для разработки на хосте)
	EnvLocal Env = "local"
	// EnvDocker - Docker окружение (для запуска в контейнерах)
	EnvDocker Env = "docker"
)

// Config содержит конфигурацию Notification Service
type Config struct {
	AppEnv          Env           `env:"APP_ENV" envDefault:"local"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Kafka
	Kafka                     platformkafka.Config
	ConsumerGroupID           string `env:"KAFKA_CONSUMER_GROUP_ID" envDefault:"notification-service"`
	PaymentCompletedTopic     string `env:"KAFKA_PAYMENT_COMPLETED_TOPIC" envDefault:"PAYMENT_COMPLETED"`
	OrderReadyForDeliverTopic string `env:"KAFKA_ORDER_READY_FOR_DELIVER_TOPIC" envDefault:"ORDER_READY_FOR_DELIVER"`
	OrderDeliveredTopic       string `env:"KAFKA_ORDER_DELIVERED_TOPIC" envDefault:"ORDER_DELIVERED"`

	// HealthHTTPAddr адрес health endpoint, пусто — сервер не поднимается
	HealthHTTPAddr string `env:"HEALTH_HTTP_ADDR"`

	// OpenTelemetry
	OTelEnabled       bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint      string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelSamplingRatio float64 `env:"OTEL_SAMPLING_RATIO" envDefault:"1.0"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
}

// Load загружает конфигурацию из переменных окружения
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.AppEnv != EnvLocal && cfg.AppEnv != EnvDocker {
		return Config{}, fmt.Errorf("invalid APP_ENV: %s (must be 'local' or 'docker')", cfg.AppEnv)
	}

	// Брокеры: дефолт зависит от окружения, KAFKA_BROKERS перекрывает
	cfg.Kafka = platformkafka.DefaultConfig(string(cfg.AppEnv))
	if err := platformkafka.LoadEnv(&cfg.Kafka); err != nil {
		return Config{}, fmt.Errorf("invalid KAFKA_BROKERS: %w", err)
	}

	if cfg.OTelEndpoint == "" {
		if cfg.AppEnv == EnvLocal {
			cfg.OTelEndpoint = "127.0.0.1:4317"
		} else {
			cfg.OTelEndpoint = "otel-collector:4317"
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c Config) Validate() error {
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	if c.ConsumerGroupID == "" {
		return fmt.Errorf("KAFKA_CONSUMER_GROUP_ID is required")
	}
	if c.PaymentCompletedTopic == "" {
		return fmt.Errorf("KAFKA_PAYMENT_COMPLETED_TOPIC is required")
	}
	if c.OrderReadyForDeliverTopic == "" {
		return fmt.Errorf("KAFKA_ORDER_READY_FOR_DELIVER_TOPIC is required")
	}
	if c.OrderDeliveredTopic == "" {
		return fmt.Errorf("KAFKA_ORDER_DELIVERED_TOPIC is required")
	}
	// Один топик — один handler
	if c.PaymentCompletedTopic == c.OrderReadyForDeliverTopic ||
		c.PaymentCompletedTopic == c.OrderDeliveredTopic ||
		c.OrderReadyForDeliverTopic == c.OrderDeliveredTopic {
		return fmt.Errorf("kafka topics must be distinct")
	}
	if c.OTelSamplingRatio < 0 || c.OTelSamplingRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLING_RATIO must be in [0, 1]")
	}
	return nil
}

// Log выводит конфигурацию в лог
func (c Config) Log() {
	log.Printf("Config loaded:")
	log.Printf("  APP_ENV: %s", c.AppEnv)
	log.Printf("  SHUTDOWN_TIMEOUT: %s", c.ShutdownTimeout)
	log.Printf("  KAFKA_BROKERS: %v", c.Kafka.Brokers)
	log.Printf("  KAFKA_CONSUMER_GROUP_ID: %s", c.ConsumerGroupID)
	log.Printf("  KAFKA_PAYMENT_COMPLETED_TOPIC: %s", c.PaymentCompletedTopic)
	log.Printf("  KAFKA_ORDER_READY_FOR_DELIVER_TOPIC: %s", c.OrderReadyForDeliverTopic)
	log.Printf("  KAFKA_ORDER_DELIVERED_TOPIC: %s", c.OrderDeliveredTopic)
	log.Printf("  HEALTH_HTTP_ADDR: %s", c.HealthHTTPAddr)
	log.Printf("  OTEL_ENABLED: %v", c.OTelEnabled)
	if c.OTelEnabled {
		log.Printf("  OTEL_EXPORTER_OTLP_ENDPOINT: %s", c.OTelEndpoint)
		log.Printf("  OTEL_SAMPLING_RATIO: %v", c.OTelSamplingRatio)
	}
}
