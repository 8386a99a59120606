package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_LocalDefaults(t *testing.T) {
	// Очищаем env
	os.Clearenv()
	os.Setenv("APP_ENV", "local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.AppEnv)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"localhost:19092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "notification-service", cfg.ConsumerGroupID)
	assert.Equal(t, "PAYMENT_COMPLETED", cfg.PaymentCompletedTopic)
	assert.Equal(t, "ORDER_READY_FOR_DELIVER", cfg.OrderReadyForDeliverTopic)
	assert.Equal(t, "ORDER_DELIVERED", cfg.OrderDeliveredTopic)
	assert.Equal(t, "", cfg.HealthHTTPAddr)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, "127.0.0.1:4317", cfg.OTelEndpoint)
}

func TestLoad_DockerDefaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "docker")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDocker, cfg.AppEnv)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "otel-collector:4317", cfg.OTelEndpoint)
}

func TestLoad_Overrides(t *testing.T) {
	os.Clearenv()
	os.Setenv("KAFKA_BROKERS", "b1:9092,b2:9092")
	os.Setenv("KAFKA_CONSUMER_GROUP_ID", "notification-test")
	os.Setenv("KAFKA_ORDER_DELIVERED_TOPIC", "order.delivered")
	os.Setenv("SHUTDOWN_TIMEOUT", "3s")
	os.Setenv("HEALTH_HTTP_ADDR", ":8085")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "notification-test", cfg.ConsumerGroupID)
	assert.Equal(t, "order.delivered", cfg.OrderDeliveredTopic)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ":8085", cfg.HealthHTTPAddr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad app env", map[string]string{"APP_ENV": "prod"}},
		{"bad shutdown timeout", map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
		{"negative shutdown timeout", map[string]string{"SHUTDOWN_TIMEOUT": "-1s"}},
		{"duplicate topics", map[string]string{"KAFKA_ORDER_DELIVERED_TOPIC": "PAYMENT_COMPLETED"}},
		{"sampling ratio out of range", map[string]string{"OTEL_SAMPLING_RATIO": "1.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
