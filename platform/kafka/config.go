package kafka

// Config содержит конфигурацию для подключения к Kafka
type Config struct {
	// Brokers — список брокеров Kafka.
	//   - локальная разработка (go run): localhost:19092
	//   - запуск в Docker: kafka:9092
	// Можно указать несколько брокеров через запятую: "broker1:9092,broker2:9092"
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
}

// DefaultConfig возвращает конфигурацию с дефолтными брокерами для окружения (local/docker).
// Актуальные значения сервисы получают через LoadEnv.
func DefaultConfig(appEnv string) Config {
	if appEnv == "docker" {
		return Config{Brokers: []string{"kafka:9092"}}
	}
	return Config{Brokers: []string{"localhost:19092"}}
}
