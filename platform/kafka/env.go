package kafka

import (
	"strings"

	"github.com/caarlos0/env/v10"
)

// LoadEnv загружает конфигурацию из переменных окружения поверх уже заданных значений.
// Пустые элементы списка брокеров (например, "a:9092,,b:9092") отбрасываются
func LoadEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return err
	}

	brokers := make([]string, 0, len(cfg.Brokers))
	for _, b := range cfg.Brokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	cfg.Brokers = brokers
	return nil
}
