package main

import (
	"log"

	"github.com/shestoi/food-notification/internal/app"
	"github.com/shestoi/food-notification/internal/config"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.Log()

	application, err := app.Build(cfg)
	if err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	// Блокируется до SIGINT/SIGTERM
	if err := application.Run(); err != nil {
		log.Fatalf("Service error: %v", err)
	}
}
