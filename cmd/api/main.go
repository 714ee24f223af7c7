package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "pei_compras/docs"
	"pei_compras/internal/adapter/http/routes"
	"pei_compras/internal/bootstrap"
	"pei_compras/internal/infrastructure/config"
	"pei_compras/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           PEI Compras API
// @version         1.0
// @description     Purchase request pipeline: extraction, supplier discovery and RFQ dispatch.

// @contact.name   Compras PEI
// @contact.email  compras@pei.com

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg := config.Load()
	log := logger.Must(cfg.LogLevel, "pei-compras-api", cfg.AppVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to start the application", zap.Error(err))
	}
	defer container.Close()

	err = routes.Run(ctx, routes.Dependencies{
		Pipeline:   container.Pipeline,
		RFQ:        container.RFQ,
		Comparison: container.Comparison,
		Health:     container.Health,
		Logger:     log,
	}, cfg.Port)
	if err != nil {
		log.Error("http server stopped", zap.Error(err))
		container.Close()
		os.Exit(1)
	}
}
