// Command lambda serves the API behind API Gateway.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	_ "go.uber.org/automaxprocs"

	"github.com/namorima/notion-todo/internal/app"
	"github.com/namorima/notion-todo/internal/infrastructure/config"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	a, err := app.New(context.Background(), cfg, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize application", "error", err)
	}
	defer a.Close()

	srv, err := a.Server()
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	lambda.Start(srv.HandleAPIGatewayProxy)
}
