package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/greenstone-io/bucket-backup/internal/handler"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	h, err := handler.NewFromEnv(context.Background(), logger)
	if err != nil {
		logger.Error("Failed to initialize backup handler", "error", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
