package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"NewsClassifier/internal/app"
	"NewsClassifier/pkg/logger"
)

func main() {
	boot := logger.New("newsclassifier")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		stop()
		boot.Fatalf("run failed: %v", err)
	}
}
