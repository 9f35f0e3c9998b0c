package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"turfbook/config"
	"turfbook/di"
	"turfbook/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()
	worker.Run(ctx)
}
