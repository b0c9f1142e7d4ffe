package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"siigosync/internal/app"
	"siigosync/internal/app/server"
	"siigosync/internal/config"
	"siigosync/internal/utils/logger"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(conf.Env, conf.Logger.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, conf, log)
	if err != nil {
		log.Error("failed to init app", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := server.Run(ctx, a, log); err != nil {
		log.Error("server stopped", "error", err)
		a.Close()
		os.Exit(1)
	}
}
