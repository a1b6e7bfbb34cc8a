package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"community-portal/cmd/server"
	"community-portal/internal/global/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.Init(ctx)
	if err := server.Run(ctx); err != nil {
		logger.Get().Error("服务异常退出", "error", err)
		os.Exit(1)
	}
}
