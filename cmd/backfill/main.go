package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"sui-smart/internal/worker/config"
	"sui-smart/internal/worker/handler"
	"sui-smart/internal/worker/job"
	"sui-smart/internal/worker/repository"
	"sui-smart/pkg/logger"
)

// 离线回填入口：读CSV事件导出文件，跑一遍在线链路后退出
func main() {
	cfg := config.InitConfig()

	logger.InitTrace("sui-smart", "backfill")
	ctx, span := logger.StartSpan(context.Background(), "main", "main")
	defer span.End()

	rootLogger := logger.NewLogger("backfill")
	logger.SetLogLevel(cfg.Log.Level)
	tl := logger.WithTrace(ctx, rootLogger)

	repo := repository.New(cfg, tl)
	defer repo.Close()

	h := handler.NewEventHandler(cfg, tl, repo)
	defer h.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Ctrl-C 中断时停在当前批次，续传点保证重跑不重复
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		tl.Warn("Received shutdown signal, aborting backfill...")
		cancel()
	}()

	if err := job.NewBackfillJob(cfg, tl, h).Run(ctx); err != nil {
		tl.Error("backfill failed", zap.Error(err))
		os.Exit(1)
	}
}
