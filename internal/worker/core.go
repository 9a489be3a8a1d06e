package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"sui-smart/internal/worker/config"
	"sui-smart/internal/worker/consumer"
	"sui-smart/internal/worker/job"
	"sui-smart/internal/worker/monitor"
	"sui-smart/internal/worker/repository"
)

type Core struct {
	cfg       config.Config
	tl        *zap.Logger
	repo      repository.Repository
	scheduler *job.Scheduler
	consumers []consumer.KafkaConsumer
	metrics   *monitor.MetricsServer
}

func New(cfg config.Config, logger *zap.Logger) *Core {
	// 初始化作业调度器
	scheduler := job.NewScheduler(logger)

	// 初始化repo
	repo := repository.New(cfg, logger)

	// 定时：成交聚合价格点
	interval := cfg.Jobs.PriceFeedInterval
	if interval <= 0 {
		interval = 5
	}
	priceFeed := job.NewPriceFeedJob(cfg, logger, repo)
	scheduler.RegisterJob("price_feed", time.Duration(interval)*time.Minute, priceFeed.Run)

	// 初始化消费者
	consumers := []consumer.KafkaConsumer{
		consumer.NewEventConsumer(cfg, logger, repo),
	}

	core := &Core{
		cfg:       cfg,
		repo:      repo,
		tl:        logger,
		scheduler: scheduler,
		consumers: consumers,
		metrics:   monitor.NewMetricsServer(cfg.Monitor),
	}
	return core
}

func (c *Core) Start(ctx context.Context) {
	c.tl.Info("Starting worker core...")
	// 启动监控服务
	if c.metrics != nil {
		c.metrics.Run()
	}

	// 启动消费者
	for _, cons := range c.consumers {
		go cons.Run(ctx)
	}

	// 启动调度器
	c.scheduler.Start(ctx)
	c.tl.Info("Worker started successfully")

	// 等待外部关闭信号
	<-ctx.Done()
	c.tl.Info("Shutting down worker due to context cancellation...")
}

// Stop 优雅关闭 Core 的所有资源
func (c *Core) Stop(ctx context.Context) {
	c.tl.Info("Stopping worker core...")

	// 停止消费者
	for _, cons := range c.consumers {
		cons.Stop()
	}

	// 停止调度器
	if c.scheduler != nil {
		c.scheduler.Stop(ctx)
	}

	// 停止 Prometheus 监控服务
	if c.metrics != nil {
		_ = c.metrics.Stop(ctx)
	}

	c.repo.Close()

	c.tl.Info("Worker core stopped.")
}
