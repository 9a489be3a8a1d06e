package consumer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"sui-smart/internal/worker/config"
	"sui-smart/internal/worker/handler"
	"sui-smart/internal/worker/model"
	"sui-smart/internal/worker/monitor"
	"sui-smart/internal/worker/repository"
)

// EventConsumer 消费链上事件流，攒批后交给handler
type EventConsumer struct {
	*Consumer
	id           string
	batchSize    int
	flush        time.Duration
	buffer       chan *model.SuiEvent
	eventHandler *handler.EventHandler
	resumePoint  atomic.Int64
	repo         repository.Repository
}

// NewEventConsumer 创建事件消费者
func NewEventConsumer(conf config.Config, logger *zap.Logger, repo repository.Repository) *EventConsumer {
	newConsumer := NewConsumer(conf.Kafka, logger, conf.Kafka.TopicEvents)

	return &EventConsumer{
		id:           "event_consumer",
		batchSize:    conf.Worker.BatchSize,
		flush:        time.Duration(conf.Worker.FlushInterval) * time.Millisecond,
		Consumer:     newConsumer,
		buffer:       make(chan *model.SuiEvent, 10000),
		eventHandler: handler.NewEventHandler(conf, logger, repo),
		repo:         repo,
	}
}

// Run 启动事件消费者
func (ec *EventConsumer) Run(ctx context.Context) {
	// 重启续传：早于该检查点的事件直接丢弃
	resume := ec.eventHandler.ResumePoint(ctx)
	ec.resumePoint.Store(resume)
	ec.logger.Info("✅ resume point loaded", zap.String("consumerID", ec.id), zap.Int64("checkpoint", resume))

	if tip, err := ec.repo.GetSuiClient().GetLatestCheckpoint(ctx); err == nil && resume >= 0 {
		ec.logger.Info("⌛ checkpoint lag at startup",
			zap.Int64("tip", tip),
			zap.Int64("behind", tip-resume))
	}

	go ec.batchLoop(ctx)

	// 等待前面的组件准备完成
	time.Sleep(time.Second * 5)
	ec.Consumer.Start(ctx, ec)
}

// batchLoop 攒满一批或到时间就处理
func (ec *EventConsumer) batchLoop(ctx context.Context) {
	batch := make([]*model.SuiEvent, 0, ec.batchSize)
	ticker := time.NewTicker(ec.flush)
	defer ticker.Stop()

	process := func() {
		if len(batch) == 0 {
			return
		}
		ec.eventHandler.HandleBatch(ctx, batch)
		if last := batch[len(batch)-1].Checkpoint; last > ec.resumePoint.Load() {
			ec.resumePoint.Store(last)
		}
		batch = make([]*model.SuiEvent, 0, ec.batchSize)
	}

	for {
		select {
		case event, ok := <-ec.buffer:
			if !ok {
				process()
				return
			}
			batch = append(batch, event)
			if len(batch) >= ec.batchSize {
				process()
			}
		case <-ticker.C:
			process()
		case <-ctx.Done():
			process()
			return
		}
	}
}

// HandleMessage 实现 MessageHandler 接口
func (ec *EventConsumer) HandleMessage(msg kafka.Message) {
	monitor.KafkaMessagesReceived.WithLabelValues("event").Inc()

	var event model.SuiEvent
	if err := sonic.Unmarshal(msg.Value, &event); err != nil {
		ec.logger.Warn("❌ JSON Parse Error", zap.String("consumerID", ec.id), zap.Error(err), zap.String("raw", string(msg.Value)))
		return
	}

	// 已处理过的检查点不再消费
	if event.Checkpoint <= ec.resumePoint.Load() {
		monitor.EventsFiltered.WithLabelValues("stale_checkpoint").Inc()
		return
	}

	// 缺关键字段的脏数据
	if event.ID.TxDigest == "" || event.Type == "" {
		monitor.EventsFiltered.WithLabelValues("malformed").Inc()
		return
	}

	select {
	case ec.buffer <- &event:
	default:
		ec.logger.Warn("❌ buffer is full", zap.String("consumerID", ec.id), zap.Int64("checkpoint", event.Checkpoint))
	}
}

func (ec *EventConsumer) ID() string {
	return ec.id
}

// Stop 停止事件消费者
func (ec *EventConsumer) Stop() error {
	if err := ec.Consumer.Stop(); err != nil {
		return err
	}

	close(ec.buffer)
	ec.eventHandler.Stop()

	return nil
}
