package writer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"sui-smart/internal/worker/monitor"
)

// AsyncBatchWriter 异步批量写入：channel缓冲，批量阈值或定时器触发落库
type AsyncBatchWriter[T any] struct {
	id            string
	workers       int
	tl            *zap.Logger
	writer        BatchWriter[T]
	inputChan     chan T
	wg            sync.WaitGroup
	batchSize     int
	flushInterval time.Duration
}

func NewAsyncBatchWriter[T any](tl *zap.Logger, writer BatchWriter[T], batchSize int, flushInterval time.Duration, id string, workers int) *AsyncBatchWriter[T] {
	return &AsyncBatchWriter[T]{
		id:            id,
		workers:       workers,
		tl:            tl,
		writer:        writer,
		inputChan:     make(chan T, 10000),
		batchSize:     batchSize,
		flushInterval: flushInterval,
	}
}

func (b *AsyncBatchWriter[T]) Start(ctx context.Context) {
	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go b.processItems(ctx)
	}
}

func (b *AsyncBatchWriter[T]) processItems(ctx context.Context) {
	defer b.wg.Done()
	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	batch := make([]T, 0, b.batchSize)
	for {
		select {
		case <-ctx.Done():
			b.flush(batch)
			return
		case item, ok := <-b.inputChan:
			if !ok {
				// 关闭时把批内残留写完
				b.flush(batch)
				return
			}
			batch = append(batch, item)
			if len(batch) >= b.batchSize {
				b.flush(batch)
				batch = make([]T, 0, b.batchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				b.flush(batch)
				batch = make([]T, 0, b.batchSize)
			}
		}
	}
}

// flush 执行写入并记录指标，外层ctx可能已取消，落库用独立ctx
func (b *AsyncBatchWriter[T]) flush(batch []T) {
	if len(batch) == 0 {
		return
	}
	start := time.Now()
	size := len(batch)

	monitor.AsyncWriterBatchSize.WithLabelValues(b.id).Observe(float64(size))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := b.writer.BWrite(ctx, batch); err != nil {
		b.tl.Error("❌ batch write failed", zap.String("id", b.id), zap.Int("size", size), zap.Error(err))
	} else {
		monitor.AsyncWriterItemsWritten.WithLabelValues(b.id).Add(float64(size))
	}

	monitor.AsyncWriterFlushDuration.WithLabelValues(b.id).Observe(time.Since(start).Seconds())
	monitor.AsyncWriterFlushCount.WithLabelValues(b.id).Inc()
}

// Submit 非阻塞提交，缓冲满时丢弃并计数
func (b *AsyncBatchWriter[T]) Submit(item T) {
	select {
	case b.inputChan <- item:
		monitor.AsyncWriterMessagesQueued.WithLabelValues(b.id).Inc()
	default:
		monitor.AsyncWriterMessagesDropped.WithLabelValues(b.id).Inc()
		b.tl.Warn("Batch input channel full, dropping item", zap.String("id", b.id))
	}
}

func (b *AsyncBatchWriter[T]) Close() {
	close(b.inputChan)
	b.wg.Wait()
	_ = b.writer.Close()
}
