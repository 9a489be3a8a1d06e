package job

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSchedulerOnceJobRuns(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	var runs atomic.Int32
	s.RegisterOnceJob("once", func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 10*time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	s.Stop(stopCtx)
	assert.Equal(t, int32(1), runs.Load())
}

func TestSchedulerPeriodicJobTicks(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	var runs atomic.Int32
	s.RegisterJob("tick", 20*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	// 启动立即跑一次，之后按周期触发
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 10*time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	s.Stop(stopCtx)
}

func TestSchedulerJobErrorDoesNotStopTicks(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	var runs atomic.Int32
	s.RegisterJob("failing", 20*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return assert.AnError
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 10*time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	s.Stop(stopCtx)
}
