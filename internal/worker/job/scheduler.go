package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// JobFunc 作业执行函数
type JobFunc func(ctx context.Context) error

// Scheduler 作业调度器，周期作业启动后立即执行一次
type Scheduler struct {
	jobs    map[string]*scheduledJob
	running bool
	mu      sync.Mutex
	logger  *zap.Logger
}

type scheduledJob struct {
	name     string
	interval time.Duration
	fn       JobFunc
	once     bool
	stopCh   chan struct{}
	done     sync.WaitGroup
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		jobs:   make(map[string]*scheduledJob),
		logger: logger,
	}
}

// RegisterJob 注册周期作业
func (s *Scheduler) RegisterJob(name string, interval time.Duration, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[name] = &scheduledJob{
		name:     name,
		interval: interval,
		fn:       fn,
		stopCh:   make(chan struct{}),
	}
	s.logger.Info("Registered job", zap.String("job", name), zap.Duration("interval", interval))
}

// RegisterOnceJob 注册单次作业
func (s *Scheduler) RegisterOnceJob(name string, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[name] = &scheduledJob{
		name:   name,
		fn:     fn,
		once:   true,
		stopCh: make(chan struct{}),
	}
	s.logger.Info("Registered once job", zap.String("job", name))
}

// Start 启动全部已注册作业
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true

	for _, job := range s.jobs {
		j := job
		j.done.Add(1)
		go func() {
			defer j.done.Done()
			s.run(ctx, j)
		}()
	}
}

// Stop 停止调度器并等待在跑的作业结束，ctx超时则放弃等待
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	for _, job := range s.jobs {
		close(job.stopCh)
	}
	s.mu.Unlock()

	s.logger.Warn("Stopping scheduler...")

	waitCh := make(chan struct{})
	go func() {
		for _, job := range s.jobs {
			job.done.Wait()
		}
		close(waitCh)
	}()

	select {
	case <-waitCh:
		s.logger.Info("All jobs stopped")
	case <-ctx.Done():
		s.logger.Warn("Timed out waiting for jobs to stop")
	}
}

func (s *Scheduler) run(ctx context.Context, job *scheduledJob) {
	s.execute(ctx, job)
	if job.once {
		return
	}

	ticker := time.NewTicker(job.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.execute(ctx, job)
		case <-job.stopCh:
			s.logger.Info("Stopping job", zap.String("job", job.name))
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, job *scheduledJob) {
	jobCtx := ctx
	cancel := context.CancelFunc(func() {})
	if !job.once {
		// 周期作业不允许跨过下一个周期
		jobCtx, cancel = context.WithTimeout(ctx, job.interval)
	}
	defer cancel()

	start := time.Now()
	if err := job.fn(jobCtx); err != nil {
		s.logger.Error("Job execution failed",
			zap.String("job", job.name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return
	}
	s.logger.Debug("Job execution completed",
		zap.String("job", job.name),
		zap.Duration("duration", time.Since(start)))
}
