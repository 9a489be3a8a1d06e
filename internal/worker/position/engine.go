package position

import (
	"context"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"sui-smart/internal/worker/model"
	"sui-smart/internal/worker/monitor"
)

// Calculator 单协议仓位计算
type Calculator interface {
	Protocol() string
	Positions(ctx context.Context, owner string, suiCtx *SuiContext) ([]model.Position, error)
}

// Engine 聚合各协议仓位，单协议失败不影响其他协议
type Engine struct {
	tl          *zap.Logger
	loader      *ContextLoader
	calculators []Calculator
}

func NewEngine(tl *zap.Logger, loader *ContextLoader, calculators []Calculator) *Engine {
	return &Engine{tl: tl, loader: loader, calculators: calculators}
}

// GetUserPositions 计算钱包在各协议下的仓位，protocols为空时跑全部协议
func (e *Engine) GetUserPositions(ctx context.Context, owner string, protocols ...string) ([]model.ProtocolPositions, error) {
	calculators := e.calculators
	if len(protocols) > 0 {
		calculators = make([]Calculator, 0, len(protocols))
		for _, c := range e.calculators {
			for _, p := range protocols {
				if strings.EqualFold(c.Protocol(), p) {
					calculators = append(calculators, c)
					break
				}
			}
		}
	}
	if len(calculators) == 0 {
		return nil, nil
	}

	suiCtx, err := e.loader.Load(ctx, owner)
	if err != nil {
		return nil, err
	}

	results := make([]model.ProtocolPositions, len(calculators))
	p := pool.New().WithMaxGoroutines(len(calculators))
	for i, calc := range calculators {
		idx, c := i, calc
		p.Go(func() {
			start := time.Now()
			positions, err := c.Positions(ctx, owner, suiCtx)
			monitor.PositionDuration.WithLabelValues(c.Protocol()).Observe(time.Since(start).Seconds())

			if err != nil {
				monitor.PositionRequests.WithLabelValues(c.Protocol(), "error").Inc()
				e.tl.Warn("❌ position calc failed",
					zap.String("protocol", c.Protocol()),
					zap.String("owner", owner),
					zap.Error(err))
				results[idx] = model.ProtocolPositions{Protocol: c.Protocol(), Error: err.Error()}
				return
			}

			monitor.PositionRequests.WithLabelValues(c.Protocol(), "ok").Inc()
			results[idx] = model.ProtocolPositions{Protocol: c.Protocol(), Positions: positions}
		})
	}
	p.Wait()

	return results, nil
}
