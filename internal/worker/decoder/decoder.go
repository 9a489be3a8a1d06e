package decoder

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"sui-smart/internal/worker/model"
	"sui-smart/internal/worker/monitor"
)

// Result 一次解码产出，至多一个字段非nil；全nil表示跳过
type Result struct {
	Trade     *model.Trade
	Liquidity *model.LiquidityChange
	Lending   *model.LendingAction
	Stake     *model.StakeAction
}

// Empty 是否没有产出任何记录
func (r *Result) Empty() bool {
	return r == nil || (r.Trade == nil && r.Liquidity == nil && r.Lending == nil && r.Stake == nil)
}

// DecodeFunc 将链上事件解码为规范记录，解不出返回nil
type DecodeFunc func(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error)

// Entry 协议注册的一组topic及其解码函数
// topic匹配为前缀比较，链上泛型类型会在topic后追加类型参数
type Entry struct {
	Protocol string
	Topics   []string
	Decode   DecodeFunc
}

// Registry 协议解码器注册表
type Registry struct {
	tl      *zap.Logger
	entries []Entry
}

// NewRegistry 创建注册表
func NewRegistry(tl *zap.Logger, entries []Entry) *Registry {
	return &Registry{tl: tl, entries: entries}
}

// Entries 全部注册项
func (r *Registry) Entries() []Entry {
	return r.entries
}

// Match 按前缀匹配事件类型，返回所有命中的注册项
func (r *Registry) Match(eventType string) []Entry {
	var matched []Entry
	for _, entry := range r.entries {
		for _, topic := range entry.Topics {
			if strings.HasPrefix(eventType, topic) {
				matched = append(matched, entry)
				break
			}
		}
	}
	return matched
}

// SafeDecode 隔离执行解码，任何错误或panic都只丢弃该事件不影响整批
func (r *Registry) SafeDecode(ctx context.Context, entry Entry, event *model.SuiEvent, gas model.GasContext) (result *Result) {
	defer func() {
		if rec := recover(); rec != nil {
			monitor.DecodeFailures.WithLabelValues(entry.Protocol).Inc()
			r.tl.Warn("❌ decoder panic",
				zap.String("protocol", entry.Protocol),
				zap.String("event_type", event.Type),
				zap.String("tx", event.ID.TxDigest),
				zap.Any("panic", rec))
			result = nil
		}
	}()

	result, err := entry.Decode(ctx, event, gas)
	if err != nil {
		monitor.DecodeFailures.WithLabelValues(entry.Protocol).Inc()
		r.tl.Warn("❌ decode failed",
			zap.String("protocol", entry.Protocol),
			zap.String("event_type", event.Type),
			zap.String("tx", event.ID.TxDigest),
			zap.Error(err))
		return nil
	}
	if !result.Empty() {
		monitor.EventsDecoded.WithLabelValues(entry.Protocol).Inc()
	}
	return result
}
