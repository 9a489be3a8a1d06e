package dao

import (
	"context"

	"sui-smart/internal/worker/model"
)

// RecordDAO 记录表查询接口，写入走writer包的批量通道
type RecordDAO interface {
	// RecentTrades 最近lookback个区块内以token为买入或卖出方的成交，按区块倒序取limit条
	RecentTrades(ctx context.Context, token string, maxBlock, lookback int64, limit int) ([]model.Trade, error)

	// TradesSince 指定时间之后的全部成交，价格聚合任务用
	TradesSince(ctx context.Context, sinceMs int64) ([]model.Trade, error)

	// LiquidityByOwner 某钱包在某协议下的流动性变更，按时间升序
	LiquidityByOwner(ctx context.Context, owner, protocol string) ([]model.LiquidityChange, error)

	// LendingByOwner 某钱包在某协议下的借贷动作，按时间升序
	LendingByOwner(ctx context.Context, owner, protocol string) ([]model.LendingAction, error)

	// StakeByOwner 某钱包在某协议下的质押动作，按时间升序
	StakeByOwner(ctx context.Context, owner, protocol string) ([]model.StakeAction, error)
}
