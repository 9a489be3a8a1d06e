package dao

import (
	"context"

	"sui-smart/internal/worker/model"
)

// PriceFeedDAO 价格序列访问接口
type PriceFeedDAO interface {
	// LatestBefore 取beforeMs之前(含)最近一个价格点，beforeMs为0时取最新
	LatestBefore(ctx context.Context, token, chain string, beforeMs int64) (*model.PriceFeed, error)

	// BatchCreate 批量写入价格点
	BatchCreate(ctx context.Context, feeds []model.PriceFeed) error
}
