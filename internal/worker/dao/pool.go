package dao

import (
	"context"

	"sui-smart/internal/worker/model"
)

// PoolDAO 定义池子数据访问接口
type PoolDAO interface {
	// GetByAddress 通过地址获取池子信息，未收录返回nil
	GetByAddress(ctx context.Context, chain, address string) (*model.Pool, error)

	// Upsert 幂等写入，唯一键(chain, address)冲突时忽略
	Upsert(ctx context.Context, pool *model.Pool) error

	// Preload 预热指定链的全部池子到本地缓存
	Preload(ctx context.Context, chain string) (int, error)
}
