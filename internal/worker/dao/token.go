package dao

import (
	"context"

	"sui-smart/internal/worker/model"
)

// TokenDAO 定义token数据访问接口
type TokenDAO interface {
	// GetByAddress 通过地址获取token信息，未收录返回nil
	GetByAddress(ctx context.Context, chain, address string) (*model.Token, error)

	// Upsert 幂等写入，唯一键(chain, address)冲突时忽略
	Upsert(ctx context.Context, token *model.Token) error

	// Preload 预热指定链的全部token到本地缓存
	Preload(ctx context.Context, chain string) (int, error)
}
