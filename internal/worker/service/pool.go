package service

import (
	"context"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"sui-smart/internal/worker/dao"
	"sui-smart/internal/worker/model"
	"sui-smart/pkg/sui"
	"sui-smart/pkg/utils"
)

// PoolResolver 池子注册表：本地缓存 -> DB -> 链上对象
type PoolResolver struct {
	tl        *zap.Logger
	pools     dao.PoolDAO
	suiClient *sui.Client
}

// NewPoolResolver 创建PoolResolver实例
func NewPoolResolver(tl *zap.Logger, pools dao.PoolDAO, suiClient *sui.Client) *PoolResolver {
	return &PoolResolver{
		tl:        tl,
		pools:     pools,
		suiClient: suiClient,
	}
}

// Preload 预热本地缓存
func (s *PoolResolver) Preload(ctx context.Context) {
	count, err := s.pools.Preload(ctx, model.CHAIN)
	if err != nil {
		s.tl.Warn("❌ preload pools failed", zap.Error(err))
		return
	}
	s.tl.Info("✅ pools preloaded", zap.Int("count", count))
}

// Get 获取池子信息，未收录时读链上对象解析代币对并异步落库
func (s *PoolResolver) Get(ctx context.Context, protocol, address string) (*model.Pool, error) {
	pool, err := s.pools.GetByAddress(ctx, model.CHAIN, address)
	if err != nil {
		return nil, err
	}
	if pool != nil {
		return pool, nil
	}

	obj, err := s.suiClient.GetObject(ctx, address)
	if err != nil {
		return nil, err
	}

	tokenA, tokenB := utils.ParsePoolTokens(obj.Type)
	if tokenA == "" && obj.Content != nil {
		tokenA, tokenB = utils.ParsePoolTokens(obj.Content.Type)
	}

	pool = &model.Pool{
		Chain:    model.CHAIN,
		Address:  address,
		Protocol: protocol,
		TokenA:   utils.NormalizeAddress(tokenA),
		TokenB:   utils.NormalizeAddress(tokenB),
	}
	// 协议相关字段(fee、tick spacing等)原样留档
	if obj.Content != nil && len(obj.Content.Fields) > 0 {
		if raw, err := sonic.Marshal(obj.Content.Fields); err == nil {
			pool.Metadata = datatypes.JSON(raw)
		}
	}

	saved := *pool
	go func() {
		if err := s.pools.Upsert(context.Background(), &saved); err != nil {
			s.tl.Warn("❌ save pool failed", zap.String("address", address), zap.Error(err))
		}
	}()

	return pool, nil
}
