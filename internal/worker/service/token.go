package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sui-smart/internal/worker/dao"
	"sui-smart/internal/worker/model"
	"sui-smart/pkg/sui"
	"sui-smart/pkg/utils"
)

// DEFAULT_DECIMALS 链上coin默认精度
const DEFAULT_DECIMALS = 9

// TokenRegistry token注册表：本地缓存 -> DB -> 链上元数据
// 精度创建后不可变，首次观察到即落库
type TokenRegistry struct {
	tl        *zap.Logger
	tokens    dao.TokenDAO
	suiClient *sui.Client
}

// NewTokenRegistry 创建TokenRegistry实例
func NewTokenRegistry(tl *zap.Logger, tokens dao.TokenDAO, suiClient *sui.Client) *TokenRegistry {
	return &TokenRegistry{
		tl:        tl,
		tokens:    tokens,
		suiClient: suiClient,
	}
}

// Preload 预热本地缓存
func (s *TokenRegistry) Preload(ctx context.Context) {
	count, err := s.tokens.Preload(ctx, model.CHAIN)
	if err != nil {
		s.tl.Warn("❌ preload tokens failed", zap.Error(err))
		return
	}
	s.tl.Info("✅ tokens preloaded", zap.Int("count", count))
}

// Get 获取token信息，未收录时查链上元数据并异步落库
func (s *TokenRegistry) Get(ctx context.Context, address string) (*model.Token, error) {
	token, err := s.tokens.GetByAddress(ctx, model.CHAIN, address)
	if err != nil {
		return nil, err
	}
	if token != nil {
		return token, nil
	}

	token = s.fetchFromChain(ctx, address)

	// 异步落库，写失败只记日志不影响调用方
	saved := *token
	go func() {
		if err := s.tokens.Upsert(context.Background(), &saved); err != nil {
			s.tl.Warn("❌ save token failed", zap.String("address", address), zap.Error(err))
		}
	}()

	return token, nil
}

// Decimals 获取token精度，任何失败路径都回退默认值
func (s *TokenRegistry) Decimals(ctx context.Context, address string) int32 {
	token, err := s.Get(ctx, address)
	if err != nil || token == nil || token.Decimals <= 0 {
		return DEFAULT_DECIMALS
	}
	return token.Decimals
}

func (s *TokenRegistry) fetchFromChain(ctx context.Context, address string) *model.Token {
	token := &model.Token{
		Chain:    model.CHAIN,
		Address:  address,
		Decimals: DEFAULT_DECIMALS,
	}

	meta, err := s.suiClient.GetCoinMetadata(ctx, address)
	if err != nil || meta == nil {
		s.tl.Debug("coin metadata unavailable, fallback to default decimals",
			zap.String("address", address), zap.Error(err))
		return token
	}

	token.Symbol = meta.Symbol
	token.Name = meta.Name
	token.Logo = meta.IconURL
	if meta.Decimals > 0 {
		token.Decimals = meta.Decimals
	}
	return token
}

// Scale 按注册表中的精度换算原始金额
func (s *TokenRegistry) Scale(ctx context.Context, address, raw string) decimal.Decimal {
	return utils.Scale(raw, s.Decimals(ctx, address))
}
