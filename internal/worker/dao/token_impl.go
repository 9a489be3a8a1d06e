package dao

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sui-smart/internal/worker/model"
	"sui-smart/pkg/utils"
)

// tokenDAO 实现TokenDAO接口
// token精度创建后不会变化，本地缓存不设过期
type tokenDAO struct {
	db         *gorm.DB
	localCache *cache.Cache
}

// NewTokenDAO 创建TokenDAO实例
func NewTokenDAO(db *gorm.DB) TokenDAO {
	localCache := cache.New(cache.NoExpiration, 10*time.Minute)
	return &tokenDAO{
		db:         db,
		localCache: localCache,
	}
}

// GetByAddress 通过地址获取token信息
func (t *tokenDAO) GetByAddress(ctx context.Context, chain, address string) (*model.Token, error) {
	cacheKey := utils.TokenKey(chain, address)

	if cached, found := t.localCache.Get(cacheKey); found {
		if token, ok := cached.(*model.Token); ok {
			return token, nil
		}
	}

	var token model.Token
	err := t.db.WithContext(ctx).
		Where("chain = ? AND address = ?", chain, address).
		First(&token).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	t.localCache.Set(cacheKey, &token, cache.NoExpiration)
	return &token, nil
}

// Upsert 幂等写入token记录
func (t *tokenDAO) Upsert(ctx context.Context, token *model.Token) error {
	err := t.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "chain"},
			{Name: "address"},
		},
		DoNothing: true,
	}).Create(token).Error
	if err != nil {
		return err
	}

	t.localCache.Set(utils.TokenKey(token.Chain, token.Address), token, cache.NoExpiration)
	return nil
}

// Preload 预热指定链的全部token
func (t *tokenDAO) Preload(ctx context.Context, chain string) (int, error) {
	var tokens []model.Token
	if err := t.db.WithContext(ctx).Where("chain = ?", chain).Find(&tokens).Error; err != nil {
		return 0, err
	}

	for i := range tokens {
		token := tokens[i]
		t.localCache.Set(utils.TokenKey(token.Chain, token.Address), &token, cache.NoExpiration)
	}
	return len(tokens), nil
}
