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

// poolDAO 实现PoolDAO接口
type poolDAO struct {
	db         *gorm.DB
	localCache *cache.Cache
}

// NewPoolDAO 创建PoolDAO实例
func NewPoolDAO(db *gorm.DB) PoolDAO {
	localCache := cache.New(cache.NoExpiration, 10*time.Minute)
	return &poolDAO{
		db:         db,
		localCache: localCache,
	}
}

// GetByAddress 通过地址获取池子信息
func (p *poolDAO) GetByAddress(ctx context.Context, chain, address string) (*model.Pool, error) {
	cacheKey := utils.PoolKey(chain, address)

	if cached, found := p.localCache.Get(cacheKey); found {
		if pool, ok := cached.(*model.Pool); ok {
			return pool, nil
		}
	}

	var pool model.Pool
	err := p.db.WithContext(ctx).
		Where("chain = ? AND address = ?", chain, address).
		First(&pool).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	p.localCache.Set(cacheKey, &pool, cache.NoExpiration)
	return &pool, nil
}

// Upsert 幂等写入池子记录
func (p *poolDAO) Upsert(ctx context.Context, pool *model.Pool) error {
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "chain"},
			{Name: "address"},
		},
		DoNothing: true,
	}).Create(pool).Error
	if err != nil {
		return err
	}

	p.localCache.Set(utils.PoolKey(pool.Chain, pool.Address), pool, cache.NoExpiration)
	return nil
}

// Preload 预热指定链的全部池子
func (p *poolDAO) Preload(ctx context.Context, chain string) (int, error) {
	var pools []model.Pool
	if err := p.db.WithContext(ctx).Where("chain = ?", chain).Find(&pools).Error; err != nil {
		return 0, err
	}

	for i := range pools {
		pool := pools[i]
		p.localCache.Set(utils.PoolKey(pool.Chain, pool.Address), &pool, cache.NoExpiration)
	}
	return len(pools), nil
}
