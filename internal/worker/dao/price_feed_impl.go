package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sui-smart/internal/worker/model"
)

// priceFeedDAO 实现PriceFeedDAO接口
type priceFeedDAO struct {
	db *gorm.DB
}

// NewPriceFeedDAO 创建PriceFeedDAO实例
func NewPriceFeedDAO(db *gorm.DB) PriceFeedDAO {
	return &priceFeedDAO{db: db}
}

// LatestBefore 取参考时间之前最近一个价格点
func (p *priceFeedDAO) LatestBefore(ctx context.Context, token, chain string, beforeMs int64) (*model.PriceFeed, error) {
	query := p.db.WithContext(ctx).
		Where("token_address = ? AND chain = ?", token, chain)
	if beforeMs > 0 {
		query = query.Where("timestamp <= ?", beforeMs)
	}

	var feed model.PriceFeed
	err := query.Order("timestamp DESC").First(&feed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feed, nil
}

// BatchCreate 批量写入价格点
func (p *priceFeedDAO) BatchCreate(ctx context.Context, feeds []model.PriceFeed) error {
	if len(feeds) == 0 {
		return nil
	}
	return p.db.WithContext(ctx).CreateInBatches(feeds, 1000).Error
}
