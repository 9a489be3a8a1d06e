package dao

import (
	"context"

	"gorm.io/gorm"

	"sui-smart/internal/worker/model"
)

// recordDAO 实现RecordDAO接口
type recordDAO struct {
	db *gorm.DB
}

// NewRecordDAO 创建RecordDAO实例
func NewRecordDAO(db *gorm.DB) RecordDAO {
	return &recordDAO{db: db}
}

// RecentTrades 最近lookback个区块内的相关成交
func (r *recordDAO) RecentTrades(ctx context.Context, token string, maxBlock, lookback int64, limit int) ([]model.Trade, error) {
	var trades []model.Trade
	err := r.db.WithContext(ctx).
		Where("chain = ? AND block <= ? AND block > ? AND amount_usd > 0", model.CHAIN, maxBlock, maxBlock-lookback).
		Where("from_token = ? OR to_token = ?", token, token).
		Order("block DESC").
		Limit(limit).
		Find(&trades).Error
	if err != nil {
		return nil, err
	}
	return trades, nil
}

// TradesSince 指定时间之后的全部成交
func (r *recordDAO) TradesSince(ctx context.Context, sinceMs int64) ([]model.Trade, error) {
	var trades []model.Trade
	err := r.db.WithContext(ctx).
		Where("chain = ? AND timestamp > ? AND amount_usd > 0", model.CHAIN, sinceMs).
		Order("timestamp ASC").
		Find(&trades).Error
	if err != nil {
		return nil, err
	}
	return trades, nil
}

// LiquidityByOwner 某钱包在某协议下的流动性变更
func (r *recordDAO) LiquidityByOwner(ctx context.Context, owner, protocol string) ([]model.LiquidityChange, error) {
	var changes []model.LiquidityChange
	err := r.db.WithContext(ctx).
		Where("chain = ? AND owner = ? AND protocol = ?", model.CHAIN, owner, protocol).
		Order("timestamp ASC").
		Find(&changes).Error
	if err != nil {
		return nil, err
	}
	return changes, nil
}

// LendingByOwner 某钱包在某协议下的借贷动作
func (r *recordDAO) LendingByOwner(ctx context.Context, owner, protocol string) ([]model.LendingAction, error) {
	var actions []model.LendingAction
	err := r.db.WithContext(ctx).
		Where("chain = ? AND owner = ? AND protocol = ?", model.CHAIN, owner, protocol).
		Order("timestamp ASC").
		Find(&actions).Error
	if err != nil {
		return nil, err
	}
	return actions, nil
}

// StakeByOwner 某钱包在某协议下的质押动作
func (r *recordDAO) StakeByOwner(ctx context.Context, owner, protocol string) ([]model.StakeAction, error) {
	var actions []model.StakeAction
	err := r.db.WithContext(ctx).
		Where("chain = ? AND owner = ? AND protocol = ?", model.CHAIN, owner, protocol).
		Order("timestamp ASC").
		Find(&actions).Error
	if err != nil {
		return nil, err
	}
	return actions, nil
}
