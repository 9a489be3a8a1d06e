package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceFeed 持久化价格点，按(token,chain)构成时间序列
type PriceFeed struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TokenAddress string          `gorm:"type:varchar(256);not null;index:idx_pf_token_ts,priority:1" json:"token_address"`
	Chain        string          `gorm:"type:varchar(16);not null" json:"chain"`
	Price        decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"price"`
	Decimals     int32           `gorm:"not null;default:9" json:"decimals"`
	Timestamp    int64           `gorm:"not null;index:idx_pf_token_ts,priority:2,sort:desc" json:"timestamp"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (PriceFeed) TableName() string {
	return "price_feeds"
}

// PricePoint 外部行情序列中的一个点，按时间升序排列
type PricePoint struct {
	Timestamp int64           `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
}

// TokenPrice 价格解析结果，Price为0表示未知
type TokenPrice struct {
	Address  string          `json:"address"`
	Symbol   string          `json:"symbol"`
	Decimals int32           `json:"decimals"`
	Price    decimal.Decimal `json:"price"`
}
