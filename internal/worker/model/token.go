package model

import (
	"time"

	"gorm.io/datatypes"
)

// Token 代币注册表，decimals是单位换算的唯一依据
type Token struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Chain     string    `gorm:"type:varchar(16);not null;uniqueIndex:uk_token_chain_address,priority:1" json:"chain"`
	Address   string    `gorm:"type:varchar(256);not null;uniqueIndex:uk_token_chain_address,priority:2" json:"address"`
	Symbol    string    `gorm:"type:varchar(64)" json:"symbol"`
	Name      string    `gorm:"type:varchar(128)" json:"name"`
	Decimals  int32     `gorm:"not null;default:9" json:"decimals"`
	Logo      string    `gorm:"type:varchar(512)" json:"logo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Token) TableName() string {
	return "tokens"
}

// Pool 交易池/储备池注册表，记录两侧代币类型
type Pool struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Chain     string         `gorm:"type:varchar(16);not null;uniqueIndex:uk_pool_chain_address,priority:1" json:"chain"`
	Address   string         `gorm:"type:varchar(256);not null;uniqueIndex:uk_pool_chain_address,priority:2" json:"address"`
	Protocol  string         `gorm:"type:varchar(64);not null;index:idx_pool_protocol" json:"protocol"`
	TokenA    string         `gorm:"type:varchar(256)" json:"token_a"`
	TokenB    string         `gorm:"type:varchar(256)" json:"token_b"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Pool) TableName() string {
	return "pools"
}
