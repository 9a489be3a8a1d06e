package dao

import (
	"gorm.io/gorm"
)

// DAOManager 管理所有DAO实例
type DAOManager struct {
	TokenDAO       TokenDAO
	PoolDAO        PoolDAO
	RecordDAO      RecordDAO
	PriceFeedDAO   PriceFeedDAO
	BlockStatusDAO BlockStatusDAO
}

// NewDAOManager 创建DAO管理器实例
func NewDAOManager(db *gorm.DB) *DAOManager {
	return &DAOManager{
		TokenDAO:       NewTokenDAO(db),
		PoolDAO:        NewPoolDAO(db),
		RecordDAO:      NewRecordDAO(db),
		PriceFeedDAO:   NewPriceFeedDAO(db),
		BlockStatusDAO: NewBlockStatusDAO(db),
	}
}
