package model

import "time"

// BlockStatus 消费进度，checkpoint只在整批处理完成后推进
type BlockStatus struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Chain      string    `gorm:"type:varchar(16);not null;uniqueIndex:uk_bs_chain_topic,priority:1" json:"chain"`
	Topic      string    `gorm:"type:varchar(64);not null;uniqueIndex:uk_bs_chain_topic,priority:2" json:"topic"`
	Checkpoint int64     `gorm:"not null" json:"checkpoint"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BlockStatus) TableName() string {
	return "block_status"
}
