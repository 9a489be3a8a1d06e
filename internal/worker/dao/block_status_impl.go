package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sui-smart/internal/worker/model"
)

// blockStatusDAO 实现BlockStatusDAO接口
type blockStatusDAO struct {
	db *gorm.DB
}

// NewBlockStatusDAO 创建BlockStatusDAO实例
func NewBlockStatusDAO(db *gorm.DB) BlockStatusDAO {
	return &blockStatusDAO{db: db}
}

// GetLatestIndexed 读取续传点
func (b *blockStatusDAO) GetLatestIndexed(ctx context.Context, chain, topic string) (int64, error) {
	var status model.BlockStatus
	err := b.db.WithContext(ctx).
		Where("chain = ? AND topic = ?", chain, topic).
		First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return -1, nil
		}
		return -1, err
	}
	return status.Checkpoint, nil
}

// Save 推进续传点
func (b *blockStatusDAO) Save(ctx context.Context, chain, topic string, checkpoint int64) error {
	return b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "chain"},
			{Name: "topic"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"checkpoint": gorm.Expr("GREATEST(block_status.checkpoint, EXCLUDED.checkpoint)"),
		}),
	}).Create(&model.BlockStatus{
		Chain:      chain,
		Topic:      topic,
		Checkpoint: checkpoint,
	}).Error
}
