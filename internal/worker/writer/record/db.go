package record

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sui-smart/internal/worker/model"
	"sui-smart/internal/worker/writer"
)

const (
	RETRY_COUNT = 3
)

// 记录表的自然键为(tx_hash, log_index)，重复投递直接跳过
var conflictSkip = clause.OnConflict{
	Columns: []clause.Column{
		{Name: "tx_hash"},
		{Name: "log_index"},
	},
	DoNothing: true,
}

type DbTradeWriter struct {
	db *gorm.DB
	tl *zap.Logger
}

func NewDbTradeWriter(db *gorm.DB, tl *zap.Logger) writer.BatchWriter[model.Trade] {
	return &DbTradeWriter{db: db, tl: tl}
}

func (w *DbTradeWriter) BWrite(ctx context.Context, trades []model.Trade) error {
	return writeBatch(ctx, w.db, w.tl, "trades", trades)
}

func (w *DbTradeWriter) Close() error {
	return nil
}

type DbLiquidityWriter struct {
	db *gorm.DB
	tl *zap.Logger
}

func NewDbLiquidityWriter(db *gorm.DB, tl *zap.Logger) writer.BatchWriter[model.LiquidityChange] {
	return &DbLiquidityWriter{db: db, tl: tl}
}

func (w *DbLiquidityWriter) BWrite(ctx context.Context, changes []model.LiquidityChange) error {
	return writeBatch(ctx, w.db, w.tl, "defi_liquidity", changes)
}

func (w *DbLiquidityWriter) Close() error {
	return nil
}

type DbLendingWriter struct {
	db *gorm.DB
	tl *zap.Logger
}

func NewDbLendingWriter(db *gorm.DB, tl *zap.Logger) writer.BatchWriter[model.LendingAction] {
	return &DbLendingWriter{db: db, tl: tl}
}

func (w *DbLendingWriter) BWrite(ctx context.Context, actions []model.LendingAction) error {
	return writeBatch(ctx, w.db, w.tl, "defi_lending", actions)
}

func (w *DbLendingWriter) Close() error {
	return nil
}

type DbStakeWriter struct {
	db *gorm.DB
	tl *zap.Logger
}

func NewDbStakeWriter(db *gorm.DB, tl *zap.Logger) writer.BatchWriter[model.StakeAction] {
	return &DbStakeWriter{db: db, tl: tl}
}

func (w *DbStakeWriter) BWrite(ctx context.Context, actions []model.StakeAction) error {
	return writeBatch(ctx, w.db, w.tl, "defi_stake", actions)
}

func (w *DbStakeWriter) Close() error {
	return nil
}

func writeBatch[T any](ctx context.Context, db *gorm.DB, tl *zap.Logger, table string, batch []T) error {
	if len(batch) == 0 {
		return nil
	}

	newCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	// 重试机制
	var err error
	for attempt := 0; attempt < RETRY_COUNT; attempt++ {
		err = db.WithContext(newCtx).Clauses(conflictSkip).CreateInBatches(batch, 1000).Error
		if err == nil {
			break // 成功则退出重试
		}
	}
	if err != nil {
		tl.Warn("❌ DB write failed, exceeded the maximum number of retries",
			zap.String("table", table), zap.Int("size", len(batch)), zap.Error(err))
		return err
	}
	return nil
}
