package dao

import "context"

// BlockStatusDAO 消费进度访问接口
type BlockStatusDAO interface {
	// GetLatestIndexed 读取续传点，无记录返回-1
	GetLatestIndexed(ctx context.Context, chain, topic string) (int64, error)

	// Save 推进续传点，只允许前进
	Save(ctx context.Context, chain, topic string, checkpoint int64) error
}
