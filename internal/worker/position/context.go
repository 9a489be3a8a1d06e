package position

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sui-smart/pkg/sui"
	"sui-smart/pkg/utils"
)

const contextTTL = 2 * time.Minute

// SuiContext 一次仓位计算共享的钱包快照
type SuiContext struct {
	OwnedObjects []sui.SuiObject   `json:"owned_objects"`
	Balances     []sui.CoinBalance `json:"balances"`
}

// ObjectsByTypePrefix 按类型前缀筛选持有对象
func (c *SuiContext) ObjectsByTypePrefix(prefix string) []sui.SuiObject {
	var matched []sui.SuiObject
	for _, obj := range c.OwnedObjects {
		objType := obj.Type
		if objType == "" && obj.Content != nil {
			objType = obj.Content.Type
		}
		if len(objType) >= len(prefix) && objType[:len(prefix)] == prefix {
			matched = append(matched, obj)
		}
	}
	return matched
}

// ContextLoader 拉取钱包快照，redis短缓存挡住同一钱包的连续请求
type ContextLoader struct {
	tl        *zap.Logger
	rdb       *redis.Client
	suiClient *sui.Client
}

func NewContextLoader(tl *zap.Logger, rdb *redis.Client, suiClient *sui.Client) *ContextLoader {
	return &ContextLoader{tl: tl, rdb: rdb, suiClient: suiClient}
}

// Load 读取钱包的持有对象与余额快照
func (l *ContextLoader) Load(ctx context.Context, owner string) (*SuiContext, error) {
	ownedObj, err := getOrSet(ctx, l, utils.OwnedObjKey(owner), func() ([]sui.SuiObject, error) {
		return l.suiClient.GetOwnedObjects(ctx, owner)
	})
	if err != nil {
		return nil, err
	}

	balances, err := getOrSet(ctx, l, utils.BalancesKey(owner), func() ([]sui.CoinBalance, error) {
		return l.suiClient.GetAllBalances(ctx, owner)
	})
	if err != nil {
		return nil, err
	}

	return &SuiContext{OwnedObjects: ownedObj, Balances: balances}, nil
}

// getOrSet 读穿缓存，redis不可用时直接回源
func getOrSet[T any](ctx context.Context, l *ContextLoader, key string, fetch func() (T, error)) (T, error) {
	var zero T

	if l.rdb != nil {
		raw, err := l.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var cached T
			if err := sonic.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			l.tl.Warn("❌ redis get failed", zap.String("key", key), zap.Error(err))
		}
	}

	value, err := fetch()
	if err != nil {
		return zero, err
	}

	if l.rdb != nil {
		if raw, err := sonic.Marshal(value); err == nil {
			if err := l.rdb.Set(ctx, key, raw, contextTTL).Err(); err != nil {
				l.tl.Warn("❌ redis set failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return value, nil
}
