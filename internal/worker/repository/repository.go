package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sui-smart/internal/worker/config"
	"sui-smart/pkg/database"
	"sui-smart/pkg/market"
	"sui-smart/pkg/sui"
)

var once sync.Once
var r *repositoryImpl

func New(cfg config.Config, logger *zap.Logger) Repository {
	once.Do(func() {
		r = &repositoryImpl{
			cfg:    cfg,
			logger: logger,
		}
		r.init()
	})
	return r
}

type repositoryImpl struct {
	cfg          config.Config
	logger       *zap.Logger
	db           *gorm.DB
	mainRdb      *redis.Client
	mq           *kafka.Writer
	suiClient    *sui.Client
	marketClient *market.Client
}

func (r *repositoryImpl) init() {
	var err error
	r.db, err = database.InitPG(r.cfg.Postgres.DSN)

	if err != nil {
		panic(err)
	}

	// 初始化 Main RDB
	r.mainRdb = redis.NewClient(&redis.Options{
		Addr:     r.cfg.Redis.Address,
		Password: r.cfg.Redis.Password,
		DB:       r.cfg.Redis.DB,
		PoolSize: 20,
	})

	if err := r.mainRdb.Ping(context.Background()).Err(); err != nil {
		r.logger.Warn("failed to connect to redis, continue", zap.Error(err))
	}

	brokers := strings.Split(r.cfg.Kafka.Brokers, ",")
	r.mq = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    1000,
		BatchBytes:   1024 * 1024, // 1MB
		Async:        true,
		RequiredAcks: kafka.RequireNone,
		Compression:  kafka.Snappy,
		// 添加连接控制
		MaxAttempts:  5,
		WriteTimeout: 500 * time.Millisecond, // 降低单次写入超时时间
	}

	// 初始化rpc client
	r.suiClient = sui.NewClient(sui.ClientConfig{
		RPCURL:    r.cfg.Sui.RPCURL,
		RateLimit: r.cfg.Sui.RateLimit,
		Timeout:   r.cfg.Sui.Timeout,
	}, r.logger)

	r.marketClient = market.NewClient(market.ClientConfig{
		BaseURL:   r.cfg.Market.BaseURL,
		RateLimit: r.cfg.Market.RateLimit,
		Timeout:   r.cfg.Market.Timeout,
	}, r.logger)
}

func (r *repositoryImpl) GetMainRDB() *redis.Client {
	return r.mainRdb
}

func (r *repositoryImpl) GetDB() *gorm.DB {
	return r.db
}

func (r *repositoryImpl) GetMQ() MQClient {
	return r.mq
}

func (r *repositoryImpl) GetSuiClient() *sui.Client {
	return r.suiClient
}

func (r *repositoryImpl) GetMarketClient() *market.Client {
	return r.marketClient
}

func (r *repositoryImpl) Close() error {
	if r.db != nil {
		sqlDB, _ := r.db.DB()
		sqlDB.Close()
	}
	if r.mainRdb != nil {
		r.mainRdb.Close()
	}
	if r.mq != nil {
		r.mq.Close()
	}
	return nil
}
