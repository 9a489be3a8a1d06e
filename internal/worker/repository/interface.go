package repository

import (
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"

	"sui-smart/pkg/market"
	"sui-smart/pkg/sui"
)

type RedisClient = *redis.Client
type DBClient = *gorm.DB
type MQClient = *kafka.Writer

type Repository interface {
	//DB
	GetMainRDB() RedisClient
	GetDB() DBClient
	GetMQ() MQClient
	GetSuiClient() *sui.Client
	GetMarketClient() *market.Client
	Close() error
}
