package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"sui-smart/pkg/logger"
)

// Config 定义整个配置的结构
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Sui      SuiConfig      `mapstructure:"sui"`
	Market   MarketConfig   `mapstructure:"market"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Backfill BackfillConfig `mapstructure:"backfill"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
}

// KafkaConfig Kafka 配置
type KafkaConfig struct {
	Brokers     string `mapstructure:"brokers"`
	TopicEvents string `mapstructure:"topic_events"`
	TopicPrice  string `mapstructure:"topic_price"`
	GroupID     string `mapstructure:"group_id"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PostgresConfig PostgreSQL 配置
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// SuiConfig Sui 全节点配置
type SuiConfig struct {
	RPCURL    string `mapstructure:"rpc_url"`
	RateLimit int    `mapstructure:"rate_limit"`
	Timeout   int    `mapstructure:"timeout"`
}

// MarketConfig 外部行情配置，Majors为主流代币地址到外部市场ID的映射
type MarketConfig struct {
	BaseURL   string           `mapstructure:"base_url"`
	RateLimit int              `mapstructure:"rate_limit"`
	Timeout   int              `mapstructure:"timeout"`
	Majors    map[string]int64 `mapstructure:"majors"`
}

// LogConfig Log 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
}

type WorkerConfig struct {
	WorkerNum     int `mapstructure:"worker_num"`
	BatchSize     int `mapstructure:"batch_size"`
	FlushInterval int `mapstructure:"flush_interval"` // 毫秒
}

// BackfillConfig 离线回填配置，checkpoint区间为[from, to)
type BackfillConfig struct {
	File      string `mapstructure:"file"`
	From      int64  `mapstructure:"from"`
	To        int64  `mapstructure:"to"`
	BatchSize int    `mapstructure:"batch_size"`
}

// JobsConfig 定时任务配置，间隔与回看窗口均为分钟
type JobsConfig struct {
	PriceFeedInterval int `mapstructure:"price_feed_interval"`
	PriceFeedLookback int `mapstructure:"price_feed_lookback"`
}

type MonitorConfig struct {
	Enable         bool   `mapstructure:"enable"`
	PrometheusAddr string `mapstructure:"prometheus_addr"`
}

func InitConfig() Config {
	var config Config

	viper.SetConfigName("config.worker")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config/")

	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}

	if err := mapstructure.Decode(viper.AllSettings(), &config); err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}

	return config
}

func WatchConfig(config *Config) {
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		newConfig := InitConfig()
		*config = newConfig
		logger.SetLogLevel(config.Log.Level)
	})
}
