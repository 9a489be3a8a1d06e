package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
log:
  level: debug
kafka:
  brokers: "localhost:9092"
  topic_events: "sui_events"
  topic_price: "sui_token_price"
  group_id: "sui_smart_worker"
postgres:
  dsn: "host=localhost dbname=sui_smart"
sui:
  rpc_url: "https://fullnode.mainnet.sui.io"
  rate_limit: 50
  timeout: 10
worker:
  worker_num: 8
  batch_size: 200
  flush_interval: 2000
backfill:
  file: "./data/events.csv"
  from: 100
  to: 200
  batch_size: 50
jobs:
  price_feed_interval: 5
  price_feed_lookback: 10
monitor:
  enable: true
  prometheus_addr: ":9091"
`

func TestInitConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.worker.yaml"), []byte(testConfigYAML), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg := InitConfig()

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "sui_events", cfg.Kafka.TopicEvents)
	assert.Equal(t, "sui_token_price", cfg.Kafka.TopicPrice)
	assert.Equal(t, 50, cfg.Sui.RateLimit)
	assert.Equal(t, 200, cfg.Worker.BatchSize)
	assert.Equal(t, int64(100), cfg.Backfill.From)
	assert.Equal(t, int64(200), cfg.Backfill.To)
	assert.Equal(t, 5, cfg.Jobs.PriceFeedInterval)
	assert.True(t, cfg.Monitor.Enable)
	assert.Equal(t, ":9091", cfg.Monitor.PrometheusAddr)
}
