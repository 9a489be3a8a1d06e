package market

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sui-smart/internal/worker/model"
	"sui-smart/pkg/httpclient"
)

// Client 外部行情客户端，按市场ID拉取历史价格序列
type Client struct {
	baseURL    string
	httpClient *httpclient.HTTPClient
	logger     *zap.Logger
}

type ClientConfig struct {
	BaseURL   string
	RateLimit int // 每秒请求数
	Timeout   int // 秒
}

func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	httpCfg := httpclient.HTTPClientConfig{
		Timeout:    time.Duration(cfg.Timeout) * time.Second,
		RateLimit:  cfg.RateLimit,
		MaxRetries: 3,
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpclient.NewHTTPClient(httpCfg, logger),
		logger:     logger,
	}
}

// FetchSeries 拉取[fromMs, toMs]区间的价格序列，按时间升序返回
// 区间超过一天时按天切分请求
func (c *Client) FetchSeries(ctx context.Context, marketID int64, fromMs, toMs int64) ([]model.PricePoint, error) {
	const daySeconds = 24 * 60 * 60

	startTime := fromMs / 1000
	endTime := toMs / 1000
	current := endTime

	var points []model.PricePoint
	for {
		segStart := current - daySeconds - 1
		segEnd := current

		url := fmt.Sprintf("%s/data-api/v3/cryptocurrency/detail/chart?id=%d&range=%d~%d", c.baseURL, marketID, segStart, segEnd)
		var resp chartResponse
		if err := c.httpClient.Get(ctx, url, nil, nil, &resp); err != nil {
			return nil, fmt.Errorf("fetch market series %d failed: %w", marketID, err)
		}

		for ts, point := range resp.Data.Points {
			tsSec, err := strconv.ParseInt(ts, 10, 64)
			if err != nil || len(point.V) == 0 {
				continue
			}
			points = append(points, model.PricePoint{
				Timestamp: tsSec * 1000,
				Price:     decimal.NewFromFloat(point.V[0]),
			})
		}

		current -= daySeconds
		if current < startTime {
			break
		}
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp < points[j].Timestamp
	})
	return points, nil
}
