package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"sui-smart/internal/worker/config"
	"sui-smart/internal/worker/dao"
	"sui-smart/internal/worker/model"
	"sui-smart/internal/worker/monitor"
	"sui-smart/pkg/market"
)

const (
	// 行情序列缓存窗口，相邻批次复用
	priceWindowMs = 2 * 60 * 1000

	// tier 3 聚合参数：5个区块内最近10笔成交
	aggBlockLookback = 5
	aggTradeLimit    = 10
)

// PriceService 分层价格解析：存量价格点 -> 外部行情序列 -> 近期成交均价 -> 0
type PriceService struct {
	tl       *zap.Logger
	feeds    dao.PriceFeedDAO
	records  dao.RecordDAO
	registry *TokenRegistry
	market   *market.Client

	// 主流代币地址 -> 外部市场ID
	majors map[string]int64

	mu          sync.RWMutex
	seriesCache map[int64][]model.PricePoint
	preparedAt  int64
}

// NewPriceService 创建PriceService实例
func NewPriceService(tl *zap.Logger, cfg config.MarketConfig, daoMgr *dao.DAOManager, registry *TokenRegistry, marketClient *market.Client) *PriceService {
	return &PriceService{
		tl:          tl,
		feeds:       daoMgr.PriceFeedDAO,
		records:     daoMgr.RecordDAO,
		registry:    registry,
		market:      marketClient,
		majors:      cfg.Majors,
		seriesCache: make(map[int64][]model.PricePoint),
	}
}

// PreparePrices 为一个处理批次预取主流代币行情序列
// 2分钟内的重复调用直接复用缓存
func (s *PriceService) PreparePrices(ctx context.Context, fromMs, toMs int64) {
	s.mu.RLock()
	prepared := s.preparedAt
	s.mu.RUnlock()
	if toMs-prepared < priceWindowMs {
		return
	}

	fetched := make(map[int64][]model.PricePoint, len(s.majors))
	var fm sync.Mutex

	p := pool.New().WithMaxGoroutines(4)
	for _, id := range s.majors {
		marketID := id
		p.Go(func() {
			points, err := s.market.FetchSeries(ctx, marketID, fromMs, toMs)
			if err != nil {
				s.tl.Warn("❌ fetch market series failed", zap.Int64("market_id", marketID), zap.Error(err))
				return
			}
			fm.Lock()
			fetched[marketID] = points
			fm.Unlock()
		})
	}
	p.Wait()

	s.mu.Lock()
	for id, points := range fetched {
		s.seriesCache[id] = points
	}
	s.preparedAt = toMs
	s.mu.Unlock()
}

// NearestPoint 在按时间升序的序列中二分查找最近的点
// 距离相同时取更早的点，空序列返回nil
func NearestPoint(targetMs int64, points []model.PricePoint) *model.PricePoint {
	left, right := 0, len(points)-1
	var nearest *model.PricePoint

	for left <= right {
		mid := (left + right) / 2
		midTs := points[mid].Timestamp

		if midTs == targetMs {
			return &points[mid]
		}

		diff := absInt64(midTs - targetMs)
		best := int64(-1)
		if nearest != nil {
			best = absInt64(nearest.Timestamp - targetMs)
		}
		if nearest == nil || diff < best || (diff == best && midTs < nearest.Timestamp) {
			nearest = &points[mid]
		}

		if midTs < targetMs {
			left = mid + 1
		} else {
			right = mid - 1
		}
	}

	return nearest
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// GetPrice 解析代币在某时刻的价格，tsMs为0表示取最新
// 任何一层失败都降级到下一层，最终返回price=0而不是错误
func (s *PriceService) GetPrice(ctx context.Context, address string, tsMs int64) model.TokenPrice {
	return s.GetPriceAt(ctx, address, tsMs, 0)
}

// GetPriceAt 同GetPrice，block大于0时tier 3按区块高度做lookback
func (s *PriceService) GetPriceAt(ctx context.Context, address string, tsMs int64, block int64) model.TokenPrice {
	result := model.TokenPrice{
		Address:  address,
		Decimals: s.registry.Decimals(ctx, address),
	}
	if token, err := s.registry.Get(ctx, address); err == nil && token != nil {
		result.Symbol = token.Symbol
	}

	// tier 1: 存量价格点
	feed, err := s.feeds.LatestBefore(ctx, address, model.CHAIN, tsMs)
	if err != nil {
		s.tl.Warn("❌ query price feed failed", zap.String("address", address), zap.Error(err))
	}
	if feed != nil && feed.Price.IsPositive() {
		monitor.PriceTierHits.WithLabelValues("feed").Inc()
		result.Price = feed.Price
		if feed.Decimals > 0 {
			result.Decimals = feed.Decimals
		}
		return result
	}

	// tier 2: 外部行情序列，仅主流代币
	if marketID, ok := s.majors[address]; ok {
		s.mu.RLock()
		series := s.seriesCache[marketID]
		s.mu.RUnlock()
		if point := NearestPoint(tsMs, series); point != nil {
			monitor.PriceTierHits.WithLabelValues("market").Inc()
			result.Price = point.Price
			return result
		}
	}

	// tier 3: 近期成交均价
	if price := s.aggregateTradePrice(ctx, address, block); price.IsPositive() {
		monitor.PriceTierHits.WithLabelValues("trade_agg").Inc()
		result.Price = price
		return result
	}

	// tier 4: 未知
	monitor.PriceTierHits.WithLabelValues("unknown").Inc()
	result.Price = decimal.Zero
	return result
}

// NativePrice 原生代币价格，gas估值用
func (s *PriceService) NativePrice(ctx context.Context, tsMs int64) decimal.Decimal {
	return s.GetPrice(ctx, model.NATIVE_TOKEN, tsMs).Price
}

// aggregateTradePrice 用最近成交的 amount_usd/quantity 均值兜底定价
func (s *PriceService) aggregateTradePrice(ctx context.Context, address string, block int64) decimal.Decimal {
	if block <= 0 {
		return decimal.Zero
	}

	trades, err := s.records.RecentTrades(ctx, address, block, aggBlockLookback, aggTradeLimit)
	if err != nil {
		s.tl.Warn("❌ aggregate trade price failed", zap.String("address", address), zap.Error(err))
		return decimal.Zero
	}

	cost := decimal.Zero
	quantity := decimal.Zero
	for _, trade := range trades {
		var amount decimal.Decimal
		switch address {
		case trade.ToToken:
			amount = trade.ToAmount
		case trade.FromToken:
			amount = trade.FromAmount
		default:
			continue
		}
		cost = cost.Add(trade.AmountUsd)
		quantity = quantity.Add(amount)
	}

	if !cost.IsPositive() || !quantity.IsPositive() {
		return decimal.Zero
	}
	return cost.Div(quantity)
}
