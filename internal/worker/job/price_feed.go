package job

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sui-smart/internal/worker/config"
	"sui-smart/internal/worker/dao"
	"sui-smart/internal/worker/model"
	"sui-smart/internal/worker/monitor"
	"sui-smart/internal/worker/repository"
	"sui-smart/internal/worker/service"
)

// PriceFeedJob 周期性地把最近成交聚合成价格点：
// 每笔成交的amount_usd/数量给出两侧代币各一个样本，窗口内按代币求均值，
// 落库price_feeds并推送到价格topic。价格解析的tier1读的就是这张表。
type PriceFeedJob struct {
	tl      *zap.Logger
	cfg     config.Config
	records dao.RecordDAO
	feeds   dao.PriceFeedDAO
	tokens  *service.TokenRegistry
	mq      repository.MQClient

	lastRun int64 // 上一轮窗口右沿，毫秒
}

func NewPriceFeedJob(cfg config.Config, tl *zap.Logger, repo repository.Repository) *PriceFeedJob {
	daoMgr := dao.NewDAOManager(repo.GetDB())
	return &PriceFeedJob{
		tl:      tl.With(zap.String("job", "price_feed")),
		cfg:     cfg,
		records: daoMgr.RecordDAO,
		feeds:   daoMgr.PriceFeedDAO,
		tokens:  service.NewTokenRegistry(tl, daoMgr.TokenDAO, repo.GetSuiClient()),
		mq:      repo.GetMQ(),
	}
}

func (j *PriceFeedJob) Run(ctx context.Context) error {
	now := time.Now().UnixMilli()
	since := j.lastRun
	if since == 0 {
		lookback := j.cfg.Jobs.PriceFeedLookback
		if lookback <= 0 {
			lookback = 10
		}
		since = now - int64(lookback)*60_000
	}

	trades, err := j.records.TradesSince(ctx, since)
	if err != nil {
		return err
	}
	if len(trades) == 0 {
		j.lastRun = now
		return nil
	}

	type acc struct {
		sum   decimal.Decimal
		count int64
	}
	samples := make(map[string]*acc)
	add := func(token string, amount, usd decimal.Decimal) {
		if amount.IsZero() || usd.IsZero() {
			return
		}
		a := samples[token]
		if a == nil {
			a = &acc{}
			samples[token] = a
		}
		a.sum = a.sum.Add(usd.Div(amount))
		a.count++
	}
	for _, t := range trades {
		add(t.FromToken, t.FromAmount, t.AmountUsd)
		add(t.ToToken, t.ToAmount, t.AmountUsd)
	}

	points := make([]model.PriceFeed, 0, len(samples))
	msgs := make([]kafka.Message, 0, len(samples))
	for token, a := range samples {
		price := a.sum.Div(decimal.NewFromInt(a.count))
		decimals := j.tokens.Decimals(ctx, token)

		points = append(points, model.PriceFeed{
			TokenAddress: token,
			Chain:        model.CHAIN,
			Price:        price,
			Decimals:     decimals,
			Timestamp:    now,
		})

		payload, err := sonic.Marshal(model.TokenPrice{
			Address:  token,
			Decimals: decimals,
			Price:    price,
		})
		if err != nil {
			continue
		}
		msgs = append(msgs, kafka.Message{
			Topic: j.cfg.Kafka.TopicPrice,
			Key:   []byte(token),
			Value: payload,
		})
	}

	if err := j.feeds.BatchCreate(ctx, points); err != nil {
		return err
	}
	monitor.PriceFeedPoints.Add(float64(len(points)))

	if j.cfg.Kafka.TopicPrice != "" && len(msgs) > 0 {
		if err := j.mq.WriteMessages(ctx, msgs...); err != nil {
			// 落库已成功，推送失败只记日志，下一轮价格点会覆盖
			j.tl.Warn("❌ failed to publish price points", zap.Error(err))
		}
	}

	j.lastRun = now
	j.tl.Info("✅ price feed aggregated",
		zap.Int("trades", len(trades)),
		zap.Int("tokens", len(points)),
		zap.Int64("window_start", since))
	return nil
}
