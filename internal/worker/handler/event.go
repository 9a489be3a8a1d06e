package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"sui-smart/internal/worker/config"
	"sui-smart/internal/worker/dao"
	"sui-smart/internal/worker/decoder"
	"sui-smart/internal/worker/model"
	"sui-smart/internal/worker/monitor"
	"sui-smart/internal/worker/repository"
	"sui-smart/internal/worker/service"
	"sui-smart/internal/worker/writer"
	"sui-smart/internal/worker/writer/record"
	"sui-smart/pkg/utils"
)

// EventHandler 批量消费链上事件：估值、解码、落库、推进续传点
type EventHandler struct {
	tl       *zap.Logger
	cfg      config.Config
	registry *decoder.Registry
	prices   *service.PriceService
	status   dao.BlockStatusDAO

	tradeWriter     *writer.AsyncBatchWriter[model.Trade]
	liquidityWriter *writer.AsyncBatchWriter[model.LiquidityChange]
	lendingWriter   *writer.AsyncBatchWriter[model.LendingAction]
	stakeWriter     *writer.AsyncBatchWriter[model.StakeAction]
}

func NewEventHandler(cfg config.Config, tl *zap.Logger, repo repository.Repository) *EventHandler {
	db := repo.GetDB()
	daoMgr := dao.NewDAOManager(db)

	tokens := service.NewTokenRegistry(tl, daoMgr.TokenDAO, repo.GetSuiClient())
	pools := service.NewPoolResolver(tl, daoMgr.PoolDAO, repo.GetSuiClient())
	prices := service.NewPriceService(tl, cfg.Market, daoMgr, tokens, repo.GetMarketClient())

	deps := &decoder.Deps{
		TL:        tl,
		Pools:     pools,
		Tokens:    tokens,
		Prices:    prices,
		SuiClient: repo.GetSuiClient(),
	}

	batchSize := cfg.Worker.BatchSize
	flush := time.Duration(cfg.Worker.FlushInterval) * time.Millisecond

	h := &EventHandler{
		tl:       tl,
		cfg:      cfg,
		registry: decoder.NewRegistry(tl, deps.Entries()),
		prices:   prices,
		status:   daoMgr.BlockStatusDAO,

		tradeWriter:     writer.NewAsyncBatchWriter(tl, record.NewDbTradeWriter(db, tl), batchSize, flush, "trade", 2),
		liquidityWriter: writer.NewAsyncBatchWriter(tl, record.NewDbLiquidityWriter(db, tl), batchSize, flush, "liquidity", 2),
		lendingWriter:   writer.NewAsyncBatchWriter(tl, record.NewDbLendingWriter(db, tl), batchSize, flush, "lending", 1),
		stakeWriter:     writer.NewAsyncBatchWriter(tl, record.NewDbStakeWriter(db, tl), batchSize, flush, "stake", 1),
	}

	ctx := context.Background()
	tokens.Preload(ctx)
	pools.Preload(ctx)
	h.tradeWriter.Start(ctx)
	h.liquidityWriter.Start(ctx)
	h.lendingWriter.Start(ctx)
	h.stakeWriter.Start(ctx)

	return h
}

// Registry 协议注册表，供消费者做topic预筛
func (h *EventHandler) Registry() *decoder.Registry {
	return h.registry
}

// HandleBatch 处理一批事件，批内并发解码，整批完成后才推进续传点
func (h *EventHandler) HandleBatch(ctx context.Context, events []*model.SuiEvent) {
	if len(events) == 0 {
		return
	}
	start := time.Now()
	batchID := uuid.NewString()

	minTs, maxTs := events[0].TimestampMs, events[0].TimestampMs
	maxCheckpoint := events[0].Checkpoint
	for _, ev := range events[1:] {
		if ev.TimestampMs < minTs {
			minTs = ev.TimestampMs
		}
		if ev.TimestampMs > maxTs {
			maxTs = ev.TimestampMs
		}
		if ev.Checkpoint > maxCheckpoint {
			maxCheckpoint = ev.Checkpoint
		}
	}

	// 预取主流币行情，批内解码直接走内存
	h.prices.PreparePrices(ctx, minTs, maxTs)

	// 同一笔交易的gas按digest算一次
	gasByDigest := make(map[string]model.GasContext)
	for _, ev := range events {
		if _, ok := gasByDigest[ev.ID.TxDigest]; ok {
			continue
		}
		nativePrice := h.prices.NativePrice(ctx, ev.TimestampMs)
		gasByDigest[ev.ID.TxDigest] = model.GasContext{
			GasFee:      utils.SumGasUsed(ev.GasUsed).Shift(-9).Mul(nativePrice),
			NativePrice: nativePrice,
		}
	}

	p := pool.New().WithMaxGoroutines(h.cfg.Worker.WorkerNum)
	for _, ev := range events {
		event := ev
		entries := h.registry.Match(event.Type)
		if len(entries) == 0 {
			monitor.EventsFiltered.WithLabelValues("no_decoder").Inc()
			continue
		}
		gas := gasByDigest[event.ID.TxDigest]
		for _, entry := range entries {
			e := entry
			p.Go(func() {
				h.submit(h.registry.SafeDecode(ctx, e, event, gas))
			})
		}
	}
	p.Wait()

	// 整批落库提交后才推进，重启时至多重复消费一批，靠唯一键去重
	if err := h.status.Save(ctx, model.CHAIN, h.cfg.Kafka.TopicEvents, maxCheckpoint); err != nil {
		h.tl.Warn("❌ save checkpoint failed",
			zap.String("batchID", batchID),
			zap.Int64("checkpoint", maxCheckpoint),
			zap.Error(err))
	} else {
		monitor.IndexedCheckpoint.Set(float64(maxCheckpoint))
	}

	monitor.BatchProcessDuration.Observe(time.Since(start).Seconds())
	h.tl.Info("✅ batch processed",
		zap.String("batchID", batchID),
		zap.Int("events", len(events)),
		zap.Int64("checkpoint", maxCheckpoint),
		zap.Duration("elapsed", time.Since(start)))
}

func (h *EventHandler) submit(result *decoder.Result) {
	if result.Empty() {
		return
	}
	if result.Trade != nil {
		h.tradeWriter.Submit(*result.Trade)
	}
	if result.Liquidity != nil {
		h.liquidityWriter.Submit(*result.Liquidity)
	}
	if result.Lending != nil {
		h.lendingWriter.Submit(*result.Lending)
	}
	if result.Stake != nil {
		h.stakeWriter.Submit(*result.Stake)
	}
}

// ResumePoint 续传点，无记录返回-1
func (h *EventHandler) ResumePoint(ctx context.Context) int64 {
	checkpoint, err := h.status.GetLatestIndexed(ctx, model.CHAIN, h.cfg.Kafka.TopicEvents)
	if err != nil {
		h.tl.Warn("❌ load resume point failed", zap.Error(err))
		return -1
	}
	return checkpoint
}

func (h *EventHandler) Stop() {
	h.tradeWriter.Close()
	h.liquidityWriter.Close()
	h.lendingWriter.Close()
	h.stakeWriter.Close()
}
