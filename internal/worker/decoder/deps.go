package decoder

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sui-smart/internal/worker/model"
	"sui-smart/internal/worker/service"
	"sui-smart/pkg/sui"
	"sui-smart/pkg/utils"
)

// Deps 各协议解码器共享的依赖
type Deps struct {
	TL        *zap.Logger
	Pools     *service.PoolResolver
	Tokens    *service.TokenRegistry
	Prices    *service.PriceService
	SuiClient *sui.Client
}

func parsePayload(event *model.SuiEvent, out interface{}) error {
	return sonic.Unmarshal(event.ParsedJSON, out)
}

// tradeValue 成交的报价币估值：先试卖出侧价格，再试买入侧，都拿不到返回0
func (d *Deps) tradeValue(ctx context.Context, event *model.SuiEvent, fromToken string, fromAmount decimal.Decimal, toToken string, toAmount decimal.Decimal) decimal.Decimal {
	fromPrice := d.Prices.GetPriceAt(ctx, fromToken, event.TimestampMs, event.Checkpoint)
	if fromPrice.Price.IsPositive() {
		return fromAmount.Mul(fromPrice.Price)
	}

	toPrice := d.Prices.GetPriceAt(ctx, toToken, event.TimestampMs, event.Checkpoint)
	if toPrice.Price.IsPositive() {
		return toAmount.Mul(toPrice.Price)
	}

	return decimal.Zero
}

// scale 按注册表精度换算原始金额
func (d *Deps) scale(ctx context.Context, token, raw string) decimal.Decimal {
	return utils.Scale(raw, d.Tokens.Decimals(ctx, token))
}

// price 事件时刻的代币价格
func (d *Deps) price(ctx context.Context, event *model.SuiEvent, token string) decimal.Decimal {
	return d.Prices.GetPriceAt(ctx, token, event.TimestampMs, event.Checkpoint).Price
}

// newTrade 填充成交记录的公共字段
func (d *Deps) newTrade(event *model.SuiEvent, gas model.GasContext) *model.Trade {
	return &model.Trade{
		TxHash:      event.ID.TxDigest,
		LogIndex:    event.ID.EventSeq,
		Chain:       model.CHAIN,
		Owner:       event.Sender,
		Block:       event.Checkpoint,
		Timestamp:   event.TimestampMs,
		Fee:         gas.GasFee,
		NativePrice: gas.NativePrice,
	}
}

// newLiquidity 填充流动性记录的公共字段
func (d *Deps) newLiquidity(event *model.SuiEvent, gas model.GasContext) *model.LiquidityChange {
	return &model.LiquidityChange{
		TxHash:      event.ID.TxDigest,
		LogIndex:    event.ID.EventSeq,
		Chain:       model.CHAIN,
		Owner:       event.Sender,
		Block:       event.Checkpoint,
		Timestamp:   event.TimestampMs,
		Fee:         gas.GasFee,
		NativePrice: gas.NativePrice,
	}
}

// newLending 填充借贷记录的公共字段
func (d *Deps) newLending(event *model.SuiEvent, gas model.GasContext) *model.LendingAction {
	return &model.LendingAction{
		TxHash:      event.ID.TxDigest,
		LogIndex:    event.ID.EventSeq,
		Chain:       model.CHAIN,
		Owner:       event.Sender,
		Block:       event.Checkpoint,
		Timestamp:   event.TimestampMs,
		Fee:         gas.GasFee,
		NativePrice: gas.NativePrice,
	}
}

// newStake 填充质押记录的公共字段
func (d *Deps) newStake(event *model.SuiEvent, gas model.GasContext) *model.StakeAction {
	return &model.StakeAction{
		TxHash:      event.ID.TxDigest,
		LogIndex:    event.ID.EventSeq,
		Chain:       model.CHAIN,
		Owner:       event.Sender,
		Block:       event.Checkpoint,
		Timestamp:   event.TimestampMs,
		Fee:         gas.GasFee,
		NativePrice: gas.NativePrice,
	}
}

// Entries 汇总全部协议的注册项
func (d *Deps) Entries() []Entry {
	var entries []Entry
	entries = append(entries, d.CetusEntries()...)
	entries = append(entries, d.TurbosEntries()...)
	entries = append(entries, d.KriyaEntries()...)
	entries = append(entries, d.FlowXEntries()...)
	entries = append(entries, d.AftermathEntries()...)
	entries = append(entries, d.BlueMoveEntries()...)
	entries = append(entries, d.SuiSwapEntries()...)
	entries = append(entries, d.NaviEntries()...)
	entries = append(entries, d.ScallopEntries()...)
	entries = append(entries, d.NativeStakeEntries()...)
	return entries
}
