package decoder

import (
	"context"

	"sui-smart/internal/worker/model"
	"sui-smart/pkg/utils"
)

const (
	FLOWX = "FLOWX"

	flowxV2Package = "0xba153169476e8c3114962261d1edc70de5ad9781b83cc617ecc8c1923191cae0"
	flowxV3Package = "0x25929e7f29e0a30eb4e692952ba1b5b65a3a4d65ab5f2a32e1ba3edcb587f26d"
)

type flowxV2Swap struct {
	AmountXIn  string `json:"amount_x_in"`
	AmountXOut string `json:"amount_x_out"`
	AmountYIn  string `json:"amount_y_in"`
	AmountYOut string `json:"amount_y_out"`
	CoinX      string `json:"coin_x"`
	CoinY      string `json:"coin_y"`
	User       string `json:"user"`
}

type flowxV3Swap struct {
	AmountX string `json:"amount_x"`
	AmountY string `json:"amount_y"`
	PoolID  string `json:"pool_id"`
	XForY   bool   `json:"x_for_y"`
}

func (d *Deps) FlowXEntries() []Entry {
	return []Entry{
		{
			Protocol: FLOWX,
			Topics:   []string{flowxV2Package + "::pair::Swapped"},
			Decode:   d.flowxV2Swap,
		},
		{
			Protocol: FLOWX,
			Topics:   []string{flowxV3Package + "::pool::Swap"},
			Decode:   d.flowxV3Swap,
		},
	}
}

// flowxV2Swap v2事件自带币种名，无package前缀需补0x
func (d *Deps) flowxV2Swap(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload flowxV2Swap
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	coinX := utils.NormalizeAddress("0x" + payload.CoinX)
	coinY := utils.NormalizeAddress("0x" + payload.CoinY)

	fromToken, fromRaw := coinX, payload.AmountXIn
	toToken, toRaw := coinY, payload.AmountYOut
	if payload.AmountXIn == "0" || payload.AmountXIn == "" {
		fromToken, fromRaw = coinY, payload.AmountYIn
		toToken, toRaw = coinX, payload.AmountXOut
	}

	fromAmount := d.scale(ctx, fromToken, fromRaw)
	toAmount := d.scale(ctx, toToken, toRaw)

	trade := d.newTrade(event, gas)
	trade.Protocol = FLOWX
	trade.FromToken = fromToken
	trade.FromAmount = fromAmount
	trade.ToToken = toToken
	trade.ToAmount = toAmount
	trade.Quantity = toAmount
	trade.AmountUsd = d.tradeValue(ctx, event, fromToken, fromAmount, toToken, toAmount)

	return &Result{Trade: trade}, nil
}

func (d *Deps) flowxV3Swap(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload flowxV3Swap
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	pool, err := d.Pools.Get(ctx, FLOWX, payload.PoolID)
	if err != nil {
		return nil, err
	}

	fromToken, fromRaw := pool.TokenA, payload.AmountX
	toToken, toRaw := pool.TokenB, payload.AmountY
	if !payload.XForY {
		fromToken, fromRaw = pool.TokenB, payload.AmountY
		toToken, toRaw = pool.TokenA, payload.AmountX
	}

	fromAmount := d.scale(ctx, fromToken, fromRaw)
	toAmount := d.scale(ctx, toToken, toRaw)

	trade := d.newTrade(event, gas)
	trade.Protocol = FLOWX
	trade.PoolAddress = payload.PoolID
	trade.FromToken = utils.NormalizeAddress(fromToken)
	trade.FromAmount = fromAmount
	trade.ToToken = utils.NormalizeAddress(toToken)
	trade.ToAmount = toAmount
	trade.Quantity = toAmount
	trade.AmountUsd = d.tradeValue(ctx, event, fromToken, fromAmount, toToken, toAmount)

	return &Result{Trade: trade}, nil
}
