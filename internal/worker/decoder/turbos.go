package decoder

import (
	"context"

	"sui-smart/internal/worker/model"
	"sui-smart/pkg/utils"
)

const (
	TURBOS = "TURBOS"

	turbosPackage = "0x91bfbc386a41afcfd9b2533058d7e915a1d3829089cc268ff4333d54d6339ca1"
)

type turbosSwap struct {
	AToB    bool   `json:"a_to_b"`
	AmountA string `json:"amount_a"`
	AmountB string `json:"amount_b"`
	Pool    string `json:"pool"`
}

func (d *Deps) TurbosEntries() []Entry {
	return []Entry{
		{
			Protocol: TURBOS,
			Topics:   []string{turbosPackage + "::pool::SwapEvent"},
			Decode:   d.turbosSwap,
		},
	}
}

func (d *Deps) turbosSwap(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload turbosSwap
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	pool, err := d.Pools.Get(ctx, TURBOS, payload.Pool)
	if err != nil {
		return nil, err
	}

	fromToken, fromRaw := pool.TokenA, payload.AmountA
	toToken, toRaw := pool.TokenB, payload.AmountB
	if !payload.AToB {
		fromToken, fromRaw = pool.TokenB, payload.AmountB
		toToken, toRaw = pool.TokenA, payload.AmountA
	}

	fromAmount := d.scale(ctx, fromToken, fromRaw)
	toAmount := d.scale(ctx, toToken, toRaw)

	trade := d.newTrade(event, gas)
	trade.Protocol = TURBOS
	trade.PoolAddress = payload.Pool
	trade.FromToken = utils.NormalizeAddress(fromToken)
	trade.FromAmount = fromAmount
	trade.ToToken = utils.NormalizeAddress(toToken)
	trade.ToAmount = toAmount
	trade.Quantity = toAmount
	trade.AmountUsd = d.tradeValue(ctx, event, fromToken, fromAmount, toToken, toAmount)

	return &Result{Trade: trade}, nil
}
