package decoder

import (
	"context"

	"sui-smart/internal/worker/model"
	"sui-smart/pkg/utils"
)

const (
	SUISWAP = "SUISWAP"

	suiSwapPackage = "0x361dd589b98e8fcda9a7ee53b85efabef3569d00416640d2faa516e3801d7ffc"
)

type suiSwapEvent struct {
	InAmount  string `json:"in_amount"`
	OutAmount string `json:"out_amount"`
	PoolIndex string `json:"pool_index"`
	XToY      bool   `json:"x_to_y"`
}

func (d *Deps) SuiSwapEntries() []Entry {
	return []Entry{
		{
			Protocol: SUISWAP,
			Topics:   []string{suiSwapPackage + "::pool::SwapTokenEvent"},
			Decode:   d.suiSwapTrade,
		},
	}
}

func (d *Deps) suiSwapTrade(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload suiSwapEvent
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	tokenX, tokenY := utils.ParsePoolTokens(event.Type)

	fromToken, toToken := tokenX, tokenY
	if !payload.XToY {
		fromToken, toToken = tokenY, tokenX
	}

	fromAmount := d.scale(ctx, fromToken, payload.InAmount)
	toAmount := d.scale(ctx, toToken, payload.OutAmount)

	trade := d.newTrade(event, gas)
	trade.Protocol = SUISWAP
	trade.FromToken = utils.NormalizeAddress(fromToken)
	trade.FromAmount = fromAmount
	trade.ToToken = utils.NormalizeAddress(toToken)
	trade.ToAmount = toAmount
	trade.Quantity = toAmount
	trade.AmountUsd = d.tradeValue(ctx, event, fromToken, fromAmount, toToken, toAmount)

	return &Result{Trade: trade}, nil
}
