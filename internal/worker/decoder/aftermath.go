package decoder

import (
	"context"

	"sui-smart/internal/worker/model"
	"sui-smart/pkg/utils"
)

const (
	AFTERMATH = "AFTERMATH"

	aftermathPackage = "0xdc15721baa82ba64822d585a7349a1508f76d94ae80e899b06e48369c257750e"
)

type aftermathSwap struct {
	AmountIn  string `json:"amount_in"`
	AmountOut string `json:"amount_out"`
	TypeIn    string `json:"type_in"`
	TypeOut   string `json:"type_out"`
	Swapper   string `json:"swapper"`
}

func (d *Deps) AftermathEntries() []Entry {
	return []Entry{
		{
			Protocol: AFTERMATH,
			Topics:   []string{aftermathPackage + "::swap_cap::SwapCompletedEvent"},
			Decode:   d.aftermathSwap,
		},
	}
}

func (d *Deps) aftermathSwap(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload aftermathSwap
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	fromToken := utils.NormalizeAddress("0x" + payload.TypeIn)
	toToken := utils.NormalizeAddress("0x" + payload.TypeOut)
	fromAmount := d.scale(ctx, fromToken, payload.AmountIn)
	toAmount := d.scale(ctx, toToken, payload.AmountOut)

	trade := d.newTrade(event, gas)
	trade.Protocol = AFTERMATH
	trade.FromToken = fromToken
	trade.FromAmount = fromAmount
	trade.ToToken = toToken
	trade.ToAmount = toAmount
	trade.Quantity = toAmount
	trade.AmountUsd = d.tradeValue(ctx, event, fromToken, fromAmount, toToken, toAmount)

	return &Result{Trade: trade}, nil
}
