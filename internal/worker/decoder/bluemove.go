package decoder

import (
	"context"

	"sui-smart/internal/worker/model"
	"sui-smart/pkg/utils"
)

const (
	BLUEMOVE = "BLUEMOVE"

	blueMovePackage = "0xb24b6789e088b876afabca733bed2299fbc9e2d6369be4d1acfa17d8145454d9"
)

type blueMoveSwap struct {
	AmountXIn  string `json:"amount_x_in"`
	AmountXOut string `json:"amount_x_out"`
	AmountYIn  string `json:"amount_y_in"`
	AmountYOut string `json:"amount_y_out"`
	PoolID     string `json:"pool_id"`
	User       string `json:"user"`
}

func (d *Deps) BlueMoveEntries() []Entry {
	return []Entry{
		{
			Protocol: BLUEMOVE,
			Topics:   []string{blueMovePackage + "::swap::Swap_Event"},
			Decode:   d.blueMoveSwap,
		},
	}
}

// blueMoveSwap 币种取自事件类型的泛型参数
func (d *Deps) blueMoveSwap(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload blueMoveSwap
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	tokenX, tokenY := utils.ParsePoolTokens(event.Type)
	isFromX := payload.AmountXIn != "" && payload.AmountXIn != "0"

	fromToken, fromRaw := tokenX, payload.AmountXIn
	toToken, toRaw := tokenY, payload.AmountYOut
	if !isFromX {
		fromToken, fromRaw = tokenY, payload.AmountYIn
		toToken, toRaw = tokenX, payload.AmountXOut
	}

	fromAmount := d.scale(ctx, fromToken, fromRaw)
	toAmount := d.scale(ctx, toToken, toRaw)

	trade := d.newTrade(event, gas)
	trade.Protocol = BLUEMOVE
	trade.PoolAddress = payload.PoolID
	trade.FromToken = utils.NormalizeAddress(fromToken)
	trade.FromAmount = fromAmount
	trade.ToToken = utils.NormalizeAddress(toToken)
	trade.ToAmount = toAmount
	trade.Quantity = toAmount
	trade.AmountUsd = d.tradeValue(ctx, event, fromToken, fromAmount, toToken, toAmount)

	return &Result{Trade: trade}, nil
}
