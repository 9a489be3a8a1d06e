package decoder

import (
	"context"

	"sui-smart/internal/worker/model"
	"sui-smart/pkg/utils"
)

const (
	CETUS = "CETUS"

	cetusPackage   = "0x1eabed72c53feb3805120a081dc15963c204dc8d091542592abaf7a35689b2fb"
	xcetusPackage  = "0x9e69acc50ca03bc943c4f7c5304c2a6002d507b51c11913b247159c60422c606"
	cetusTokenAddr = "0x6864a6f921804860930db6ddbe2e16acdf8504495ea7481637a1c8b9a8fe54b::cetus::CETUS"
	xcetusToken    = xcetusPackage + "::xcetus::XCETUS"
)

type cetusSwap struct {
	AmountIn  string `json:"amount_in"`
	AmountOut string `json:"amount_out"`
	AtoB      bool   `json:"atob"`
	FeeAmount string `json:"fee_amount"`
	Pool      string `json:"pool"`
}

type tickBits struct {
	Bits int32 `json:"bits"`
}

type cetusLiquidity struct {
	AmountA   string   `json:"amount_a"`
	AmountB   string   `json:"amount_b"`
	Liquidity string   `json:"liquidity"`
	Pool      string   `json:"pool"`
	Position  string   `json:"position"`
	TickLower tickBits `json:"tick_lower"`
	TickUpper tickBits `json:"tick_upper"`
}

type cetusPosition struct {
	Pool      string   `json:"pool"`
	Position  string   `json:"position"`
	TickLower tickBits `json:"tick_lower"`
	TickUpper tickBits `json:"tick_upper"`
}

type cetusConvert struct {
	Amount  string `json:"amount"`
	VenftID string `json:"venft_id"`
}

type cetusRedeem struct {
	Amount      string `json:"amount"`
	CetusAmount string `json:"cetus_amount"`
	LockDay     string `json:"lock_day"`
	VenftID     string `json:"venft_id"`
}

// CetusEntries CLMM swap、仓位流动性与xCETUS锁仓
func (d *Deps) CetusEntries() []Entry {
	return []Entry{
		{
			Protocol: CETUS,
			Topics:   []string{cetusPackage + "::pool::SwapEvent"},
			Decode:   d.cetusSwap,
		},
		{
			Protocol: CETUS,
			Topics:   []string{cetusPackage + "::pool::OpenPositionEvent"},
			Decode:   d.cetusOpenPosition,
		},
		{
			Protocol: CETUS,
			Topics:   []string{cetusPackage + "::pool::AddLiquidityEvent"},
			Decode:   d.cetusLiquidity(model.ActionAdd),
		},
		{
			Protocol: CETUS,
			Topics:   []string{cetusPackage + "::pool::RemoveLiquidityEvent"},
			Decode:   d.cetusLiquidity(model.ActionRemove),
		},
		{
			Protocol: CETUS,
			Topics:   []string{cetusPackage + "::pool::CollectFeeEvent"},
			Decode:   d.cetusCollectFee,
		},
		{
			Protocol: CETUS,
			Topics:   []string{cetusPackage + "::pool::ClosePositionEvent"},
			Decode:   d.cetusClosePosition,
		},
		{
			Protocol: CETUS,
			Topics:   []string{xcetusPackage + "::locking::ConvertEvent"},
			Decode:   d.cetusMintXCetus,
		},
		{
			Protocol: CETUS,
			Topics:   []string{xcetusPackage + "::locking::RedeemLockEvent"},
			Decode:   d.cetusRedeemLock,
		},
	}
}

func (d *Deps) cetusSwap(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload cetusSwap
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	pool, err := d.Pools.Get(ctx, CETUS, payload.Pool)
	if err != nil {
		return nil, err
	}

	fromToken, toToken := pool.TokenA, pool.TokenB
	if !payload.AtoB {
		fromToken, toToken = pool.TokenB, pool.TokenA
	}

	fromAmount := d.scale(ctx, fromToken, payload.AmountIn)
	toAmount := d.scale(ctx, toToken, payload.AmountOut)

	trade := d.newTrade(event, gas)
	trade.Protocol = CETUS
	trade.PoolAddress = payload.Pool
	trade.FromToken = utils.NormalizeAddress(fromToken)
	trade.FromAmount = fromAmount
	trade.ToToken = utils.NormalizeAddress(toToken)
	trade.ToAmount = toAmount
	trade.Quantity = toAmount
	trade.AmountUsd = d.tradeValue(ctx, event, fromToken, fromAmount, toToken, toAmount)

	return &Result{Trade: trade}, nil
}

func (d *Deps) cetusOpenPosition(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload cetusPosition
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	pool, err := d.Pools.Get(ctx, CETUS, payload.Pool)
	if err != nil {
		return nil, err
	}

	// Mint只记录仓位区间，金额由后续AddLiquidityEvent补充
	liq := d.newLiquidity(event, gas)
	liq.Protocol = CETUS
	liq.PoolAddress = payload.Pool
	liq.PositionID = payload.Position
	liq.Action = model.ActionMint
	liq.TokenA = pool.TokenA
	liq.TokenB = pool.TokenB
	liq.TickLower = payload.TickLower.Bits
	liq.TickUpper = payload.TickUpper.Bits

	return &Result{Liquidity: liq}, nil
}

func (d *Deps) cetusLiquidity(action string) DecodeFunc {
	return func(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
		var payload cetusLiquidity
		if err := parsePayload(event, &payload); err != nil {
			return nil, err
		}

		pool, err := d.Pools.Get(ctx, CETUS, payload.Pool)
		if err != nil {
			return nil, err
		}

		liq := d.newLiquidity(event, gas)
		liq.Protocol = CETUS
		liq.PoolAddress = payload.Pool
		liq.PositionID = payload.Position
		liq.Action = action
		liq.TokenA = pool.TokenA
		liq.AmountA = d.scale(ctx, pool.TokenA, payload.AmountA)
		liq.PriceA = d.price(ctx, event, pool.TokenA)
		liq.TokenB = pool.TokenB
		liq.AmountB = d.scale(ctx, pool.TokenB, payload.AmountB)
		liq.PriceB = d.price(ctx, event, pool.TokenB)
		liq.TickLower = payload.TickLower.Bits
		liq.TickUpper = payload.TickUpper.Bits

		return &Result{Liquidity: liq}, nil
	}
}

func (d *Deps) cetusCollectFee(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload cetusLiquidity
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	pool, err := d.Pools.Get(ctx, CETUS, payload.Pool)
	if err != nil {
		return nil, err
	}

	liq := d.newLiquidity(event, gas)
	liq.Protocol = CETUS
	liq.PoolAddress = payload.Pool
	liq.PositionID = payload.Position
	liq.Action = model.ActionFee
	liq.TokenA = pool.TokenA
	liq.AmountA = d.scale(ctx, pool.TokenA, payload.AmountA)
	liq.PriceA = d.price(ctx, event, pool.TokenA)
	liq.TokenB = pool.TokenB
	liq.AmountB = d.scale(ctx, pool.TokenB, payload.AmountB)
	liq.PriceB = d.price(ctx, event, pool.TokenB)

	return &Result{Liquidity: liq}, nil
}

func (d *Deps) cetusClosePosition(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload cetusPosition
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	pool, err := d.Pools.Get(ctx, CETUS, payload.Pool)
	if err != nil {
		return nil, err
	}

	liq := d.newLiquidity(event, gas)
	liq.Protocol = CETUS
	liq.PoolAddress = payload.Pool
	liq.PositionID = payload.Position
	liq.Action = model.ActionClose
	liq.TokenA = pool.TokenA
	liq.TokenB = pool.TokenB

	return &Result{Liquidity: liq}, nil
}

func (d *Deps) cetusMintXCetus(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload cetusConvert
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	stake := d.newStake(event, gas)
	stake.Protocol = CETUS
	stake.PoolAddress = xcetusToken
	stake.Action = model.ActionStake
	stake.InputType = model.InputTypeToken
	stake.InputToken = cetusTokenAddr
	stake.InputAmount = d.scale(ctx, cetusTokenAddr, payload.Amount)
	stake.InputPrice = d.price(ctx, event, cetusTokenAddr)
	stake.OutputToken = xcetusToken
	stake.OutputAmount = d.scale(ctx, xcetusToken, payload.Amount)

	return &Result{Stake: stake}, nil
}

func (d *Deps) cetusRedeemLock(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload cetusRedeem
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	stake := d.newStake(event, gas)
	stake.Protocol = CETUS
	stake.PoolAddress = xcetusToken
	stake.Action = model.ActionUnstake
	stake.InputType = model.InputTypeToken
	stake.InputToken = xcetusToken
	stake.InputAmount = d.scale(ctx, xcetusToken, payload.Amount)
	stake.OutputToken = cetusTokenAddr
	stake.OutputAmount = d.scale(ctx, cetusTokenAddr, payload.CetusAmount)
	stake.OutputPrice = d.price(ctx, event, cetusTokenAddr)

	return &Result{Stake: stake}, nil
}
