package decoder

import (
	"context"

	"sui-smart/internal/worker/model"
	"sui-smart/pkg/utils"
)

const (
	KRIYA = "KRIYA"

	kriyaDexPackage  = "0xa0eba10b173538c8fecca1dff298e488402cc9ff374f8a12ca7758eebe830b66"
	kriyaFarmPackage = "0x88701243d0445aa38c0a13f02a9af49a58092dfadb93af9754edb41c52f40085"
)

type kriyaAddLiquidity struct {
	AmountX           string `json:"amount_x"`
	AmountY           string `json:"amount_y"`
	LiquidityProvider string `json:"liquidity_provider"`
	LspMinted         string `json:"lsp_minted"`
	LspBurned         string `json:"lsp_burned"`
	PoolID            string `json:"pool_id"`
}

type kriyaFarmStake struct {
	FarmID        string `json:"farm_id"`
	StakeAmount   string `json:"stake_amount"`
	UnstakeAmount string `json:"unstake_amount"`
	RewardAmount  string `json:"reward_amount"`
}

// KriyaEntries spot dex流动性与farm质押
func (d *Deps) KriyaEntries() []Entry {
	return []Entry{
		{
			Protocol: KRIYA,
			Topics:   []string{kriyaDexPackage + "::spot_dex::LiquidityAddedEvent"},
			Decode:   d.kriyaLiquidity(model.ActionAdd),
		},
		{
			Protocol: KRIYA,
			Topics:   []string{kriyaDexPackage + "::spot_dex::LiquidityRemovedEvent"},
			Decode:   d.kriyaLiquidity(model.ActionRemove),
		},
		{
			Protocol: KRIYA,
			Topics:   []string{kriyaFarmPackage + "::farm::StakeEvent"},
			Decode:   d.kriyaFarm(model.ActionStake, model.InputTypeLP),
		},
		{
			Protocol: KRIYA,
			Topics:   []string{kriyaFarmPackage + "::farm::UnstakeEvent"},
			Decode:   d.kriyaFarm(model.ActionUnstake, model.InputTypeLP),
		},
		{
			Protocol: KRIYA,
			Topics:   []string{kriyaFarmPackage + "::farm::ClaimEvent"},
			Decode:   d.kriyaFarm(model.ActionReward, model.InputTypeClaim),
		},
	}
}

func (d *Deps) kriyaLiquidity(action string) DecodeFunc {
	return func(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
		var payload kriyaAddLiquidity
		if err := parsePayload(event, &payload); err != nil {
			return nil, err
		}

		pool, err := d.Pools.Get(ctx, KRIYA, payload.PoolID)
		if err != nil {
			return nil, err
		}

		liq := d.newLiquidity(event, gas)
		liq.Protocol = KRIYA
		liq.PoolAddress = payload.PoolID
		liq.PositionID = payload.PoolID
		liq.Action = action
		liq.TokenA = utils.NormalizeAddress(pool.TokenA)
		liq.AmountA = d.scale(ctx, pool.TokenA, payload.AmountX)
		liq.PriceA = d.price(ctx, event, pool.TokenA)
		liq.TokenB = utils.NormalizeAddress(pool.TokenB)
		liq.AmountB = d.scale(ctx, pool.TokenB, payload.AmountY)
		liq.PriceB = d.price(ctx, event, pool.TokenB)

		return &Result{Liquidity: liq}, nil
	}
}

// kriyaFarm 农场事件只带farm对象ID，LP数量与奖励币种链上事件不含，置零
func (d *Deps) kriyaFarm(action, inputType string) DecodeFunc {
	return func(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
		var payload kriyaFarmStake
		if err := parsePayload(event, &payload); err != nil {
			return nil, err
		}

		stake := d.newStake(event, gas)
		stake.Protocol = KRIYA
		stake.PoolAddress = payload.FarmID
		stake.Action = action
		stake.InputType = inputType
		stake.InputToken = payload.FarmID

		return &Result{Stake: stake}, nil
	}
}
