package decoder

import (
	"context"

	"sui-smart/internal/worker/model"
)

const NATIVE_STAKING = "NATIVE_STAKING"

type nativeStake struct {
	Amount           string `json:"amount"`
	Epoch            string `json:"epoch"`
	PoolID           string `json:"pool_id"`
	ValidatorAddress string `json:"validator_address"`
}

type nativeUnstake struct {
	PoolID           string `json:"pool_id"`
	PrincipalAmount  string `json:"principal_amount"`
	RewardAmount     string `json:"reward_amount"`
	ValidatorAddress string `json:"validator_address"`
}

// NativeStakeEntries 系统验证人质押
func (d *Deps) NativeStakeEntries() []Entry {
	return []Entry{
		{
			Protocol: NATIVE_STAKING,
			Topics:   []string{"0x3::validator::StakingRequestEvent"},
			Decode:   d.nativeStake,
		},
		{
			Protocol: NATIVE_STAKING,
			Topics:   []string{"0x3::validator::UnstakingRequestEvent"},
			Decode:   d.nativeUnstake,
		},
	}
}

func (d *Deps) nativeStake(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload nativeStake
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	stake := d.newStake(event, gas)
	stake.Protocol = NATIVE_STAKING
	stake.PoolAddress = payload.ValidatorAddress
	stake.Action = model.ActionAdd
	stake.InputType = model.InputTypeStake
	stake.InputToken = model.NATIVE_TOKEN
	stake.InputAmount = d.scale(ctx, model.NATIVE_TOKEN, payload.Amount)
	stake.InputPrice = d.price(ctx, event, model.NATIVE_TOKEN)

	return &Result{Stake: stake}, nil
}

// nativeUnstake 解押产出为本金加奖励
func (d *Deps) nativeUnstake(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload nativeUnstake
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	principal := d.scale(ctx, model.NATIVE_TOKEN, payload.PrincipalAmount)
	reward := d.scale(ctx, model.NATIVE_TOKEN, payload.RewardAmount)

	stake := d.newStake(event, gas)
	stake.Protocol = NATIVE_STAKING
	stake.PoolAddress = payload.ValidatorAddress
	stake.Action = model.ActionRemove
	stake.InputType = model.InputTypeStake
	stake.OutputToken = model.NATIVE_TOKEN
	stake.OutputAmount = principal.Add(reward)
	stake.OutputPrice = d.price(ctx, event, model.NATIVE_TOKEN)

	return &Result{Stake: stake}, nil
}
