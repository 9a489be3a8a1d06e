package decoder

import (
	"context"

	"sui-smart/internal/worker/model"
	"sui-smart/pkg/utils"
)

const (
	SCALLOP = "SCALLOP"

	scallopPackage       = "0xefe8b36d5b2e43728cc323298626b83177803521d195cfb11e15b910e892fddf"
	scallopSpoolPackage  = "0xe87f1b2d498106a2c61421cec75b7b5c5e348512b0dc263949a0e7a3c256571a"
	scallopBorrowPackage = "0xc38f849e81cfe46d4e4320f508ea7dda42934a329d5a6571bb4c3cb6ea63f5da"
	scallopSpoolRewards  = "0xec1ac7f4d01c5bf178ff4e62e523e7df7721453d81d4904a42a0ffc2686c843d"
	scallopIncentive     = "0xc63072e7f5f4983a2efaf5bdba1480d5e7d74d57948e1c7cc436f8e22cbeb410"
	scallopVeScaPackage  = "0xcfe2d87aa5712b67cad2732edb6a2201bfdf592377e5c0968b7cb02099bd8e21"
	scaToken             = "0x7016aae72cfc67f2fadf55769c0a7dd54291a583b63051a5ed71081cce836ac6::sca::SCA"
)

// Move的TypeName字段，name不带0x前缀
type moveTypeName struct {
	Name string `json:"name"`
}

func (n moveTypeName) Address() string {
	if n.Name == "" {
		return ""
	}
	return utils.NormalizeAddress("0x" + n.Name)
}

type scallopSpoolStake struct {
	SpoolAccountID string       `json:"spool_account_id"`
	SpoolID        string       `json:"spool_id"`
	StakeAmount    string       `json:"stake_amount"`
	UnstakeAmount  string       `json:"unstake_amount"`
	StakingType    moveTypeName `json:"staking_type"`
}

type scallopMint struct {
	DepositAmount string       `json:"deposit_amount"`
	DepositAsset  moveTypeName `json:"deposit_asset"`
	MintAmount    string       `json:"mint_amount"`
	MintAsset     moveTypeName `json:"mint_asset"`
}

type scallopRedeem struct {
	BurnAmount     string       `json:"burn_amount"`
	BurnAsset      moveTypeName `json:"burn_asset"`
	WithdrawAmount string       `json:"withdraw_amount"`
	WithdrawAsset  moveTypeName `json:"withdraw_asset"`
}

type scallopCollateral struct {
	DepositAmount  string       `json:"deposit_amount"`
	DepositAsset   moveTypeName `json:"deposit_asset"`
	WithdrawAmount string       `json:"withdraw_amount"`
	WithdrawAsset  moveTypeName `json:"withdraw_asset"`
	Obligation     string       `json:"obligation"`
}

type scallopBorrow struct {
	Amount     string       `json:"amount"`
	Asset      moveTypeName `json:"asset"`
	BorrowFee  string       `json:"borrow_fee"`
	Obligation string       `json:"obligation"`
}

type scallopReward struct {
	Rewards        string       `json:"rewards"`
	RewardsType    moveTypeName `json:"rewards_type"`
	SpoolAccountID string       `json:"spool_account_id"`
}

type scallopVeStake struct {
	LockedScaAmount string `json:"locked_sca_amount"`
	UnlockAt        string `json:"unlock_at"`
	VeScaKey        string `json:"ve_sca_key"`
}

// ScallopEntries sCoin铸赎、抵押借还、spool质押与veSCA锁仓
func (d *Deps) ScallopEntries() []Entry {
	return []Entry{
		{
			Protocol: SCALLOP,
			Topics:   []string{scallopSpoolPackage + "::user::SpoolAccountStakeEvent"},
			Decode:   d.scallopSpoolStake,
		},
		{
			Protocol: SCALLOP,
			Topics:   []string{scallopSpoolPackage + "::user::SpoolAccountUnstakeEvent"},
			Decode:   d.scallopSpoolUnstake,
		},
		{
			Protocol: SCALLOP,
			Topics:   []string{scallopPackage + "::mint::MintEvent"},
			Decode:   d.scallopMint,
		},
		{
			Protocol: SCALLOP,
			Topics:   []string{scallopPackage + "::redeem::RedeemEvent"},
			Decode:   d.scallopRedeem,
		},
		{
			Protocol: SCALLOP,
			Topics:   []string{scallopPackage + "::deposit_collateral::CollateralDepositEvent"},
			Decode:   d.scallopCollateralDeposit,
		},
		{
			Protocol: SCALLOP,
			Topics:   []string{scallopPackage + "::withdraw_collateral::CollateralWithdrawEvent"},
			Decode:   d.scallopCollateralWithdraw,
		},
		{
			Protocol: SCALLOP,
			Topics:   []string{scallopBorrowPackage + "::borrow::BorrowEventV2"},
			Decode:   d.scallopBorrow,
		},
		{
			Protocol: SCALLOP,
			Topics:   []string{scallopPackage + "::repay::RepayEvent"},
			Decode:   d.scallopRepay,
		},
		{
			Protocol: SCALLOP,
			Topics: []string{
				scallopSpoolRewards + "::user::SpoolAccountRedeemRewardsEventV2",
				scallopIncentive + "::user::IncentiveAccountRedeemRewardsEventV2",
			},
			Decode: d.scallopReward,
		},
		{
			Protocol: SCALLOP,
			Topics:   []string{scallopVeScaPackage + "::ve_sca::VeScaMintedEvent"},
			Decode:   d.scallopVeStake,
		},
	}
}

func (d *Deps) scallopSpoolStake(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload scallopSpoolStake
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	token := payload.StakingType.Address()

	stake := d.newStake(event, gas)
	stake.Protocol = SCALLOP
	stake.PoolAddress = payload.SpoolAccountID
	stake.Action = model.ActionAdd
	stake.InputType = model.InputTypeCollateral
	stake.InputToken = token
	stake.InputAmount = d.scale(ctx, token, payload.StakeAmount)
	stake.InputPrice = d.price(ctx, event, token)

	return &Result{Stake: stake}, nil
}

func (d *Deps) scallopSpoolUnstake(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload scallopSpoolStake
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	token := payload.StakingType.Address()

	stake := d.newStake(event, gas)
	stake.Protocol = SCALLOP
	stake.PoolAddress = payload.SpoolAccountID
	stake.Action = model.ActionRemove
	stake.InputType = model.InputTypeCollateral
	stake.OutputToken = token
	stake.OutputAmount = d.scale(ctx, token, payload.UnstakeAmount)
	stake.OutputPrice = d.price(ctx, event, token)

	return &Result{Stake: stake}, nil
}

func (d *Deps) scallopMint(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload scallopMint
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	depositToken := payload.DepositAsset.Address()
	mintToken := payload.MintAsset.Address()

	lending := d.newLending(event, gas)
	lending.Protocol = SCALLOP
	lending.PoolAddress = mintToken
	lending.Action = model.ActionAdd
	lending.InputToken = depositToken
	lending.InputAmount = d.scale(ctx, depositToken, payload.DepositAmount)
	lending.InputPrice = d.price(ctx, event, depositToken)
	lending.OutputToken = mintToken
	lending.OutputAmount = d.scale(ctx, depositToken, payload.MintAmount)

	return &Result{Lending: lending}, nil
}

func (d *Deps) scallopRedeem(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload scallopRedeem
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	burnToken := payload.BurnAsset.Address()
	withdrawToken := payload.WithdrawAsset.Address()

	lending := d.newLending(event, gas)
	lending.Protocol = SCALLOP
	lending.PoolAddress = burnToken
	lending.Action = model.ActionRemove
	lending.InputToken = burnToken
	lending.InputAmount = d.scale(ctx, withdrawToken, payload.BurnAmount)
	lending.OutputToken = withdrawToken
	lending.OutputAmount = d.scale(ctx, withdrawToken, payload.WithdrawAmount)
	lending.OutputPrice = d.price(ctx, event, withdrawToken)

	return &Result{Lending: lending}, nil
}

func (d *Deps) scallopCollateralDeposit(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload scallopCollateral
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	token := payload.DepositAsset.Address()

	lending := d.newLending(event, gas)
	lending.Protocol = SCALLOP
	lending.PoolAddress = payload.Obligation
	lending.Action = model.ActionCollateral
	lending.InputToken = token
	lending.InputAmount = d.scale(ctx, token, payload.DepositAmount)
	lending.InputPrice = d.price(ctx, event, token)

	return &Result{Lending: lending}, nil
}

func (d *Deps) scallopCollateralWithdraw(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload scallopCollateral
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	token := payload.WithdrawAsset.Address()

	lending := d.newLending(event, gas)
	lending.Protocol = SCALLOP
	lending.PoolAddress = payload.Obligation
	lending.Action = model.ActionCollateralWithdraw
	lending.OutputToken = token
	lending.OutputAmount = d.scale(ctx, token, payload.WithdrawAmount)
	lending.OutputPrice = d.price(ctx, event, token)

	return &Result{Lending: lending}, nil
}

// scallopBorrow 借款手续费以SUI计
func (d *Deps) scallopBorrow(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload scallopBorrow
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	token := payload.Asset.Address()

	lending := d.newLending(event, gas)
	lending.Protocol = SCALLOP
	lending.PoolAddress = payload.Obligation
	lending.Action = model.ActionBorrow
	lending.InputToken = model.NATIVE_TOKEN
	lending.InputAmount = d.scale(ctx, model.NATIVE_TOKEN, payload.BorrowFee)
	lending.InputPrice = gas.NativePrice
	lending.OutputToken = token
	lending.OutputAmount = d.scale(ctx, token, payload.Amount)
	lending.OutputPrice = d.price(ctx, event, token)

	return &Result{Lending: lending}, nil
}

func (d *Deps) scallopRepay(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload scallopBorrow
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	token := payload.Asset.Address()

	lending := d.newLending(event, gas)
	lending.Protocol = SCALLOP
	lending.PoolAddress = payload.Obligation
	lending.Action = model.ActionRepay
	lending.InputToken = token
	lending.InputAmount = d.scale(ctx, token, payload.Amount)
	lending.InputPrice = d.price(ctx, event, token)

	return &Result{Lending: lending}, nil
}

func (d *Deps) scallopReward(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload scallopReward
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	token := payload.RewardsType.Address()
	position := payload.SpoolAccountID
	if position == "" {
		position = event.Sender
	}

	lending := d.newLending(event, gas)
	lending.Protocol = SCALLOP
	lending.PoolAddress = position
	lending.Action = model.ActionReward
	lending.OutputToken = token
	lending.OutputAmount = d.scale(ctx, token, payload.Rewards)
	lending.OutputPrice = d.price(ctx, event, token)

	return &Result{Lending: lending}, nil
}

func (d *Deps) scallopVeStake(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
	var payload scallopVeStake
	if err := parsePayload(event, &payload); err != nil {
		return nil, err
	}

	stake := d.newStake(event, gas)
	stake.Protocol = SCALLOP
	stake.PoolAddress = payload.VeScaKey
	stake.Action = model.ActionLock
	stake.InputType = model.InputTypeToken
	stake.InputToken = scaToken
	stake.InputAmount = d.scale(ctx, scaToken, payload.LockedScaAmount)
	stake.InputPrice = d.price(ctx, event, scaToken)

	return &Result{Stake: stake}, nil
}
