package model

import "github.com/shopspring/decimal"

type PositionType string

const (
	PositionAMM     PositionType = "AMM"
	PositionCLMM    PositionType = "CLMM"
	PositionLending PositionType = "Lending"
	PositionBorrow  PositionType = "Borrow"
	PositionStake   PositionType = "Stake"
	PositionVest    PositionType = "Vest"
	PositionFarm    PositionType = "Farm"
	PositionReward  PositionType = "Reward"
)

// TokenState 某一时点的代币数量及其估值
type TokenState struct {
	Token  TokenPrice      `json:"token"`
	Amount decimal.Decimal `json:"amount"`
	Value  decimal.Decimal `json:"value"`
}

// TokenYield 待领取或已累计的收益
type TokenYield struct {
	TokenState
	Claimable bool `json:"claimable"`
}

// ProtocolMeta 协议展示信息
type ProtocolMeta struct {
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
	URL  string `json:"url,omitempty"`
}

// CurrentState 仓位实时状态，CLMM特有字段仅在Type为CLMM时有意义
type CurrentState struct {
	Tokens       []TokenState    `json:"tokens"`
	Yield        []TokenYield    `json:"yield,omitempty"`
	CurrentPrice decimal.Decimal `json:"current_price,omitempty"`
	LowerPrice   decimal.Decimal `json:"lower_price,omitempty"`
	UpperPrice   decimal.Decimal `json:"upper_price,omitempty"`
	InRange      bool            `json:"in_range,omitempty"`
	HealthRate   decimal.Decimal `json:"health_rate,omitempty"`
	EndDate      int64           `json:"end_date,omitempty"` // 锁仓解锁时间，毫秒
}

// Position 钱包维度的仓位聚合结果，按需计算不落库
// Input保留历史成本（按当时价格），Current按实时价格估值
type Position struct {
	PositionID     string          `json:"position_id"`
	Type           PositionType    `json:"type"`
	Owner          string          `json:"owner"`
	Chain          string          `json:"chain"`
	Protocol       ProtocolMeta    `json:"protocol"`
	Input          []TokenState    `json:"input"`
	YieldCollected []TokenState    `json:"yield_collected,omitempty"`
	Current        CurrentState    `json:"current"`
	Fee            decimal.Decimal `json:"fee"`
}

// ProtocolPositions 单协议计算结果，失败时Positions为空并记录错误信息
type ProtocolPositions struct {
	Protocol  string     `json:"protocol"`
	Positions []Position `json:"positions"`
	Error     string     `json:"error,omitempty"`
}
