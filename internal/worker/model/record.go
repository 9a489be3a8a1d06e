package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 记录动作常量，入库后不可变
const (
	ActionAdd                = "Add"
	ActionRemove             = "Remove"
	ActionMint               = "Mint"
	ActionClose              = "Close"
	ActionFee                = "Fee"
	ActionBorrow             = "Borrow"
	ActionRepay              = "Repay"
	ActionCollateral         = "Collateral"
	ActionCollateralWithdraw = "CollateralWithdraw"
	ActionReward             = "Reward"
	ActionStake              = "Stake"
	ActionUnstake            = "Unstake"
	ActionLock               = "Lock"
)

// 质押记录的输入类型
const (
	InputTypeToken      = "Token"
	InputTypeLP         = "LP"
	InputTypeCollateral = "Collateral"
	InputTypeClaim      = "Claim"
	InputTypeStake      = "Stake"
)

// Trade swap成交记录
type Trade struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TxHash      string          `gorm:"type:varchar(128);not null;uniqueIndex:uk_trade_tx_log,priority:1" json:"tx_hash"`
	LogIndex    int64           `gorm:"not null;uniqueIndex:uk_trade_tx_log,priority:2" json:"log_index"`
	Chain       string          `gorm:"type:varchar(16);not null" json:"chain"`
	Protocol    string          `gorm:"type:varchar(64);not null" json:"protocol"`
	Owner       string          `gorm:"type:varchar(256);not null;index:idx_trade_owner" json:"owner"`
	PoolAddress string          `gorm:"type:varchar(256);index:idx_trade_pool" json:"pool_address"`
	FromToken   string          `gorm:"type:varchar(256);not null;index:idx_trade_from_token" json:"from_token"`
	FromAmount  decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"from_amount"`
	ToToken     string          `gorm:"type:varchar(256);not null;index:idx_trade_to_token" json:"to_token"`
	ToAmount    decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"to_amount"`
	Quantity    decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"quantity"`
	AmountUsd   decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"amount_usd"`
	Fee         decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"fee"`
	NativePrice decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"native_price"`
	Block       int64           `gorm:"not null;index:idx_trade_block" json:"block"`
	Timestamp   int64           `gorm:"not null;index:idx_trade_ts" json:"timestamp"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Trade) TableName() string {
	return "trades"
}

// LiquidityChange AMM/CLMM流动性变更记录，tick区间仅CLMM有值
type LiquidityChange struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TxHash       string          `gorm:"type:varchar(128);not null;uniqueIndex:uk_liq_tx_log,priority:1" json:"tx_hash"`
	LogIndex     int64           `gorm:"not null;uniqueIndex:uk_liq_tx_log,priority:2" json:"log_index"`
	Chain        string          `gorm:"type:varchar(16);not null" json:"chain"`
	Protocol     string          `gorm:"type:varchar(64);not null;index:idx_liq_protocol" json:"protocol"`
	Owner        string          `gorm:"type:varchar(256);not null;index:idx_liq_owner" json:"owner"`
	PoolAddress  string          `gorm:"type:varchar(256);index:idx_liq_pool" json:"pool_address"`
	PositionID   string          `gorm:"type:varchar(256);index:idx_liq_position" json:"position_id"`
	Action       string          `gorm:"type:varchar(32);not null" json:"action"`
	TokenA       string          `gorm:"type:varchar(256)" json:"token_a"`
	AmountA      decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"amount_a"`
	PriceA       decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"price_a"`
	TokenB       string          `gorm:"type:varchar(256)" json:"token_b"`
	AmountB      decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"amount_b"`
	PriceB       decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"price_b"`
	TickLower    int32           `json:"tick_lower"`
	TickUpper    int32           `json:"tick_upper"`
	Fee          decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"fee"`
	NativePrice  decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"native_price"`
	Block        int64           `gorm:"not null" json:"block"`
	Timestamp    int64           `gorm:"not null;index:idx_liq_ts" json:"timestamp"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (LiquidityChange) TableName() string {
	return "defi_liquidity"
}

// LendingAction 借贷市场动作记录
type LendingAction struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TxHash       string          `gorm:"type:varchar(128);not null;uniqueIndex:uk_lend_tx_log,priority:1" json:"tx_hash"`
	LogIndex     int64           `gorm:"not null;uniqueIndex:uk_lend_tx_log,priority:2" json:"log_index"`
	Chain        string          `gorm:"type:varchar(16);not null" json:"chain"`
	Protocol     string          `gorm:"type:varchar(64);not null;index:idx_lend_protocol" json:"protocol"`
	Owner        string          `gorm:"type:varchar(256);not null;index:idx_lend_owner" json:"owner"`
	PoolAddress  string          `gorm:"type:varchar(256)" json:"pool_address"`
	Action       string          `gorm:"type:varchar(32);not null" json:"action"`
	InputToken   string          `gorm:"type:varchar(256)" json:"input_token"`
	InputAmount  decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"input_amount"`
	InputPrice   decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"input_price"`
	OutputToken  string          `gorm:"type:varchar(256)" json:"output_token"`
	OutputAmount decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"output_amount"`
	OutputPrice  decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"output_price"`
	Fee          decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"fee"`
	NativePrice  decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"native_price"`
	Block        int64           `gorm:"not null" json:"block"`
	Timestamp    int64           `gorm:"not null;index:idx_lend_ts" json:"timestamp"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (LendingAction) TableName() string {
	return "defi_lending"
}

// StakeAction 质押/锁仓动作记录
type StakeAction struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TxHash       string          `gorm:"type:varchar(128);not null;uniqueIndex:uk_stake_tx_log,priority:1" json:"tx_hash"`
	LogIndex     int64           `gorm:"not null;uniqueIndex:uk_stake_tx_log,priority:2" json:"log_index"`
	Chain        string          `gorm:"type:varchar(16);not null" json:"chain"`
	Protocol     string          `gorm:"type:varchar(64);not null;index:idx_stake_protocol" json:"protocol"`
	Owner        string          `gorm:"type:varchar(256);not null;index:idx_stake_owner" json:"owner"`
	PoolAddress  string          `gorm:"type:varchar(256)" json:"pool_address"`
	Action       string          `gorm:"type:varchar(32);not null" json:"action"`
	InputType    string          `gorm:"type:varchar(32);not null" json:"input_type"`
	InputToken   string          `gorm:"type:varchar(256)" json:"input_token"`
	InputAmount  decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"input_amount"`
	InputPrice   decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"input_price"`
	OutputToken  string          `gorm:"type:varchar(256)" json:"output_token"`
	OutputAmount decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"output_amount"`
	OutputPrice  decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"output_price"`
	Fee          decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"fee"`
	NativePrice  decimal.Decimal `gorm:"type:decimal(65,18);not null" json:"native_price"`
	Block        int64           `gorm:"not null" json:"block"`
	Timestamp    int64           `gorm:"not null;index:idx_stake_ts" json:"timestamp"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (StakeAction) TableName() string {
	return "defi_stake"
}
