package position

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sui-smart/internal/worker/model"
	"sui-smart/pkg/sui"
)

func TestTickIndexToSqrtPriceX64(t *testing.T) {
	// tick 0 价格为1，sqrt价格正好是2^64
	one := new(big.Int).Lsh(big.NewInt(1), 64)
	assert.Equal(t, 0, TickIndexToSqrtPriceX64(0).Cmp(one))

	// 单调递增
	assert.True(t, TickIndexToSqrtPriceX64(100).Cmp(TickIndexToSqrtPriceX64(0)) > 0)
	assert.True(t, TickIndexToSqrtPriceX64(-100).Cmp(TickIndexToSqrtPriceX64(0)) < 0)
}

func TestTickIndexToPrice(t *testing.T) {
	// 同精度下tick 0价格为1
	price := TickIndexToPrice(0, 9, 9)
	assert.True(t, price.Equal(decimal.NewFromInt(1)))

	// 精度差按10的幂折算
	price = TickIndexToPrice(0, 9, 6)
	assert.True(t, price.Equal(decimal.NewFromInt(1000)))

	// 正tick价格大于1
	assert.True(t, TickIndexToPrice(1000, 9, 9).GreaterThan(decimal.NewFromInt(1)))
}

func TestCoinAmountsFromLiquidity(t *testing.T) {
	liquidity := big.NewInt(1_000_000_000)
	lower := TickIndexToSqrtPriceX64(-1000)
	upper := TickIndexToSqrtPriceX64(1000)

	// 区间内两侧都有
	cur := TickIndexToSqrtPriceX64(0)
	amountA, amountB := CoinAmountsFromLiquidity(liquidity, cur, lower, upper)
	assert.True(t, amountA.Sign() > 0)
	assert.True(t, amountB.Sign() > 0)

	// 价格在区间下方，全是tokenA
	cur = TickIndexToSqrtPriceX64(-2000)
	amountA, amountB = CoinAmountsFromLiquidity(liquidity, cur, lower, upper)
	assert.True(t, amountA.Sign() > 0)
	assert.Equal(t, 0, amountB.Sign())

	// 价格在区间上方，全是tokenB
	cur = TickIndexToSqrtPriceX64(2000)
	amountA, amountB = CoinAmountsFromLiquidity(liquidity, cur, lower, upper)
	assert.Equal(t, 0, amountA.Sign())
	assert.True(t, amountB.Sign() > 0)

	// 零流动性
	amountA, amountB = CoinAmountsFromLiquidity(big.NewInt(0), cur, lower, upper)
	assert.Equal(t, 0, amountA.Sign())
	assert.Equal(t, 0, amountB.Sign())
}

func TestNetInput(t *testing.T) {
	rows := []model.LiquidityChange{
		{Action: model.ActionAdd, AmountA: decimal.NewFromInt(10), PriceA: decimal.NewFromInt(2), AmountB: decimal.NewFromInt(100), PriceB: decimal.NewFromInt(1)},
		{Action: model.ActionAdd, AmountA: decimal.NewFromInt(5), PriceA: decimal.NewFromInt(4), AmountB: decimal.NewFromInt(50), PriceB: decimal.NewFromInt(1)},
		{Action: model.ActionRemove, AmountA: decimal.NewFromInt(3), PriceA: decimal.NewFromInt(4), AmountB: decimal.NewFromInt(30), PriceB: decimal.NewFromInt(1)},
		{Action: model.ActionFee, AmountA: decimal.NewFromInt(1), PriceA: decimal.NewFromInt(4)},
	}

	a, b := netInput(rows)
	// 10+5-3，Fee行不参与
	assert.True(t, a.amount.Equal(decimal.NewFromInt(12)))
	// 10*2+5*4-3*4
	assert.True(t, a.value.Equal(decimal.NewFromInt(28)))
	assert.True(t, b.amount.Equal(decimal.NewFromInt(120)))

	feeA, _ := collectedFees(rows)
	assert.True(t, feeA.amount.Equal(decimal.NewFromInt(1)))
	assert.True(t, feeA.value.Equal(decimal.NewFromInt(4)))
}

func TestObjectsByTypePrefix(t *testing.T) {
	suiCtx := &SuiContext{
		OwnedObjects: []sui.SuiObject{
			{ObjectID: "0x1", Type: kriyaLPType + "<0x2::sui::SUI, 0xa::usdc::USDC>"},
			{ObjectID: "0x2", Type: "0xdead::other::Thing"},
			{ObjectID: "0x3", Content: &sui.ObjectContent{Type: kriyaLPType + "<0xb::x::X, 0xc::y::Y>"}},
		},
	}

	matched := suiCtx.ObjectsByTypePrefix(kriyaLPType)
	require.Len(t, matched, 2)
	assert.Equal(t, "0x1", matched[0].ObjectID)
	assert.Equal(t, "0x3", matched[1].ObjectID)
}
