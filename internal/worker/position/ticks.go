package position

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// CLMM价格刻度换算，价格按 1.0001^tick 定义，链上sqrt价格为X64定点数

var twoPow64 = new(big.Float).SetFloat64(math.Pow(2, 64))

// TickIndexToSqrtPriceX64 刻度对应的sqrt价格（X64定点）
func TickIndexToSqrtPriceX64(tick int32) *big.Int {
	sqrtPrice := math.Pow(1.0001, float64(tick)/2)
	f := new(big.Float).Mul(new(big.Float).SetFloat64(sqrtPrice), twoPow64)
	out, _ := f.Int(nil)
	return out
}

// TickIndexToPrice 刻度对应的tokenB/tokenA价格，按双方精度归一
func TickIndexToPrice(tick int32, decimalsA, decimalsB int32) decimal.Decimal {
	price := math.Pow(1.0001, float64(tick)) * math.Pow(10, float64(decimalsA-decimalsB))
	if math.IsInf(price, 0) || math.IsNaN(price) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(price)
}

// CoinAmountsFromLiquidity 按当前sqrt价格把流动性折算回两种代币的原始数量
func CoinAmountsFromLiquidity(liquidity, curSqrtPrice, lowerSqrtPrice, upperSqrtPrice *big.Int) (*big.Int, *big.Int) {
	if liquidity == nil || liquidity.Sign() == 0 {
		return big.NewInt(0), big.NewInt(0)
	}

	amountA := big.NewInt(0)
	amountB := big.NewInt(0)

	switch {
	case curSqrtPrice.Cmp(lowerSqrtPrice) < 0:
		// 价格在区间下方，仓位全是tokenA
		amountA = amountAFromLiquidity(liquidity, lowerSqrtPrice, upperSqrtPrice)
	case curSqrtPrice.Cmp(upperSqrtPrice) >= 0:
		// 价格在区间上方，仓位全是tokenB
		amountB = amountBFromLiquidity(liquidity, lowerSqrtPrice, upperSqrtPrice)
	default:
		amountA = amountAFromLiquidity(liquidity, curSqrtPrice, upperSqrtPrice)
		amountB = amountBFromLiquidity(liquidity, lowerSqrtPrice, curSqrtPrice)
	}

	return amountA, amountB
}

// amountA = L << 64 * (upper - lower) / (upper * lower)
func amountAFromLiquidity(liquidity, lowerSqrtPrice, upperSqrtPrice *big.Int) *big.Int {
	num := new(big.Int).Lsh(liquidity, 64)
	num.Mul(num, new(big.Int).Sub(upperSqrtPrice, lowerSqrtPrice))
	den := new(big.Int).Mul(upperSqrtPrice, lowerSqrtPrice)
	if den.Sign() == 0 {
		return big.NewInt(0)
	}
	return num.Div(num, den)
}

// amountB = L * (upper - lower) >> 64
func amountBFromLiquidity(liquidity, lowerSqrtPrice, upperSqrtPrice *big.Int) *big.Int {
	num := new(big.Int).Mul(liquidity, new(big.Int).Sub(upperSqrtPrice, lowerSqrtPrice))
	return num.Rsh(num, 64)
}
