package position

import (
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"

	"sui-smart/internal/worker/model"
	"sui-smart/pkg/sui"
	"sui-smart/pkg/utils"
)

type amountValue struct {
	amount decimal.Decimal
	value  decimal.Decimal
}

func (a *amountValue) add(amount, price decimal.Decimal) {
	a.amount = a.amount.Add(amount)
	a.value = a.value.Add(amount.Mul(price))
}

func (a *amountValue) sub(amount, price decimal.Decimal) {
	a.amount = a.amount.Sub(amount)
	a.value = a.value.Sub(amount.Mul(price))
}

// netInput 历史净投入：加仓减去撤仓，按当时价格计值
func netInput(rows []model.LiquidityChange) (amountValue, amountValue) {
	var a, b amountValue
	for _, row := range rows {
		switch row.Action {
		case model.ActionAdd:
			a.add(row.AmountA, row.PriceA)
			b.add(row.AmountB, row.PriceB)
		case model.ActionRemove:
			a.sub(row.AmountA, row.PriceA)
			b.sub(row.AmountB, row.PriceB)
		}
	}
	return a, b
}

// collectedFees 已领取的手续费收益
func collectedFees(rows []model.LiquidityChange) (amountValue, amountValue) {
	var a, b amountValue
	for _, row := range rows {
		if row.Action != model.ActionFee {
			continue
		}
		a.add(row.AmountA, row.PriceA)
		b.add(row.AmountB, row.PriceB)
	}
	return a, b
}

func sumFees(rows []model.LiquidityChange) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Fee)
	}
	return total
}

func priceDecimals(price model.TokenPrice) int32 {
	if price.Decimals <= 0 {
		return 9
	}
	return price.Decimals
}

// tokenStateFrom 用已算好的数量和估值组装
func tokenStateFrom(price model.TokenPrice, amount, value decimal.Decimal) model.TokenState {
	return model.TokenState{Token: price, Amount: amount, Value: value}
}

// tokenStateRaw 原始整数数量按精度换算后以实时价格估值
func tokenStateRaw(price model.TokenPrice, raw *big.Int) model.TokenState {
	amount := utils.ScaleBig(raw, priceDecimals(price))
	return model.TokenState{Token: price, Amount: amount, Value: amount.Mul(price.Price)}
}

// tokenStateScaled 已按精度换算的数量以实时价格估值
func tokenStateScaled(price model.TokenPrice, amount decimal.Decimal) model.TokenState {
	return model.TokenState{Token: price, Amount: amount, Value: amount.Mul(price.Price)}
}

// fieldInt 读取Move对象里的整数字段，带符号字符串也能解析
func fieldInt(fields map[string]interface{}, path ...string) int64 {
	raw := sui.FieldString(fields, path...)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
