package position

import (
	"context"
	"math/big"
	"time"

	"go.uber.org/zap"

	"sui-smart/internal/worker/dao"
	"sui-smart/internal/worker/model"
	"sui-smart/internal/worker/service"
	"sui-smart/pkg/sui"
	"sui-smart/pkg/utils"
)

const (
	cetusProtocol     = "CETUS"
	cetusPositionType = "0x1eabed72c53feb3805120a081dc15963c204dc8d091542592abaf7a35689b2fb::position::Position"
)

// CetusCalculator CLMM仓位：链上仓位对象给实时状态，历史记录给成本
type CetusCalculator struct {
	tl        *zap.Logger
	suiClient *sui.Client
	records   dao.RecordDAO
	prices    *service.PriceService
}

func NewCetusCalculator(tl *zap.Logger, suiClient *sui.Client, records dao.RecordDAO, prices *service.PriceService) *CetusCalculator {
	return &CetusCalculator{tl: tl, suiClient: suiClient, records: records, prices: prices}
}

func (c *CetusCalculator) Protocol() string {
	return cetusProtocol
}

func (c *CetusCalculator) Positions(ctx context.Context, owner string, suiCtx *SuiContext) ([]model.Position, error) {
	held := suiCtx.ObjectsByTypePrefix(cetusPositionType)
	if len(held) == 0 {
		return nil, nil
	}

	changes, err := c.records.LiquidityByOwner(ctx, owner, cetusProtocol)
	if err != nil {
		return nil, err
	}
	changesByPosition := make(map[string][]model.LiquidityChange)
	for _, change := range changes {
		changesByPosition[change.PositionID] = append(changesByPosition[change.PositionID], change)
	}

	nowMs := time.Now().UnixMilli()
	positions := make([]model.Position, 0, len(held))
	for _, obj := range held {
		if obj.Content == nil {
			continue
		}
		fields := obj.Content.Fields

		poolID := sui.FieldString(fields, "pool")
		liquidity, _ := new(big.Int).SetString(sui.FieldString(fields, "liquidity"), 10)
		tickLower := int32(fieldInt(fields, "tick_lower_index", "bits"))
		tickUpper := int32(fieldInt(fields, "tick_upper_index", "bits"))
		tokenA := utils.NormalizeAddress("0x" + sui.FieldString(fields, "coin_type_a", "name"))
		tokenB := utils.NormalizeAddress("0x" + sui.FieldString(fields, "coin_type_b", "name"))

		poolObj, err := c.suiClient.GetObject(ctx, poolID)
		if err != nil || poolObj == nil || poolObj.Content == nil {
			c.tl.Warn("❌ fetch pool failed", zap.String("pool", poolID), zap.Error(err))
			continue
		}
		curSqrtPrice, _ := new(big.Int).SetString(sui.FieldString(poolObj.Content.Fields, "current_sqrt_price"), 10)
		curTick := int32(fieldInt(poolObj.Content.Fields, "current_tick_index", "bits"))

		priceA := c.prices.GetPrice(ctx, tokenA, nowMs)
		priceB := c.prices.GetPrice(ctx, tokenB, nowMs)

		lowerSqrt := TickIndexToSqrtPriceX64(tickLower)
		upperSqrt := TickIndexToSqrtPriceX64(tickUpper)
		if curSqrtPrice == nil {
			curSqrtPrice = big.NewInt(0)
		}
		amountA, amountB := CoinAmountsFromLiquidity(liquidity, curSqrtPrice, lowerSqrt, upperSqrt)

		rows := changesByPosition[obj.ObjectID]
		inputA, inputB := netInput(rows)
		feeA, feeB := collectedFees(rows)

		positions = append(positions, model.Position{
			PositionID: obj.ObjectID,
			Type:       model.PositionCLMM,
			Owner:      owner,
			Chain:      model.CHAIN,
			Protocol:   model.ProtocolMeta{Name: cetusProtocol},
			Input: []model.TokenState{
				tokenStateFrom(priceA, inputA.amount, inputA.value),
				tokenStateFrom(priceB, inputB.amount, inputB.value),
			},
			YieldCollected: []model.TokenState{
				tokenStateFrom(priceA, feeA.amount, feeA.value),
				tokenStateFrom(priceB, feeB.amount, feeB.value),
			},
			Current: model.CurrentState{
				Tokens: []model.TokenState{
					tokenStateRaw(priceA, amountA),
					tokenStateRaw(priceB, amountB),
				},
				CurrentPrice: TickIndexToPrice(curTick, priceDecimals(priceA), priceDecimals(priceB)),
				LowerPrice:   TickIndexToPrice(tickLower, priceDecimals(priceA), priceDecimals(priceB)),
				UpperPrice:   TickIndexToPrice(tickUpper, priceDecimals(priceA), priceDecimals(priceB)),
				InRange:      curSqrtPrice.Cmp(lowerSqrt) >= 0 && curSqrtPrice.Cmp(upperSqrt) <= 0,
			},
			Fee: sumFees(rows),
		})
	}

	return positions, nil
}
