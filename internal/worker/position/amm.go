package position

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sui-smart/internal/worker/dao"
	"sui-smart/internal/worker/model"
	"sui-smart/internal/worker/service"
	"sui-smart/pkg/sui"
	"sui-smart/pkg/utils"
)

const (
	kriyaProtocol   = "KRIYA"
	kriyaLPType     = "0xa0eba10b173538c8fecca1dff298e488402cc9ff374f8a12ca7758eebe830b66::spot_dex::KriyaLPToken"
	lpTokenDecimals = 9
)

// KriyaCalculator AMM仓位：LP份额占比折算底层两种代币
type KriyaCalculator struct {
	tl        *zap.Logger
	suiClient *sui.Client
	records   dao.RecordDAO
	prices    *service.PriceService
}

func NewKriyaCalculator(tl *zap.Logger, suiClient *sui.Client, records dao.RecordDAO, prices *service.PriceService) *KriyaCalculator {
	return &KriyaCalculator{tl: tl, suiClient: suiClient, records: records, prices: prices}
}

func (c *KriyaCalculator) Protocol() string {
	return kriyaProtocol
}

func (c *KriyaCalculator) Positions(ctx context.Context, owner string, suiCtx *SuiContext) ([]model.Position, error) {
	lpHoldings := suiCtx.ObjectsByTypePrefix(kriyaLPType)
	if len(lpHoldings) == 0 {
		return nil, nil
	}

	changes, err := c.records.LiquidityByOwner(ctx, owner, kriyaProtocol)
	if err != nil {
		return nil, err
	}
	changesByPool := make(map[string][]model.LiquidityChange)
	for _, change := range changes {
		changesByPool[change.PositionID] = append(changesByPool[change.PositionID], change)
	}

	// 同一个池子的LP token可能拆成多个对象，份额按池子累加
	type lpGroup struct {
		lpType string
		shares decimal.Decimal
	}
	byPool := make(map[string]*lpGroup)
	for _, obj := range lpHoldings {
		if obj.Content == nil {
			continue
		}
		poolID := sui.FieldString(obj.Content.Fields, "pool_id")
		if poolID == "" {
			continue
		}
		share := utils.Scale(sui.FieldString(obj.Content.Fields, "lsp", "balance"), lpTokenDecimals)
		group, ok := byPool[poolID]
		if !ok {
			group = &lpGroup{lpType: obj.Content.Type}
			byPool[poolID] = group
		}
		group.shares = group.shares.Add(share)
	}

	nowMs := time.Now().UnixMilli()
	positions := make([]model.Position, 0, len(byPool))
	for poolID, group := range byPool {
		poolObj, err := c.suiClient.GetObject(ctx, poolID)
		if err != nil || poolObj == nil || poolObj.Content == nil {
			c.tl.Warn("❌ fetch pool failed", zap.String("pool", poolID), zap.Error(err))
			continue
		}

		tokenA, tokenB := utils.ParsePoolTokens(group.lpType)
		priceA := c.prices.GetPrice(ctx, utils.NormalizeAddress(tokenA), nowMs)
		priceB := c.prices.GetPrice(ctx, utils.NormalizeAddress(tokenB), nowMs)

		poolSupply := utils.Scale(sui.FieldString(poolObj.Content.Fields, "lsp_supply", "value"), lpTokenDecimals)
		if !poolSupply.IsPositive() {
			continue
		}
		poolShare := group.shares.Div(poolSupply)

		reserveA := utils.Scale(sui.FieldString(poolObj.Content.Fields, "token_x"), priceDecimals(priceA))
		reserveB := utils.Scale(sui.FieldString(poolObj.Content.Fields, "token_y"), priceDecimals(priceB))

		rows := changesByPool[poolID]
		inputA, inputB := netInput(rows)

		positions = append(positions, model.Position{
			PositionID: poolID,
			Type:       model.PositionAMM,
			Owner:      owner,
			Chain:      model.CHAIN,
			Protocol:   model.ProtocolMeta{Name: kriyaProtocol},
			Input: []model.TokenState{
				tokenStateFrom(priceA, inputA.amount, inputA.value),
				tokenStateFrom(priceB, inputB.amount, inputB.value),
			},
			Current: model.CurrentState{
				Tokens: []model.TokenState{
					tokenStateScaled(priceA, poolShare.Mul(reserveA)),
					tokenStateScaled(priceB, poolShare.Mul(reserveB)),
				},
			},
			Fee: sumFees(rows),
		})
	}

	return positions, nil
}
