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
	scallopProtocol  = "SCALLOP"
	scaTokenAddress  = "0x7016aae72cfc67f2fadf55769c0a7dd54291a583b63051a5ed71081cce836ac6::sca::SCA"
	veScaKeyType     = "0xcfe2d87aa5712b67cad2732edb6a2201bfdf592377e5c0968b7cb02099bd8e21::ve_sca::VeScaKey"
	veScaTreasuryTab = "0x0a0b7f749baeb61e3dfee2b42245e32d0e6b484063f0a536b33e771d573d7246"
	scaDecimals      = 9
)

// ScallopVestCalculator veSCA锁仓：key对象指向treasury表里的锁仓明细
type ScallopVestCalculator struct {
	tl        *zap.Logger
	suiClient *sui.Client
	records   dao.RecordDAO
	prices    *service.PriceService
}

func NewScallopVestCalculator(tl *zap.Logger, suiClient *sui.Client, records dao.RecordDAO, prices *service.PriceService) *ScallopVestCalculator {
	return &ScallopVestCalculator{tl: tl, suiClient: suiClient, records: records, prices: prices}
}

func (c *ScallopVestCalculator) Protocol() string {
	return scallopProtocol
}

func (c *ScallopVestCalculator) Positions(ctx context.Context, owner string, suiCtx *SuiContext) ([]model.Position, error) {
	keys := suiCtx.ObjectsByTypePrefix(veScaKeyType)
	if len(keys) == 0 {
		return nil, nil
	}

	history, err := c.records.StakeByOwner(ctx, owner, scallopProtocol)
	if err != nil {
		return nil, err
	}
	historyByPosition := make(map[string][]model.StakeAction)
	for _, row := range history {
		if row.Action == model.ActionLock {
			historyByPosition[row.PoolAddress] = append(historyByPosition[row.PoolAddress], row)
		}
	}

	scaPrice := c.prices.GetPrice(ctx, scaTokenAddress, time.Now().UnixMilli())

	var positions []model.Position
	for _, key := range keys {
		entry, err := c.suiClient.GetDynamicFieldObject(ctx, veScaTreasuryTab, "0x2::object::ID", key.ObjectID)
		if err != nil || entry == nil || entry.Content == nil {
			c.tl.Warn("❌ fetch veSCA entry failed", zap.String("key", key.ObjectID), zap.Error(err))
			continue
		}
		fields := entry.Content.Fields

		locked := utils.Scale(sui.FieldString(fields, "value", "locked_sca_amount"), scaDecimals)
		unlockAt := fieldInt(fields, "value", "unlock_at") * 1000

		rows := historyByPosition[key.ObjectID]
		var input amountValue
		fee := decimal.Zero
		for _, row := range rows {
			input.add(row.InputAmount, row.InputPrice)
			fee = fee.Add(row.Fee)
		}

		positions = append(positions, model.Position{
			PositionID: key.ObjectID,
			Type:       model.PositionVest,
			Owner:      owner,
			Chain:      model.CHAIN,
			Protocol:   model.ProtocolMeta{Name: scallopProtocol},
			Input:      []model.TokenState{tokenStateFrom(scaPrice, input.amount, input.value)},
			Current: model.CurrentState{
				Tokens:  []model.TokenState{tokenStateScaled(scaPrice, locked)},
				EndDate: unlockAt,
			},
			Fee: fee,
		})
	}

	return positions, nil
}
