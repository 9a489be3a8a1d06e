package position

import (
	"context"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sui-smart/internal/worker/dao"
	"sui-smart/internal/worker/model"
	"sui-smart/internal/worker/service"
	"sui-smart/pkg/sui"
)

const nativeStakingProtocol = "NATIVE_STAKING"

// NativeStakeCalculator 验证人质押：本金走持仓，预估奖励走未领取收益
type NativeStakeCalculator struct {
	tl        *zap.Logger
	suiClient *sui.Client
	records   dao.RecordDAO
	prices    *service.PriceService
}

func NewNativeStakeCalculator(tl *zap.Logger, suiClient *sui.Client, records dao.RecordDAO, prices *service.PriceService) *NativeStakeCalculator {
	return &NativeStakeCalculator{tl: tl, suiClient: suiClient, records: records, prices: prices}
}

func (c *NativeStakeCalculator) Protocol() string {
	return nativeStakingProtocol
}

func (c *NativeStakeCalculator) Positions(ctx context.Context, owner string, suiCtx *SuiContext) ([]model.Position, error) {
	delegations, err := c.suiClient.GetStakes(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(delegations) == 0 {
		return nil, nil
	}

	history, err := c.records.StakeByOwner(ctx, owner, nativeStakingProtocol)
	if err != nil {
		return nil, err
	}
	historyByValidator := make(map[string][]model.StakeAction)
	for _, row := range history {
		historyByValidator[row.PoolAddress] = append(historyByValidator[row.PoolAddress], row)
	}

	suiPrice := c.prices.GetPrice(ctx, model.NATIVE_TOKEN, time.Now().UnixMilli())

	positions := make([]model.Position, 0, len(delegations))
	for _, delegation := range delegations {
		principal := big.NewInt(0)
		reward := big.NewInt(0)
		for _, entry := range delegation.Stakes {
			if v, ok := new(big.Int).SetString(entry.Principal, 10); ok {
				principal.Add(principal, v)
			}
			if entry.EstimatedReward != "" {
				if v, ok := new(big.Int).SetString(entry.EstimatedReward, 10); ok {
					reward.Add(reward, v)
				}
			}
		}

		rows := historyByValidator[delegation.ValidatorAddress]
		var collected amountValue
		fee := decimal.Zero
		for _, row := range rows {
			switch row.Action {
			case model.ActionAdd:
				collected.add(row.InputAmount, row.InputPrice)
			case model.ActionRemove:
				collected.sub(row.OutputAmount, row.OutputPrice)
			}
			fee = fee.Add(row.Fee)
		}

		principalState := tokenStateRaw(suiPrice, principal)

		positions = append(positions, model.Position{
			PositionID:     delegation.ValidatorAddress,
			Type:           model.PositionStake,
			Owner:          owner,
			Chain:          model.CHAIN,
			Protocol:       model.ProtocolMeta{Name: nativeStakingProtocol},
			Input:          []model.TokenState{principalState},
			YieldCollected: []model.TokenState{tokenStateFrom(suiPrice, collected.amount, collected.value)},
			Current: model.CurrentState{
				Tokens: []model.TokenState{principalState},
				Yield: []model.TokenYield{
					{TokenState: tokenStateRaw(suiPrice, reward), Claimable: false},
				},
			},
			Fee: fee,
		})
	}

	return positions, nil
}
