package position

import (
	"context"
	"math/big"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sui-smart/internal/worker/dao"
	"sui-smart/internal/worker/model"
	"sui-smart/internal/worker/service"
	"sui-smart/pkg/sui"
	"sui-smart/pkg/utils"
)

const (
	naviProtocol = "NAVI"

	// storage对象的reserves动态字段表
	naviReserveParentID = "0xe6d4c6610b86ce7735ea754596d71d72d10c7980b5052fc3c8cdf8d09fea9b4b"

	// 预留的储备槽位数，实际在用的少于这个数
	naviReserveSlots = 25

	// 利率指数为1e27精度，乘上1e9的余额后整体除1e36
	naviIndexDecimals = 36
)

type naviReserve struct {
	coinType    string
	supplyTable string
	borrowTable string
	supplyIndex string
	borrowIndex string
}

// NaviCalculator 借贷仓位：用户份额乘以利率指数得到当前本息
type NaviCalculator struct {
	tl        *zap.Logger
	suiClient *sui.Client
	records   dao.RecordDAO
	prices    *service.PriceService
	reserves  *cache.Cache
}

func NewNaviCalculator(tl *zap.Logger, suiClient *sui.Client, records dao.RecordDAO, prices *service.PriceService) *NaviCalculator {
	return &NaviCalculator{
		tl:        tl,
		suiClient: suiClient,
		records:   records,
		prices:    prices,
		reserves:  cache.New(15*time.Minute, 30*time.Minute),
	}
}

func (c *NaviCalculator) Protocol() string {
	return naviProtocol
}

// loadReserves 全量储备配置，15分钟缓存
func (c *NaviCalculator) loadReserves(ctx context.Context) []naviReserve {
	if cached, ok := c.reserves.Get("reserves"); ok {
		return cached.([]naviReserve)
	}

	var reserves []naviReserve
	for index := 0; index < naviReserveSlots; index++ {
		obj, err := c.suiClient.GetDynamicFieldObject(ctx, naviReserveParentID, "u8", index)
		if err != nil || obj == nil || obj.Content == nil {
			continue
		}
		fields := obj.Content.Fields
		reserves = append(reserves, naviReserve{
			coinType:    utils.NormalizeAddress("0x" + sui.FieldString(fields, "value", "coin_type")),
			supplyTable: sui.FieldString(fields, "value", "supply_balance", "user_state", "id", "id"),
			borrowTable: sui.FieldString(fields, "value", "borrow_balance", "user_state", "id", "id"),
			supplyIndex: sui.FieldString(fields, "value", "current_supply_index"),
			borrowIndex: sui.FieldString(fields, "value", "current_borrow_index"),
		})
	}

	c.reserves.Set("reserves", reserves, cache.DefaultExpiration)
	return reserves
}

// userBalance 从储备的用户表读余额份额，乘利率指数折回当前数量
func (c *NaviCalculator) userBalance(ctx context.Context, tableID, owner, index string) decimal.Decimal {
	if tableID == "" {
		return decimal.Zero
	}
	obj, err := c.suiClient.GetDynamicFieldObject(ctx, tableID, "address", owner)
	if err != nil || obj == nil || obj.Content == nil {
		return decimal.Zero
	}

	share, ok := new(big.Int).SetString(sui.FieldString(obj.Content.Fields, "value"), 10)
	if !ok || share.Sign() == 0 {
		return decimal.Zero
	}
	rate, ok := new(big.Int).SetString(index, 10)
	if !ok {
		return decimal.Zero
	}

	return utils.ScaleBig(new(big.Int).Mul(share, rate), naviIndexDecimals)
}

func (c *NaviCalculator) Positions(ctx context.Context, owner string, suiCtx *SuiContext) ([]model.Position, error) {
	actions, err := c.records.LendingByOwner(ctx, owner, naviProtocol)
	if err != nil {
		return nil, err
	}

	nowMs := time.Now().UnixMilli()

	var lendings []model.Position
	var borrows []model.Position
	var lendingTokens []model.TokenState
	lendingFee := decimal.Zero

	for _, reserve := range c.loadReserves(ctx) {
		tokenPrice := c.prices.GetPrice(ctx, reserve.coinType, nowMs)

		if supplied := c.userBalance(ctx, reserve.supplyTable, owner, reserve.supplyIndex); supplied.IsPositive() {
			rows := filterLending(actions, reserve.coinType, model.ActionAdd, model.ActionRemove)
			input, fee := netLendingInput(rows)
			current := tokenStateScaled(tokenPrice, supplied)
			lendingTokens = append(lendingTokens, current)
			lendingFee = lendingFee.Add(fee)

			lendings = append(lendings, model.Position{
				PositionID: reserve.coinType,
				Type:       model.PositionLending,
				Owner:      owner,
				Chain:      model.CHAIN,
				Protocol:   model.ProtocolMeta{Name: naviProtocol},
				Input:      []model.TokenState{tokenStateFrom(tokenPrice, input.amount, input.value)},
				Current:    model.CurrentState{Tokens: []model.TokenState{current}},
				Fee:        fee,
			})
		}

		if borrowed := c.userBalance(ctx, reserve.borrowTable, owner, reserve.borrowIndex); borrowed.IsPositive() {
			rows := filterLending(actions, reserve.coinType, model.ActionBorrow, model.ActionRepay)
			_, fee := netLendingInput(rows)

			borrows = append(borrows, model.Position{
				PositionID: reserve.coinType,
				Type:       model.PositionBorrow,
				Owner:      owner,
				Chain:      model.CHAIN,
				Protocol:   model.ProtocolMeta{Name: naviProtocol},
				Current:    model.CurrentState{Tokens: []model.TokenState{tokenStateScaled(tokenPrice, borrowed)}},
				Fee:        fee,
			})
		}
	}

	// 有借款时把存款侧并进借款仓位作抵押展示
	if len(borrows) > 0 {
		for i := range borrows {
			borrows[i].Input = lendingTokens
			borrows[i].Fee = borrows[i].Fee.Add(lendingFee)
		}
		return borrows, nil
	}

	return lendings, nil
}

func filterLending(actions []model.LendingAction, poolAddress string, wanted ...string) []model.LendingAction {
	var rows []model.LendingAction
	for _, action := range actions {
		if action.PoolAddress != poolAddress {
			continue
		}
		for _, w := range wanted {
			if action.Action == w {
				rows = append(rows, action)
				break
			}
		}
	}
	return rows
}

// netLendingInput 输入侧减输出侧的净投入，和gas费合计
func netLendingInput(rows []model.LendingAction) (amountValue, decimal.Decimal) {
	var net amountValue
	fee := decimal.Zero
	for _, row := range rows {
		net.add(row.InputAmount, row.InputPrice)
		net.sub(row.OutputAmount, row.OutputPrice)
		fee = fee.Add(row.Fee)
	}
	return net, fee
}
