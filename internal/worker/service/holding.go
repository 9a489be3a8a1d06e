package service

import (
	"context"
	"math/big"
	"sort"

	"go.uber.org/zap"

	"sui-smart/internal/worker/dao"
	"sui-smart/internal/worker/model"
	"sui-smart/pkg/sui"
	"sui-smart/pkg/utils"
)

// HoldingService 钱包持仓查询：代币走余额加行情，NFT按集合类型分组
type HoldingService struct {
	tl        *zap.Logger
	suiClient *sui.Client
	registry  *TokenRegistry
	feeds     dao.PriceFeedDAO
}

func NewHoldingService(tl *zap.Logger, suiClient *sui.Client, registry *TokenRegistry, feeds dao.PriceFeedDAO) *HoldingService {
	return &HoldingService{tl: tl, suiClient: suiClient, registry: registry, feeds: feeds}
}

// TokenHoldings 全部代币持仓，同币种的coin对象合并
func (s *HoldingService) TokenHoldings(ctx context.Context, owner string) ([]model.TokenHolding, error) {
	coins, err := s.suiClient.GetAllCoins(ctx, owner)
	if err != nil {
		return nil, err
	}

	balances := make(map[string]*big.Int)
	for _, coin := range coins {
		address := utils.NormalizeAddress(coin.CoinType)
		v, ok := new(big.Int).SetString(coin.Balance, 10)
		if !ok {
			continue
		}
		if total, exists := balances[address]; exists {
			total.Add(total, v)
		} else {
			balances[address] = v
		}
	}

	holdings := make([]model.TokenHolding, 0, len(balances))
	for address, raw := range balances {
		token, err := s.registry.Get(ctx, address)
		if err != nil {
			s.tl.Warn("❌ resolve token failed", zap.String("token", address), zap.Error(err))
			continue
		}

		balance := utils.ScaleBig(raw, token.Decimals)
		holding := model.TokenHolding{
			Owner:         owner,
			TokenAddress:  address,
			TokenName:     token.Name,
			TokenSymbol:   token.Symbol,
			TokenDecimals: token.Decimals,
			Logo:          token.Logo,
			Balance:       balance,
		}

		if feed, err := s.feeds.LatestBefore(ctx, address, model.CHAIN, 0); err == nil && feed != nil {
			holding.QuoteRate = feed.Price
			holding.Quote = balance.Mul(feed.Price)
		}

		holdings = append(holdings, holding)
	}

	// 估值高的排前面
	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].Quote.GreaterThan(holdings[j].Quote)
	})

	return holdings, nil
}

// NFTHoldings 非coin持有对象按集合类型前缀分组
func (s *HoldingService) NFTHoldings(ctx context.Context, owner string) ([]model.NFTHolding, error) {
	objects, err := s.suiClient.GetOwnedObjects(ctx, owner)
	if err != nil {
		return nil, err
	}

	byCollection := make(map[string][]model.NFTItem)
	for _, obj := range objects {
		objType := obj.Type
		if objType == "" && obj.Content != nil {
			objType = obj.Content.Type
		}
		// 只保留带展示信息的对象，coin和协议内部对象没有display
		if len(obj.Display) == 0 {
			continue
		}

		collection := utils.CollectionType(objType)
		byCollection[collection] = append(byCollection[collection], model.NFTItem{
			ObjectID:    obj.ObjectID,
			Type:        objType,
			Name:        obj.Display["name"],
			Description: obj.Display["description"],
			ImageURL:    obj.Display["image_url"],
		})
	}

	holdings := make([]model.NFTHolding, 0, len(byCollection))
	for collection, items := range byCollection {
		holdings = append(holdings, model.NFTHolding{
			Owner:      owner,
			Collection: collection,
			TotalItems: len(items),
			Tokens:     items,
		})
	}

	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].Collection < holdings[j].Collection
	})

	return holdings, nil
}
