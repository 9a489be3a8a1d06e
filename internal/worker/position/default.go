package position

import (
	"go.uber.org/zap"

	"sui-smart/internal/worker/dao"
	"sui-smart/internal/worker/repository"
	"sui-smart/internal/worker/service"
)

// NewDefaultEngine 装配全部内置协议计算器
func NewDefaultEngine(tl *zap.Logger, repo repository.Repository, records dao.RecordDAO, prices *service.PriceService) *Engine {
	suiClient := repo.GetSuiClient()
	loader := NewContextLoader(tl, repo.GetMainRDB(), suiClient)

	calculators := []Calculator{
		NewCetusCalculator(tl, suiClient, records, prices),
		NewKriyaCalculator(tl, suiClient, records, prices),
		NewNaviCalculator(tl, suiClient, records, prices),
		NewNativeStakeCalculator(tl, suiClient, records, prices),
		NewScallopVestCalculator(tl, suiClient, records, prices),
	}
	return NewEngine(tl, loader, calculators)
}
