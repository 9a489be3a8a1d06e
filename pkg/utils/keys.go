package utils

import "fmt"

// 缓存key统一在这里维护，避免各处拼接不一致

func TokenKey(chain, address string) string {
	return fmt.Sprintf("token:%s:%s", chain, address)
}

func PoolKey(chain, pool string) string {
	return fmt.Sprintf("pool:%s:%s", chain, pool)
}

func OwnedObjKey(owner string) string {
	return fmt.Sprintf("sui:obj:%s", owner)
}

func BalancesKey(owner string) string {
	return fmt.Sprintf("sui:holding:%s", owner)
}
