package utils

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var poolTypeRe = regexp.MustCompile(`<(.*), (.*)>`)

// Scale 将链上原始整数金额按代币精度转换为十进制数值
// 原始值可能超过 uint64 范围，必须走大整数路径，禁止浮点
func Scale(raw string, decimals int32) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}

	if v, ok := new(big.Int).SetString(raw, 10); ok {
		if decimals == 0 {
			return decimal.NewFromBigInt(v, 0)
		}
		return decimal.NewFromBigInt(v, -decimals)
	}

	// 非法输入兜底：尽量按数值解析，失败返回0，不向上抛错
	if v, err := decimal.NewFromString(raw); err == nil {
		if decimals == 0 {
			return v
		}
		return v.Shift(-decimals)
	}
	return decimal.Zero
}

// ScaleBig 大整数版本，lending index 计算会用到 2^256 级别的乘积
func ScaleBig(raw *big.Int, decimals int32) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -decimals)
}

// Unscale 将十进制数值还原为原始整数字符串，Scale 的逆操作
func Unscale(v decimal.Decimal, decimals int32) string {
	return v.Shift(decimals).Truncate(0).String()
}

// SumGasUsed 累加一笔交易的各项 gas 消耗（computationCost/storageCost/...）
func SumGasUsed(gasUsed map[string]string) decimal.Decimal {
	total := decimal.Zero
	for _, v := range gasUsed {
		total = total.Add(Scale(v, 0))
	}
	return total
}

// ParsePoolTokens 从池子的泛型类型串中解析两个代币地址
// 0x1eab...::pool::Pool<0x5d4b...::coin::COIN, 0x2::sui::SUI> -> (0x5d4b...::coin::COIN, 0x2::sui::SUI)
func ParsePoolTokens(poolType string) (string, string) {
	m := poolTypeRe.FindStringSubmatch(poolType)
	if len(m) < 3 {
		return "", ""
	}
	return m[1], m[2]
}

// NormalizeAddress 规范化代币地址：去掉包地址的前导0
// 0x0000...0002::sui::SUI -> 0x2::sui::SUI
func NormalizeAddress(ca string) string {
	parts := strings.Split(ca, "::")
	if len(parts) == 0 || !strings.HasPrefix(parts[0], "0x") {
		return ca
	}
	pkg := strings.TrimLeft(strings.TrimPrefix(parts[0], "0x"), "0")
	if pkg == "" {
		pkg = "0"
	}
	parts[0] = "0x" + pkg
	return strings.Join(parts, "::")
}

// CollectionType 取NFT对象类型的集合前缀（package::module::Struct，去掉泛型参数）
func CollectionType(objType string) string {
	if idx := strings.Index(objType, "<"); idx > 0 {
		return objType[:idx]
	}
	return objType
}
