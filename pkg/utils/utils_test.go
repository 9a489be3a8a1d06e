package utils

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		decimals int32
		want     string
	}{
		{"one whole unit", "1000000000", 9, "1"},
		{"fractional", "1500000000", 9, "1.5"},
		{"zero decimals passthrough", "12345", 0, "12345"},
		{"six decimals", "500000", 6, "0.5"},
		{"sub-unit", "1", 9, "0.000000001"},
		{"zero", "0", 9, "0"},
		{"empty input", "", 9, "0"},
		{"garbage input", "not-a-number", 9, "0"},
		{"beyond uint64", "340282366920938463463374607431768211456", 18, "340282366920938463463.374607431768211456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scale(tt.raw, tt.decimals)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestScaleUnscaleRoundTrip(t *testing.T) {
	// 2^128 级别也不能有精度损失
	raws := []string{
		"1",
		"999999999",
		"1000000000",
		"123456789012345678901234567890",
		new(big.Int).Lsh(big.NewInt(1), 128).String(),
	}
	for _, raw := range raws {
		for _, d := range []int32{0, 6, 9, 18, 36} {
			got := Unscale(Scale(raw, d), d)
			require.Equal(t, raw, got, "raw=%s decimals=%d", raw, d)
		}
	}
}

func TestScaleBig(t *testing.T) {
	// lending index 路径：balance * index 以 1e36 精度缩放
	balance, _ := new(big.Int).SetString("2000000000", 10)
	index, _ := new(big.Int).SetString("1050000000000000000000000000", 10) // 1.05e27
	got := ScaleBig(new(big.Int).Mul(balance, index), 36)
	assert.True(t, got.Equal(decimal.RequireFromString("2.1")), "got %s", got)

	assert.True(t, ScaleBig(nil, 9).IsZero())
}

func TestSumGasUsed(t *testing.T) {
	gas := map[string]string{
		"computationCost":         "750000",
		"storageCost":             "5266800",
		"storageRebate":           "0",
		"nonRefundableStorageFee": "53200",
	}
	assert.Equal(t, "6070000", SumGasUsed(gas).String())
	assert.True(t, SumGasUsed(nil).IsZero())
}

func TestParsePoolTokens(t *testing.T) {
	a, b := ParsePoolTokens("0x1eab::pool::Pool<0x5d4b::coin::COIN, 0x2::sui::SUI>")
	assert.Equal(t, "0x5d4b::coin::COIN", a)
	assert.Equal(t, "0x2::sui::SUI", b)

	a, b = ParsePoolTokens("0x1eab::pool::Pool")
	assert.Empty(t, a)
	assert.Empty(t, b)
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "0x2::sui::SUI",
		NormalizeAddress("0x0000000000000000000000000000000000000000000000000000000000000002::sui::SUI"))
	assert.Equal(t, "0xabc::coin::COIN", NormalizeAddress("0xabc::coin::COIN"))
	assert.Equal(t, "plain", NormalizeAddress("plain"))
}

func TestCollectionType(t *testing.T) {
	assert.Equal(t, "0x2::coin::Coin", CollectionType("0x2::coin::Coin<0x2::sui::SUI>"))
	assert.Equal(t, "0xabc::nft::Hero", CollectionType("0xabc::nft::Hero"))
}
