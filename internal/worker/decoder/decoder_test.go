package decoder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sui-smart/internal/worker/model"
)

func testRegistry(entries []Entry) *Registry {
	return NewRegistry(zap.NewNop(), entries)
}

func TestMatchPrefix(t *testing.T) {
	called := func(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
		return &Result{}, nil
	}
	registry := testRegistry([]Entry{
		{Protocol: "CETUS", Topics: []string{cetusPackage + "::pool::SwapEvent"}, Decode: called},
		{Protocol: "BLUEMOVE", Topics: []string{blueMovePackage + "::swap::Swap_Event"}, Decode: called},
	})

	// 精确匹配
	matched := registry.Match(cetusPackage + "::pool::SwapEvent")
	require.Len(t, matched, 1)
	assert.Equal(t, "CETUS", matched[0].Protocol)

	// 带泛型参数的事件类型按前缀命中
	matched = registry.Match(blueMovePackage + "::swap::Swap_Event<0x2::sui::SUI, 0xabc::usdc::USDC>")
	require.Len(t, matched, 1)
	assert.Equal(t, "BLUEMOVE", matched[0].Protocol)

	// 未注册的类型不命中
	assert.Empty(t, registry.Match("0xdead::pool::SwapEvent"))

	// 前缀倒置不命中
	assert.Empty(t, registry.Match("::pool::SwapEvent" + cetusPackage))
}

func TestSafeDecodePanicIsolation(t *testing.T) {
	entry := Entry{
		Protocol: "BROKEN",
		Topics:   []string{"0x1::broken::Event"},
		Decode: func(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
			panic("bad payload")
		},
	}
	registry := testRegistry([]Entry{entry})

	event := &model.SuiEvent{Type: "0x1::broken::Event"}
	result := registry.SafeDecode(context.Background(), entry, event, model.GasContext{})
	assert.Nil(t, result)
}

func TestSafeDecodeError(t *testing.T) {
	entry := Entry{
		Protocol: "FAILING",
		Topics:   []string{"0x1::failing::Event"},
		Decode: func(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
			return nil, assert.AnError
		},
	}
	registry := testRegistry([]Entry{entry})

	result := registry.SafeDecode(context.Background(), entry, &model.SuiEvent{}, model.GasContext{})
	assert.Nil(t, result)
}

func TestResultEmpty(t *testing.T) {
	assert.True(t, (*Result)(nil).Empty())
	assert.True(t, (&Result{}).Empty())
	assert.False(t, (&Result{Trade: &model.Trade{}}).Empty())
	assert.False(t, (&Result{Stake: &model.StakeAction{}}).Empty())
}

func TestMoveTypeNameAddress(t *testing.T) {
	assert.Equal(t, "", moveTypeName{}.Address())
	assert.Equal(t, "0x2::sui::SUI",
		moveTypeName{Name: "0000000000000000000000000000000000000000000000000000000000000002::sui::SUI"}.Address())
	assert.Equal(t, "0x7016aae72cfc67f2fadf55769c0a7dd54291a583b63051a5ed71081cce836ac6::sca::SCA",
		moveTypeName{Name: "7016aae72cfc67f2fadf55769c0a7dd54291a583b63051a5ed71081cce836ac6::sca::SCA"}.Address())
}

func TestParseSwapPayloads(t *testing.T) {
	event := &model.SuiEvent{
		ParsedJSON: []byte(`{"amount_in":"1000","amount_out":"2000","atob":true,"pool":"0xp1"}`),
	}
	var cetus cetusSwap
	require.NoError(t, parsePayload(event, &cetus))
	assert.Equal(t, "1000", cetus.AmountIn)
	assert.True(t, cetus.AtoB)

	event = &model.SuiEvent{
		ParsedJSON: []byte(`{"tick_lower":{"bits":-443636},"tick_upper":{"bits":443636},"pool":"0xp2","position":"0xpos"}`),
	}
	var position cetusPosition
	require.NoError(t, parsePayload(event, &position))
	assert.Equal(t, int32(-443636), position.TickLower.Bits)
	assert.Equal(t, int32(443636), position.TickUpper.Bits)

	event = &model.SuiEvent{
		ParsedJSON: []byte(`{"staking_type":{"name":"2::sui::SUI"},"stake_amount":"500","spool_account_id":"0xacc"}`),
	}
	var spool scallopSpoolStake
	require.NoError(t, parsePayload(event, &spool))
	assert.Equal(t, "0x2::sui::SUI", spool.StakingType.Address())
}
