package decoder

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"sui-smart/internal/worker/model"
	"sui-smart/pkg/utils"
)

const (
	NAVI = "NAVI"

	naviPackage = "0xd899cf7d2b5db716bd2cf55599fb0d5ee38a3061e7b6bb6eebf73fa5bc4c81ca"
)

type naviLending struct {
	Amount  string `json:"amount"`
	Reserve string `json:"reserve"`
	Sender  string `json:"sender"`
}

type naviPoolEvent struct {
	Amount string `json:"amount"`
	Pool   string `json:"pool"`
	Sender string `json:"sender"`
}

// NaviEntries 借贷市场事件，币种需回查同笔交易的pool伴生事件
func (d *Deps) NaviEntries() []Entry {
	return []Entry{
		{
			Protocol: NAVI,
			Topics:   []string{naviPackage + "::lending::DepositEvent"},
			Decode:   d.naviLending(model.ActionAdd, naviPackage+"::pool::PoolDeposit"),
		},
		{
			Protocol: NAVI,
			Topics:   []string{naviPackage + "::lending::WithdrawEvent"},
			Decode:   d.naviLending(model.ActionRemove, naviPackage+"::pool::PoolWithdraw"),
		},
		{
			Protocol: NAVI,
			Topics:   []string{naviPackage + "::lending::BorrowEvent"},
			Decode:   d.naviLending(model.ActionBorrow, naviPackage+"::pool::PoolWithdraw"),
		},
		{
			Protocol: NAVI,
			Topics:   []string{naviPackage + "::lending::RepayEvent"},
			Decode:   d.naviLending(model.ActionRepay, naviPackage+"::pool::PoolDeposit"),
		},
	}
}

// poolToken 借贷事件只带reserve序号，实际币种取同笔交易pool模块事件的泛型池标识
func (d *Deps) poolToken(ctx context.Context, digest, companionTopic string) (string, error) {
	events, err := d.SuiClient.GetTransactionEvents(ctx, digest)
	if err != nil {
		return "", err
	}
	for _, ev := range events {
		if ev.Type != companionTopic {
			continue
		}
		var companion naviPoolEvent
		if err := sonic.Unmarshal(ev.ParsedJSON, &companion); err != nil {
			return "", err
		}
		return utils.NormalizeAddress("0x" + companion.Pool), nil
	}
	return "", fmt.Errorf("companion event %s not found in tx %s", companionTopic, digest)
}

func (d *Deps) naviLending(action, companionTopic string) DecodeFunc {
	return func(ctx context.Context, event *model.SuiEvent, gas model.GasContext) (*Result, error) {
		var payload naviLending
		if err := parsePayload(event, &payload); err != nil {
			return nil, err
		}

		token, err := d.poolToken(ctx, event.ID.TxDigest, companionTopic)
		if err != nil {
			return nil, err
		}

		amount := d.scale(ctx, token, payload.Amount)
		tokenPrice := d.price(ctx, event, token)

		lending := d.newLending(event, gas)
		lending.Protocol = NAVI
		lending.PoolAddress = token
		lending.Action = action

		// Add/Repay记输入侧，Remove/Borrow记输出侧
		switch action {
		case model.ActionAdd, model.ActionRepay:
			lending.InputToken = token
			lending.InputAmount = amount
			lending.InputPrice = tokenPrice
		default:
			lending.OutputToken = token
			lending.OutputAmount = amount
			lending.OutputPrice = tokenPrice
		}

		return &Result{Lending: lending}, nil
	}
}
