package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

const CHAIN = "SUI"

// NATIVE_TOKEN 链原生代币，所有估值的报价币种
const NATIVE_TOKEN = "0x2::sui::SUI"

// SuiEvent 链上事件，来自 sui-events topic 或离线回填文件
// 数值字段在上游序列化为字符串（超出 JS 安全整数范围）
type SuiEvent struct {
	ID                EventID           `json:"id"`
	PackageID         string            `json:"packageId"`
	TransactionModule string            `json:"transactionModule"`
	Sender            string            `json:"sender"`
	Type              string            `json:"type"`
	ParsedJSON        json.RawMessage   `json:"parsedJson"`
	TimestampMs       int64             `json:"timestampMs,string"`
	Checkpoint        int64             `json:"checkpoint,string"`
	GasUsed           map[string]string `json:"gasUsed"`
}

type EventID struct {
	TxDigest string `json:"txDigest"`
	EventSeq int64  `json:"eventSeq,string"`
}

// SuiTx 交易级别的消息，objectChanges 过滤用
type SuiTx struct {
	Digest         string            `json:"digest"`
	Checkpoint     int64             `json:"checkpoint,string"`
	TimestampMs    int64             `json:"timestampMs,string"`
	Effects        json.RawMessage   `json:"effects"`
	ObjectChanges  []SuiObjectChange `json:"objectChanges"`
	Events         json.RawMessage   `json:"events"`
	BalanceChanges json.RawMessage   `json:"balanceChanges"`
}

type SuiObjectChange struct {
	Type       string `json:"type"`
	ObjectType string `json:"objectType"`
	ObjectID   string `json:"objectId"`
}

// GasContext 一笔交易的gas估值，同一digest下所有记录共享
type GasContext struct {
	GasFee      decimal.Decimal // 报价币计价
	NativePrice decimal.Decimal
}
