package sui

import "encoding/json"

// rpcRequest JSON-RPC 2.0 请求体
type rpcRequest struct {
	JsonRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JsonRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

// ObjectContent Move对象内容，Fields为动态结构需通过辅助函数访问
type ObjectContent struct {
	DataType string                 `json:"dataType"`
	Type     string                 `json:"type"`
	Fields   map[string]interface{} `json:"fields"`
}

type SuiObject struct {
	ObjectID string            `json:"objectId"`
	Version  string            `json:"version"`
	Type     string            `json:"type"`
	Owner    json.RawMessage   `json:"owner"`
	Content  *ObjectContent    `json:"content"`
	Display  map[string]string `json:"display"`
}

type objectResponse struct {
	Data  *SuiObject `json:"data"`
	Error *struct {
		Code     string `json:"code"`
		ObjectID string `json:"object_id"`
	} `json:"error"`
}

type objectPage struct {
	Data        []objectResponse `json:"data"`
	NextCursor  string           `json:"nextCursor"`
	HasNextPage bool             `json:"hasNextPage"`
}

// CoinBalance 某币种的余额汇总
type CoinBalance struct {
	CoinType        string `json:"coinType"`
	CoinObjectCount int    `json:"coinObjectCount"`
	TotalBalance    string `json:"totalBalance"`
}

// Coin 单个coin对象
type Coin struct {
	CoinType     string `json:"coinType"`
	CoinObjectID string `json:"coinObjectId"`
	Version      string `json:"version"`
	Digest       string `json:"digest"`
	Balance      string `json:"balance"`
}

type CoinPage struct {
	Data        []Coin `json:"data"`
	NextCursor  string `json:"nextCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

// CoinMetadata 链上币种元信息，创建后不可变
type CoinMetadata struct {
	Decimals    int32  `json:"decimals"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
	ID          string `json:"id"`
}

// StakeEntry 单笔质押，EstimatedReward仅Active状态返回
type StakeEntry struct {
	StakedSuiID       string `json:"stakedSuiId"`
	StakeRequestEpoch string `json:"stakeRequestEpoch"`
	StakeActiveEpoch  string `json:"stakeActiveEpoch"`
	Principal         string `json:"principal"`
	Status            string `json:"status"`
	EstimatedReward   string `json:"estimatedReward"`
}

// DelegatedStake 按validator分组的质押
type DelegatedStake struct {
	ValidatorAddress string       `json:"validatorAddress"`
	StakingPool      string       `json:"stakingPool"`
	Stakes           []StakeEntry `json:"stakes"`
}

// TxEvent 交易内的单个事件
type TxEvent struct {
	Type       string          `json:"type"`
	ParsedJSON json.RawMessage `json:"parsedJson"`
}

type dynamicFieldName struct {
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}
