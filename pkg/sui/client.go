package sui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"sui-smart/pkg/httpclient"
)

// Client Sui全节点JSON-RPC客户端
type Client struct {
	rpcURL     string
	httpClient *httpclient.HTTPClient
	logger     *zap.Logger
}

type ClientConfig struct {
	RPCURL    string
	RateLimit int // 每秒请求数
	Timeout   int // 秒
}

// NewClient 创建Sui RPC客户端
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	httpCfg := httpclient.HTTPClientConfig{
		Timeout:    time.Duration(cfg.Timeout) * time.Second,
		RateLimit:  cfg.RateLimit,
		MaxRetries: 3,
	}

	return &Client{
		rpcURL:     cfg.RPCURL,
		httpClient: httpclient.NewHTTPClient(httpCfg, logger),
		logger:     logger,
	}
}

func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	req := rpcRequest{
		JsonRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	}

	var resp rpcResponse
	if err := c.httpClient.PostJSON(ctx, c.rpcURL, req, nil, &resp); err != nil {
		return fmt.Errorf("rpc %s failed: %w", method, err)
	}
	if resp.Error != nil {
		return fmt.Errorf("rpc %s error %d: %s", method, resp.Error.Code, resp.Error.Message)
	}
	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("rpc %s decode result failed: %w", method, err)
	}
	return nil
}

var objectOptions = map[string]bool{
	"showType":    true,
	"showContent": true,
	"showDisplay": true,
}

// GetObject 读取单个对象，对象不存在时返回错误
func (c *Client) GetObject(ctx context.Context, objectID string) (*SuiObject, error) {
	var resp objectResponse
	if err := c.call(ctx, "sui_getObject", []interface{}{objectID, objectOptions}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("object %s not available: %s", objectID, resp.Error.Code)
	}
	return resp.Data, nil
}

// GetDynamicFieldObject 读取动态字段，nameType如"u8"、"address"、"0x2::object::ID"
func (c *Client) GetDynamicFieldObject(ctx context.Context, parentID, nameType string, value interface{}) (*SuiObject, error) {
	name := dynamicFieldName{Type: nameType, Value: value}
	var resp objectResponse
	if err := c.call(ctx, "suix_getDynamicFieldObject", []interface{}{parentID, name}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("dynamic field of %s not available: %s", parentID, resp.Error.Code)
	}
	return resp.Data, nil
}

// GetOwnedObjects 分页拉取钱包全部对象
func (c *Client) GetOwnedObjects(ctx context.Context, owner string) ([]SuiObject, error) {
	query := map[string]interface{}{
		"options": objectOptions,
	}

	var result []SuiObject
	cursor := interface{}(nil)
	for {
		var page objectPage
		if err := c.call(ctx, "suix_getOwnedObjects", []interface{}{owner, query, cursor, 50}, &page); err != nil {
			return nil, err
		}
		for _, item := range page.Data {
			if item.Data != nil {
				result = append(result, *item.Data)
			}
		}
		if !page.HasNextPage || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	return result, nil
}

// GetAllBalances 钱包各币种余额汇总
func (c *Client) GetAllBalances(ctx context.Context, owner string) ([]CoinBalance, error) {
	var result []CoinBalance
	if err := c.call(ctx, "suix_getAllBalances", []interface{}{owner}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetAllCoins 分页拉取钱包全部coin对象
func (c *Client) GetAllCoins(ctx context.Context, owner string) ([]Coin, error) {
	var result []Coin
	cursor := interface{}(nil)
	for {
		var page CoinPage
		if err := c.call(ctx, "suix_getAllCoins", []interface{}{owner, cursor, 50}, &page); err != nil {
			return nil, err
		}
		result = append(result, page.Data...)
		if !page.HasNextPage || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	return result, nil
}

// GetCoinMetadata 币种元信息，未注册币种返回nil
func (c *Client) GetCoinMetadata(ctx context.Context, coinType string) (*CoinMetadata, error) {
	var result *CoinMetadata
	if err := c.call(ctx, "suix_getCoinMetadata", []interface{}{coinType}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetStakes 钱包的原生质押，按validator分组
func (c *Client) GetStakes(ctx context.Context, owner string) ([]DelegatedStake, error) {
	var result []DelegatedStake
	if err := c.call(ctx, "suix_getStakes", []interface{}{owner}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetTransactionEvents 一笔交易的全部事件，借贷协议需要关联同交易的伴生事件
func (c *Client) GetTransactionEvents(ctx context.Context, digest string) ([]TxEvent, error) {
	var resp struct {
		Events []TxEvent `json:"events"`
	}
	options := map[string]bool{"showEvents": true}
	if err := c.call(ctx, "sui_getTransactionBlock", []interface{}{digest, options}, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// GetLatestCheckpoint 最新checkpoint序号
func (c *Client) GetLatestCheckpoint(ctx context.Context) (int64, error) {
	var result string
	if err := c.call(ctx, "sui_getLatestCheckpointSequenceNumber", []interface{}{}, &result); err != nil {
		return 0, err
	}
	seq, err := strconv.ParseInt(result, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse checkpoint %q failed: %w", result, err)
	}
	return seq, nil
}
