package model

import "github.com/shopspring/decimal"

// TokenHolding 钱包代币持仓，quote为balance×quote_rate
type TokenHolding struct {
	Owner         string          `json:"owner"`
	TokenAddress  string          `json:"token_address"`
	TokenName     string          `json:"token_name"`
	TokenSymbol   string          `json:"token_symbol"`
	TokenDecimals int32           `json:"token_decimals"`
	Logo          string          `json:"logo,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	QuoteRate     decimal.Decimal `json:"quote_rate"`
	Quote         decimal.Decimal `json:"quote"`
}

// NFTItem 单个NFT对象
type NFTItem struct {
	ObjectID    string `json:"object_id"`
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// NFTHolding 按集合分组的NFT持仓
type NFTHolding struct {
	Owner      string    `json:"owner"`
	Collection string    `json:"collection"`
	TotalItems int       `json:"total_items"`
	Tokens     []NFTItem `json:"tokens"`
}
