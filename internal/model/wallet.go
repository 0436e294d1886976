package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// WalletSnapshot 单次请求内聚合的钱包余额快照, 不落库
type WalletSnapshot struct {
	Addresses []AddressEntry `json:"addresses"`
	Totals    WalletTotals   `json:"totals"`
}

// AddressEntry 单个地址的查询结果, 成功时携带余额数据, 失败时仅携带错误信息
type AddressEntry struct {
	Address            string            `json:"address"`
	Balance            *decimal.Decimal  `json:"balance,omitempty"`
	TotalReceived      *decimal.Decimal  `json:"total_received,omitempty"`
	TotalSent          *decimal.Decimal  `json:"total_sent,omitempty"`
	RecentTransactions []json.RawMessage `json:"recent_transactions,omitempty"`
	Error              string            `json:"error,omitempty"`
}

// WalletTotals 成功地址的余额合计
type WalletTotals struct {
	Balance       decimal.Decimal `json:"balance"`
	TotalReceived decimal.Decimal `json:"total_received"`
	TotalSent     decimal.Decimal `json:"total_sent"`
}
