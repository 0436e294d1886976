package model

import (
	"github.com/shopspring/decimal"
)

// DefaultCurrency 资金请求默认币种
const DefaultCurrency = "ZEC"

// StageFunding 卡片单阶段资金请求记录
type StageFunding struct {
	ID     int64  `json:"id" gorm:"primaryKey"`
	CardID string `json:"card_id" gorm:"index;not null"`

	Stage            CardStage       `json:"stage"`
	FundingRequested decimal.Decimal `json:"funding_requested" gorm:"type:numeric(20,8);default:0"`
	Currency         string          `json:"currency" gorm:"default:'ZEC'"`
	Note             string          `json:"note,omitempty" gorm:"type:text"`
}

// TableName 自定义表名
func (StageFunding) TableName() string {
	return "card_stage_funding"
}
