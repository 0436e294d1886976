package model

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ErrCardNotFound 卡片不存在或不可见时返回 (两种情况不作区分)
var ErrCardNotFound = errors.New("卡片不存在")

// Card 众筹项目卡片模型
type Card struct {
	ID string `json:"id" gorm:"primaryKey"`

	// 基本信息
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	Creators    pq.StringArray `json:"creators" gorm:"type:text[]"`
	Date        time.Time      `json:"date"`

	Contributors int            `json:"contributors" gorm:"default:0"`
	Tags         pq.StringArray `json:"tags" gorm:"type:text[]"`
	Priority     CardPriority   `json:"priority"`

	// 资金信息 (ZEC, 8位小数)
	FundingEarned    decimal.Decimal `json:"funding_earned" gorm:"type:numeric(20,8);default:0"`
	FundingSpent     decimal.Decimal `json:"funding_spent" gorm:"type:numeric(20,8);default:0"`
	FundingRequested decimal.Decimal `json:"funding_requested" gorm:"type:numeric(20,8);default:0"`
	FundingReceived  decimal.Decimal `json:"funding_received" gorm:"type:numeric(20,8);default:0"`
	FundingAvailable decimal.Decimal `json:"funding_available" gorm:"type:numeric(20,8);default:0"`
	PercentFunded    decimal.Decimal `json:"percent_funded" gorm:"type:numeric(20,8);default:0"`

	Visibility CardVisibility `json:"visibility" gorm:"index"`
	Milestones datatypes.JSON `json:"milestones" gorm:"type:jsonb"`
	Status     CardStatus     `json:"status"`
	Stage      CardStage      `json:"stage"`

	Creator     string    `json:"creator"`
	Owner       string    `json:"owner"`
	LastUpdated time.Time `json:"last_updated"`

	WalletAddresses pq.StringArray `json:"wallet_addresses" gorm:"type:text[]"`
	ViewKeys        pq.StringArray `json:"view_keys" gorm:"type:text[]"`

	// 以下字段由查询后填充, 不存储在 cards 表
	StageFunding          []StageFunding  `json:"stage_funding" gorm:"-"`
	TotalFundingRequested string          `json:"total_funding_requested" gorm:"-"`
	WalletInfo            *WalletSnapshot `json:"wallet_info,omitempty" gorm:"-"`
	WalletInfoError       string          `json:"wallet_info_error,omitempty" gorm:"-"`
}

// TableName 自定义表名
func (Card) TableName() string {
	return "cards"
}

// CardPriority 卡片优先级
type CardPriority string

const (
	PriorityHigh   CardPriority = "HIGH"   // 高
	PriorityMedium CardPriority = "MEDIUM" // 中
	PriorityLow    CardPriority = "LOW"    // 低
)

// CardStatus 卡片状态
type CardStatus string

const (
	StatusNotStarted CardStatus = "NOT STARTED" // 未开始
	StatusInProgress CardStatus = "IN PROGRESS" // 进行中
	StatusBlocked    CardStatus = "BLOCKED"     // 受阻
	StatusCompleted  CardStatus = "COMPLETED"   // 已完成
)

// CardStage 卡片所处阶段
type CardStage string

const (
	StageAnalyze  CardStage = "ANALYZE"  // 分析
	StageDesign   CardStage = "DESIGN"   // 设计
	StageDevelop  CardStage = "DEVELOP"  // 开发
	StageDeploy   CardStage = "DEPLOY"   // 部署
	StageMaintain CardStage = "MAINTAIN" // 维护
)

// CardVisibility 卡片可见性, 仅 PUBLIC 对外暴露
type CardVisibility string

const (
	VisibilityPublic  CardVisibility = "PUBLIC"  // 公开
	VisibilityPrivate CardVisibility = "PRIVATE" // 私有
)
