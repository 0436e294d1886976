package logic

import (
	"errors"
	"fmt"

	"github.com/ZcashUsersGroup/zdabe/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CardLogic 卡片业务逻辑
type CardLogic struct {
	db *gorm.DB
}

// NewCardLogic 创建卡片业务逻辑
func NewCardLogic(db *gorm.DB) *CardLogic {
	return &CardLogic{db: db}
}

// Count 统计符合过滤条件的公开卡片总数, 不受分页影响
func (l *CardLogic) Count(q CardQuery) (int64, error) {
	var total int64
	if err := q.Apply(l.db.Model(&model.Card{})).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("获取卡片总数失败: %w", err)
	}
	return total, nil
}

// ListPage 按查询计划分页获取公开卡片
func (l *CardLogic) ListPage(q CardQuery) ([]model.Card, error) {
	var cards []model.Card
	if err := q.Apply(l.db).
		Order(q.OrderClause()).
		Offset(q.Offset()).
		Limit(q.PerPage).
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("获取卡片列表失败: %w", err)
	}
	return cards, nil
}

// GetByID 按ID获取单张公开卡片
// ID不存在与卡片非公开同样返回 ErrCardNotFound, 不泄露私有卡片信息
func (l *CardLogic) GetByID(id string) (*model.Card, error) {
	var card model.Card
	if err := l.db.Where("id = ? AND visibility = ?", id, model.VisibilityPublic).
		First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrCardNotFound
		}
		return nil, fmt.Errorf("获取卡片详情失败: %w", err)
	}
	return &card, nil
}

// AttachStageFunding 补全各卡片的阶段筹款记录与合计金额
// 一次性读取全表后在进程内分组, 结果与数据库侧 JOIN 一致
func (l *CardLogic) AttachStageFunding(cards []model.Card) error {
	var rows []model.StageFunding
	if err := l.db.Find(&rows).Error; err != nil {
		return fmt.Errorf("获取阶段筹款记录失败: %w", err)
	}

	groups := groupStageFunding(rows)
	for i := range cards {
		applyStageFunding(&cards[i], groups[cards[i].ID])
	}
	return nil
}

// groupStageFunding 按卡片ID分组阶段筹款记录, 缺省币种补为 ZEC
func groupStageFunding(rows []model.StageFunding) map[string][]model.StageFunding {
	groups := make(map[string][]model.StageFunding)
	for _, row := range rows {
		if row.Currency == "" {
			row.Currency = model.DefaultCurrency
		}
		groups[row.CardID] = append(groups[row.CardID], row)
	}
	return groups
}

// applyStageFunding 填充单张卡片的阶段筹款列表与合计
func applyStageFunding(card *model.Card, rows []model.StageFunding) {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.FundingRequested)
	}
	if rows == nil {
		rows = []model.StageFunding{}
	}
	card.StageFunding = rows
	card.TotalFundingRequested = total.StringFixed(8)
}

// Summary 统计全部公开卡片的五项筹款总额
func (l *CardLogic) Summary() (map[string]interface{}, error) {
	var sums struct {
		TotalEarned    decimal.Decimal
		TotalSpent     decimal.Decimal
		TotalRequested decimal.Decimal
		TotalReceived  decimal.Decimal
		TotalAvailable decimal.Decimal
	}

	err := l.db.Model(&model.Card{}).
		Where("visibility = ?", model.VisibilityPublic).
		Select(`COALESCE(SUM(funding_earned), 0) AS total_earned,
			COALESCE(SUM(funding_spent), 0) AS total_spent,
			COALESCE(SUM(funding_requested), 0) AS total_requested,
			COALESCE(SUM(funding_received), 0) AS total_received,
			COALESCE(SUM(funding_available), 0) AS total_available`).
		Scan(&sums).Error
	if err != nil {
		return nil, fmt.Errorf("获取筹款统计失败: %w", err)
	}

	return map[string]interface{}{
		"total_earned":    sums.TotalEarned.StringFixed(8),
		"total_spent":     sums.TotalSpent.StringFixed(8),
		"total_requested": sums.TotalRequested.StringFixed(8),
		"total_received":  sums.TotalReceived.StringFixed(8),
		"total_available": sums.TotalAvailable.StringFixed(8),
	}, nil
}
