package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/ZcashUsersGroup/zdabe/internal/logger"
	"github.com/ZcashUsersGroup/zdabe/internal/logic"
	"github.com/ZcashUsersGroup/zdabe/internal/model"
	"github.com/gin-gonic/gin"
)

// CardService 卡片查询服务
type CardService interface {
	Count(q logic.CardQuery) (int64, error)
	ListPage(q logic.CardQuery) ([]model.Card, error)
	GetByID(id string) (*model.Card, error)
	AttachStageFunding(cards []model.Card) error
	Summary() (map[string]interface{}, error)
}

// WalletService 钱包余额聚合服务
type WalletService interface {
	Aggregate(ctx context.Context, addresses []string) (*model.WalletSnapshot, error)
}

// CardHandler 卡片接口处理器
type CardHandler struct {
	cards   CardService
	wallets WalletService
}

// NewCardHandler 创建卡片接口处理器
func NewCardHandler(cards CardService, wallets WalletService) *CardHandler {
	return &CardHandler{cards: cards, wallets: wallets}
}

// ListCards 分页获取公开卡片列表
func (h *CardHandler) ListCards(c *gin.Context) {
	// 规范化查询参数, 非法值静默回退默认值
	q := logic.ParseCardQuery(logic.CardQueryInput{
		Page:     c.Query("page"),
		PerPage:  c.Query("per_page"),
		SortBy:   c.Query("sort_by"),
		SortDir:  c.Query("sort_dir"),
		Priority: c.Query("priority"),
		Status:   c.Query("status"),
		Stage:    c.Query("stage"),
		Tags:     c.Query("tags"),
	})

	total, err := h.cards.Count(q)
	if err != nil {
		internalError(c, err)
		return
	}

	cards, err := h.cards.ListPage(q)
	if err != nil {
		internalError(c, err)
		return
	}

	// 补全阶段筹款信息
	if err := h.cards.AttachStageFunding(cards); err != nil {
		internalError(c, err)
		return
	}

	if cards == nil {
		cards = []model.Card{}
	}
	totalPages := (total + int64(q.PerPage) - 1) / int64(q.PerPage)

	c.JSON(http.StatusOK, gin.H{
		"pagination": gin.H{
			"current_page": q.Page,
			"per_page":     q.PerPage,
			"total_pages":  totalPages,
		},
		"cards": cards,
	})
}

// GetCard 获取单张公开卡片详情, 按需补全钱包余额
func (h *CardHandler) GetCard(c *gin.Context) {
	id := c.Param("id")

	card, err := h.cards.GetByID(id)
	if err != nil {
		if errors.Is(err, model.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
			return
		}
		internalError(c, err)
		return
	}

	cards := []model.Card{*card}
	if err := h.cards.AttachStageFunding(cards); err != nil {
		internalError(c, err)
		return
	}
	card = &cards[0]

	// 卡片配置了钱包地址时查询链上余额, 失败只附加错误标记不影响卡片数据
	if len(card.WalletAddresses) > 0 {
		snapshot, err := h.wallets.Aggregate(c.Request.Context(), card.WalletAddresses)
		if err != nil {
			logger.Warn("Wallet aggregation failed for card %s: %v", card.ID, err)
			card.WalletInfoError = "could not retrieve wallet information"
		} else {
			card.WalletInfo = snapshot
		}
	}

	c.JSON(http.StatusOK, card)
}

// GetFundingSummary 获取全部公开卡片的筹款统计
func (h *CardHandler) GetFundingSummary(c *gin.Context) {
	summary, err := h.cards.Summary()
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
