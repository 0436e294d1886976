package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RateService 汇率查询服务
type RateService interface {
	ZECToUSD(ctx context.Context) (decimal.Decimal, time.Time, error)
}

// RateHandler 汇率接口处理器
type RateHandler struct {
	rates RateService
}

// NewRateHandler 创建汇率接口处理器
func NewRateHandler(rates RateService) *RateHandler {
	return &RateHandler{rates: rates}
}

// GetExchangeRate 获取 ZEC 对 USD 现价
func (h *RateHandler) GetExchangeRate(c *gin.Context) {
	rate, fetchedAt, err := h.rates.ZECToUSD(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"zec_to_usd": rate.InexactFloat64(),
		"timestamp":  fetchedAt.UTC().Format(time.RFC3339),
	})
}
