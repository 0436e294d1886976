package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// 汇率缓存键
const rateCacheKey = "zec_to_usd"

// PriceFetcher 现价查询接口
type PriceFetcher interface {
	SimplePrice(ctx context.Context) (decimal.Decimal, error)
}

// rateEntry 缓存的汇率快照
type rateEntry struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

// RateLogic 汇率业务逻辑
type RateLogic struct {
	fetcher PriceFetcher
	cache   *cache.Cache
}

// NewRateLogic 创建汇率业务逻辑, ttl 为缓存有效期
func NewRateLogic(fetcher PriceFetcher, ttl time.Duration) *RateLogic {
	return &RateLogic{
		fetcher: fetcher,
		cache:   cache.New(ttl, 2*ttl),
	}
}

// ZECToUSD 获取 ZEC 对 USD 汇率及其取价时间, 有效期内直接返回缓存值
func (r *RateLogic) ZECToUSD(ctx context.Context) (decimal.Decimal, time.Time, error) {
	if cached, ok := r.cache.Get(rateCacheKey); ok {
		entry := cached.(rateEntry)
		return entry.rate, entry.fetchedAt, nil
	}

	rate, err := r.fetcher.SimplePrice(ctx)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("获取汇率失败: %w", err)
	}

	entry := rateEntry{rate: rate, fetchedAt: time.Now().UTC()}
	r.cache.Set(rateCacheKey, entry, cache.DefaultExpiration)
	return entry.rate, entry.fetchedAt, nil
}
