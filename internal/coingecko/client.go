package coingecko

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ZcashUsersGroup/zdabe/internal/config"
	"github.com/ZcashUsersGroup/zdabe/internal/logger"
	"github.com/ZcashUsersGroup/zdabe/internal/metrics"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUpstream 行情服务返回异常 (非2xx或结构不符)
var ErrUpstream = errors.New("price upstream error")

// Client 行情服务客户端
type Client struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
}

// New 创建行情客户端
func New(cfg config.RatesConfig) *Client {
	return &Client{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
	}
}

// SimplePrice 查询 ZEC 对 USD 的现价
func (c *Client) SimplePrice(ctx context.Context) (decimal.Decimal, error) {
	requestURL := fmt.Sprintf("%s/api/v3/simple/price?ids=zcash&vs_currencies=usd", c.baseURL)

	logger.Debug("Requesting price: %s", requestURL)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentType("application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		metrics.UpstreamRequest("coingecko", "error")
		return decimal.Zero, fmt.Errorf("request to %s failed: %w", requestURL, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		metrics.UpstreamRequest("coingecko", "error")
		logger.Warn("Price service returned status %d", resp.StatusCode())
		return decimal.Zero, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
	}

	var priceResp map[string]map[string]decimal.Decimal
	if err := jsonAPI.Unmarshal(resp.Body(), &priceResp); err != nil {
		metrics.UpstreamRequest("coingecko", "error")
		return decimal.Zero, fmt.Errorf("%w: unexpected response body: %v", ErrUpstream, err)
	}

	usd, ok := priceResp["zcash"]["usd"]
	if !ok {
		metrics.UpstreamRequest("coingecko", "error")
		return decimal.Zero, fmt.Errorf("%w: zcash/usd missing from response", ErrUpstream)
	}

	metrics.UpstreamRequest("coingecko", "ok")
	return usd, nil
}
