package explorer

import (
	"context"
	"encoding/json"
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

// ErrUpstream 上游浏览器服务返回异常 (非2xx或结构不符)
var ErrUpstream = errors.New("explorer upstream error")

// 每个地址最多透传的交易条数
const maxRecentTransactions = 10

// zatoshi 与 ZEC 的换算位数
const zatoshiExponent = -8

// AddressInfo 单地址余额信息, 金额已换算为 ZEC 主单位
type AddressInfo struct {
	Address            string
	Balance            decimal.Decimal
	TotalReceived      decimal.Decimal
	TotalSent          decimal.Decimal
	RecentTransactions []json.RawMessage
}

// Client 地址看板服务客户端
type Client struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
}

// New 创建地址看板客户端
func New(cfg config.ExplorerConfig) *Client {
	return &Client{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
	}
}

// 看板接口响应结构, 金额为 zatoshi 整数
type dashboardResponse struct {
	Data map[string]struct {
		Address struct {
			Balance  int64 `json:"balance"`
			Received int64 `json:"received"`
			Spent    int64 `json:"spent"`
		} `json:"address"`
		Transactions []json.RawMessage `json:"transactions"`
	} `json:"data"`
	Context struct {
		Code int `json:"code"`
	} `json:"context"`
}

// AddressDashboard 查询单个地址的余额与近期交易
func (c *Client) AddressDashboard(ctx context.Context, address string) (*AddressInfo, error) {
	requestURL := fmt.Sprintf("%s/zcash/dashboards/address/%s", c.baseURL, address)

	logger.Debug("Requesting address dashboard: %s", requestURL)

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
		metrics.UpstreamRequest("explorer", "error")
		return nil, fmt.Errorf("request to %s failed: %w", requestURL, err)
	}

	body := resp.Body()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		metrics.UpstreamRequest("explorer", "error")
		logger.Warn("Explorer returned status %d for address %s", resp.StatusCode(), address)
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
	}

	var dashboard dashboardResponse
	if err := jsonAPI.Unmarshal(body, &dashboard); err != nil {
		metrics.UpstreamRequest("explorer", "error")
		return nil, fmt.Errorf("%w: unexpected response body: %v", ErrUpstream, err)
	}

	entry, ok := dashboard.Data[address]
	if !ok {
		metrics.UpstreamRequest("explorer", "error")
		return nil, fmt.Errorf("%w: address %s missing from response", ErrUpstream, address)
	}

	transactions := entry.Transactions
	if len(transactions) > maxRecentTransactions {
		transactions = transactions[:maxRecentTransactions]
	}

	metrics.UpstreamRequest("explorer", "ok")

	return &AddressInfo{
		Address:            address,
		Balance:            decimal.New(entry.Address.Balance, zatoshiExponent),
		TotalReceived:      decimal.New(entry.Address.Received, zatoshiExponent),
		TotalSent:          decimal.New(entry.Address.Spent, zatoshiExponent),
		RecentTransactions: transactions,
	}, nil
}
