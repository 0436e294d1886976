package logic

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZcashUsersGroup/zdabe/internal/explorer"
	"github.com/ZcashUsersGroup/zdabe/internal/logger"
	"github.com/ZcashUsersGroup/zdabe/internal/model"
	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"
)

// AddressFetcher 单地址余额查询接口
type AddressFetcher interface {
	AddressDashboard(ctx context.Context, address string) (*explorer.AddressInfo, error)
}

// WalletLogic 钱包余额聚合逻辑
type WalletLogic struct {
	fetcher  AddressFetcher
	poolSize int
}

// NewWalletLogic 创建钱包余额聚合逻辑
func NewWalletLogic(fetcher AddressFetcher, maxConcurrent int) *WalletLogic {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &WalletLogic{fetcher: fetcher, poolSize: maxConcurrent}
}

// Aggregate 并发查询全部地址并汇总余额
// 单个地址失败只记录该地址的错误标记, 不影响其他地址
// 结果顺序与传入的地址顺序一致, 汇总只累加查询成功的地址
func (w *WalletLogic) Aggregate(ctx context.Context, addresses []string) (*model.WalletSnapshot, error) {
	snapshot := &model.WalletSnapshot{
		Addresses: make([]model.AddressEntry, len(addresses)),
		Totals: model.WalletTotals{
			Balance:       decimal.Zero,
			TotalReceived: decimal.Zero,
			TotalSent:     decimal.Zero,
		},
	}
	if len(addresses) == 0 {
		snapshot.Addresses = []model.AddressEntry{}
		return snapshot, nil
	}

	size := w.poolSize
	if len(addresses) < size {
		size = len(addresses)
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("创建地址查询协程池失败: %w", err)
	}
	defer pool.Release()

	// 每个任务只写自己下标的槽位, wg.Wait 之后才读取
	var wg sync.WaitGroup
	for i, address := range addresses {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			info, err := w.fetcher.AddressDashboard(ctx, address)
			if err != nil {
				logger.Warn("Address lookup failed for %s: %v", address, err)
				snapshot.Addresses[i] = model.AddressEntry{Address: address, Error: err.Error()}
				return
			}
			snapshot.Addresses[i] = model.AddressEntry{
				Address:            address,
				Balance:            &info.Balance,
				TotalReceived:      &info.TotalReceived,
				TotalSent:          &info.TotalSent,
				RecentTransactions: info.RecentTransactions,
			}
		})
		if submitErr != nil {
			wg.Done()
			logger.Error("Failed to submit address lookup task: %v", submitErr)
			snapshot.Addresses[i] = model.AddressEntry{Address: address, Error: submitErr.Error()}
		}
	}
	wg.Wait()

	for i := range snapshot.Addresses {
		entry := &snapshot.Addresses[i]
		if entry.Error != "" {
			continue
		}
		snapshot.Totals.Balance = snapshot.Totals.Balance.Add(*entry.Balance)
		snapshot.Totals.TotalReceived = snapshot.Totals.TotalReceived.Add(*entry.TotalReceived)
		snapshot.Totals.TotalSent = snapshot.Totals.TotalSent.Add(*entry.TotalSent)
	}

	return snapshot, nil
}
