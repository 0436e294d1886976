package logic

import (
	"context"
	"errors"
	"testing"

	"github.com/ZcashUsersGroup/zdabe/internal/explorer"
	"github.com/shopspring/decimal"
)

// stubFetcher 按地址返回预设结果
type stubFetcher struct {
	infos map[string]*explorer.AddressInfo
	errs  map[string]error
}

func (s *stubFetcher) AddressDashboard(ctx context.Context, address string) (*explorer.AddressInfo, error) {
	if err, ok := s.errs[address]; ok {
		return nil, err
	}
	if info, ok := s.infos[address]; ok {
		return info, nil
	}
	return nil, errors.New("unexpected address " + address)
}

func addressInfo(address string, balance, received, sent float64) *explorer.AddressInfo {
	return &explorer.AddressInfo{
		Address:       address,
		Balance:       decimal.NewFromFloat(balance),
		TotalReceived: decimal.NewFromFloat(received),
		TotalSent:     decimal.NewFromFloat(sent),
	}
}

func TestAggregateAllSucceed(t *testing.T) {
	fetcher := &stubFetcher{
		infos: map[string]*explorer.AddressInfo{
			"t1aaa": addressInfo("t1aaa", 1.5, 3, 1.5),
			"t1bbb": addressInfo("t1bbb", 2, 2, 0),
		},
	}
	w := NewWalletLogic(fetcher, 4)

	snapshot, err := w.Aggregate(context.Background(), []string{"t1aaa", "t1bbb"})
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	if len(snapshot.Addresses) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(snapshot.Addresses))
	}
	// 结果顺序与输入地址顺序一致
	if snapshot.Addresses[0].Address != "t1aaa" || snapshot.Addresses[1].Address != "t1bbb" {
		t.Fatalf("unexpected entry order: %s, %s",
			snapshot.Addresses[0].Address, snapshot.Addresses[1].Address)
	}
	if !snapshot.Totals.Balance.Equal(decimal.NewFromFloat(3.5)) {
		t.Fatalf("expected total balance 3.5, got %s", snapshot.Totals.Balance)
	}
	if !snapshot.Totals.TotalReceived.Equal(decimal.NewFromFloat(5)) {
		t.Fatalf("expected total received 5, got %s", snapshot.Totals.TotalReceived)
	}
	if !snapshot.Totals.TotalSent.Equal(decimal.NewFromFloat(1.5)) {
		t.Fatalf("expected total sent 1.5, got %s", snapshot.Totals.TotalSent)
	}
}

func TestAggregatePartialFailure(t *testing.T) {
	fetcher := &stubFetcher{
		infos: map[string]*explorer.AddressInfo{
			"t1good": addressInfo("t1good", 2, 4, 2),
		},
		errs: map[string]error{
			"t1bad": errors.New("status 502"),
		},
	}
	w := NewWalletLogic(fetcher, 2)

	snapshot, err := w.Aggregate(context.Background(), []string{"t1bad", "t1good"})
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	bad := snapshot.Addresses[0]
	if bad.Address != "t1bad" {
		t.Fatalf("expected t1bad first, got %s", bad.Address)
	}
	if bad.Error == "" {
		t.Fatal("expected error marker for failed address")
	}
	if bad.Balance != nil {
		t.Fatal("failed address must not carry balance data")
	}

	good := snapshot.Addresses[1]
	if good.Error != "" {
		t.Fatalf("unexpected error for t1good: %s", good.Error)
	}
	if good.Balance == nil || !good.Balance.Equal(decimal.NewFromFloat(2)) {
		t.Fatalf("unexpected balance for t1good: %v", good.Balance)
	}

	// 汇总只包含成功地址
	if !snapshot.Totals.Balance.Equal(decimal.NewFromFloat(2)) {
		t.Fatalf("expected total balance 2, got %s", snapshot.Totals.Balance)
	}
	if !snapshot.Totals.TotalReceived.Equal(decimal.NewFromFloat(4)) {
		t.Fatalf("expected total received 4, got %s", snapshot.Totals.TotalReceived)
	}
}

func TestAggregateAllFail(t *testing.T) {
	fetcher := &stubFetcher{
		errs: map[string]error{
			"t1x": errors.New("timeout"),
			"t1y": errors.New("timeout"),
		},
	}
	w := NewWalletLogic(fetcher, 2)

	snapshot, err := w.Aggregate(context.Background(), []string{"t1x", "t1y"})
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	for _, entry := range snapshot.Addresses {
		if entry.Error == "" {
			t.Fatalf("expected error marker for %s", entry.Address)
		}
	}
	if !snapshot.Totals.Balance.IsZero() {
		t.Fatalf("expected zero total balance, got %s", snapshot.Totals.Balance)
	}
}

func TestAggregateNoAddresses(t *testing.T) {
	w := NewWalletLogic(&stubFetcher{}, 2)

	snapshot, err := w.Aggregate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if snapshot.Addresses == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(snapshot.Addresses) != 0 {
		t.Fatalf("expected no entries, got %d", len(snapshot.Addresses))
	}
	if !snapshot.Totals.Balance.IsZero() {
		t.Fatalf("expected zero totals, got %s", snapshot.Totals.Balance)
	}
}

func TestAggregateMoreAddressesThanWorkers(t *testing.T) {
	infos := map[string]*explorer.AddressInfo{}
	addresses := []string{"t1a", "t1b", "t1c", "t1d", "t1e"}
	for _, addr := range addresses {
		infos[addr] = addressInfo(addr, 1, 1, 0)
	}
	w := NewWalletLogic(&stubFetcher{infos: infos}, 2)

	snapshot, err := w.Aggregate(context.Background(), addresses)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if len(snapshot.Addresses) != len(addresses) {
		t.Fatalf("expected %d entries, got %d", len(addresses), len(snapshot.Addresses))
	}
	for i, addr := range addresses {
		if snapshot.Addresses[i].Address != addr {
			t.Fatalf("expected %s at slot %d, got %s", addr, i, snapshot.Addresses[i].Address)
		}
	}
	if !snapshot.Totals.Balance.Equal(decimal.NewFromFloat(5)) {
		t.Fatalf("expected total balance 5, got %s", snapshot.Totals.Balance)
	}
}
