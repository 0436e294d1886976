package explorer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZcashUsersGroup/zdabe/internal/config"
	"github.com/shopspring/decimal"
)

func newTestClient(baseURL string) *Client {
	return New(config.ExplorerConfig{BaseURL: baseURL, TimeoutMs: 2000})
}

func TestAddressDashboardSuccess(t *testing.T) {
	const address = "t1KYyZVEfHmdv8HKU8fZHyktqpEcVgDMVeK"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wantPath := "/zcash/dashboards/address/" + address
		if r.URL.Path != wantPath {
			t.Errorf("expected path %s, got %s", wantPath, r.URL.Path)
		}

		txs := ""
		for i := 0; i < 12; i++ {
			if i > 0 {
				txs += ","
			}
			txs += fmt.Sprintf(`{"hash":"tx%d"}`, i)
		}
		fmt.Fprintf(w, `{
			"data": {
				%q: {
					"address": {"balance": 150000000, "received": 300000000, "spent": 150000000},
					"transactions": [%s]
				}
			},
			"context": {"code": 200}
		}`, address, txs)
	}))
	defer srv.Close()

	info, err := newTestClient(srv.URL).AddressDashboard(context.Background(), address)
	if err != nil {
		t.Fatalf("AddressDashboard returned error: %v", err)
	}

	// zatoshi 整数换算为 ZEC 主单位
	if !info.Balance.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("expected balance 1.5, got %s", info.Balance)
	}
	if !info.TotalReceived.Equal(decimal.RequireFromString("3")) {
		t.Fatalf("expected received 3, got %s", info.TotalReceived)
	}
	if !info.TotalSent.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("expected sent 1.5, got %s", info.TotalSent)
	}
	if len(info.RecentTransactions) != 10 {
		t.Fatalf("expected 10 transactions after truncation, got %d", len(info.RecentTransactions))
	}
}

func TestAddressDashboardFewTransactions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"data": {
				"t1abc": {
					"address": {"balance": 0, "received": 0, "spent": 0},
					"transactions": [{"hash":"tx0"}]
				}
			},
			"context": {"code": 200}
		}`)
	}))
	defer srv.Close()

	info, err := newTestClient(srv.URL).AddressDashboard(context.Background(), "t1abc")
	if err != nil {
		t.Fatalf("AddressDashboard returned error: %v", err)
	}
	if len(info.RecentTransactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(info.RecentTransactions))
	}
	if !info.Balance.IsZero() {
		t.Fatalf("expected zero balance, got %s", info.Balance)
	}
}

func TestAddressDashboardUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).AddressDashboard(context.Background(), "t1abc")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestAddressDashboardMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).AddressDashboard(context.Background(), "t1abc")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestAddressDashboardMissingAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {}, "context": {"code": 200}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).AddressDashboard(context.Background(), "t1abc")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
