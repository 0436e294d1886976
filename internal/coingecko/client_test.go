package coingecko

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
	return New(config.RatesConfig{BaseURL: baseURL, TimeoutMs: 2000})
}

func TestSimplePrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/simple/price" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("ids") != "zcash" || r.URL.Query().Get("vs_currencies") != "usd" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{"zcash": {"usd": 34.21}}`)
	}))
	defer srv.Close()

	rate, err := newTestClient(srv.URL).SimplePrice(context.Background())
	if err != nil {
		t.Fatalf("SimplePrice returned error: %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("34.21")) {
		t.Fatalf("expected 34.21, got %s", rate)
	}
}

func TestSimplePriceUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SimplePrice(context.Background())
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestSimplePriceMissingPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SimplePrice(context.Background())
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
