package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/betbot/polytrade/pkg/cache"
)

func TestGetBalance_Passthrough(t *testing.T) {
	const body = `{"balance":"12500000","allowances":{"0xspender":"1000000"}}`
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != EndpointGetBalance {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(body))
	}))

	raw, err := c.GetBalance(context.Background())
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	// The reply is passed through untouched.
	var got, want map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("parse passthrough: %v", err)
	}
	if err := json.Unmarshal([]byte(body), &want); err != nil {
		t.Fatalf("parse expectation: %v", err)
	}
	if len(got) != len(want) || got["balance"] != want["balance"] {
		t.Fatalf("passthrough changed the reply: %v", got)
	}
}

func TestGetCollateralBalance_CachesWithinTTL(t *testing.T) {
	var calls int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointGetBalanceAllowance {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("asset_type") != "COLLATERAL" {
			t.Errorf("asset_type missing: %s", r.URL.RawQuery)
		}
		calls++
		w.Write([]byte(`{"balance":"12500000","allowance":"0"}`))
	}))

	if got := c.GetCollateralBalance(context.Background()); got != 12.5 {
		t.Fatalf("balance got=%v want=12.5", got)
	}
	if got := c.GetCollateralBalance(context.Background()); got != 12.5 {
		t.Fatalf("cached balance got=%v want=12.5", got)
	}
	if calls != 1 {
		t.Fatalf("expected one network call inside the cache window, got %d", calls)
	}
}

func TestGetCollateralBalance_OnChainFallback(t *testing.T) {
	// JSON-RPC stand-in for the chain: eth_call always returns 7 units of
	// 6-decimal collateral.
	rpc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode rpc request: %v", err)
		}
		if req.Method != "eth_call" {
			t.Errorf("unexpected rpc method %s", req.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  "0x00000000000000000000000000000000000000000000000000000000006acfc0",
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(rpc.Close)

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("unauthorized"))
	}), WithRPCURL(rpc.URL))

	if got := c.GetCollateralBalance(context.Background()); got != 7.0 {
		t.Fatalf("on-chain fallback got=%v want=7.0", got)
	}
}

func TestGetCollateralBalance_DegradesToZero(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	// Nothing cached, endpoint down, no auth failure to trigger the chain
	// read: resolve to zero rather than erroring.
	if got := c.GetCollateralBalance(context.Background()); got != 0 {
		t.Fatalf("empty degrade got=%v want=0", got)
	}
}

func TestGetCollateralBalance_StaleValueServes(t *testing.T) {
	var calls int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	// A zero-TTL cache is always expired but still remembers the last value.
	c.balance = cache.NewBalanceCache(0)
	c.balance.Set(3.25)

	if got := c.GetCollateralBalance(context.Background()); got != 3.25 {
		t.Fatalf("stale fallback got=%v want=3.25", got)
	}
	if calls == 0 {
		t.Fatal("expected a refresh attempt before falling back")
	}
}
