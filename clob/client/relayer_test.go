package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/betbot/polytrade/clob/signing"
	"github.com/betbot/polytrade/clob/types"
)

func TestNewRelayerClient_RequiresBuilderCreds(t *testing.T) {
	if _, err := NewRelayerClient("http://localhost:0", nil); err == nil {
		t.Fatal("nil builder creds must be rejected")
	}
	if _, err := NewRelayerClient("http://localhost:0", &types.BuilderCreds{Key: "k"}); err == nil {
		t.Fatal("incomplete builder creds must be rejected")
	}
}

func TestRelayerClient_DeploySafe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != EndpointDeploySafe {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)

		var req map[string]string
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("parse body: %v", err)
		}
		if req["safeAddress"] != "0xsafe" {
			t.Errorf("safeAddress got=%s", req["safeAddress"])
		}

		// Builder proof over the exact transmitted bytes.
		ts := r.Header.Get(types.HeaderBuilderTimestamp)
		want := signing.BuildBuilderHmacSignature(testBuilderCreds.Secret, ts,
			http.MethodPost, EndpointDeploySafe, string(body))
		if got := r.Header.Get(types.HeaderBuilderSignature); got != want {
			t.Errorf("builder signature mismatch")
		}
		// No user-level headers on relayer calls.
		if r.Header.Get(types.HeaderPolyAPIKey) != "" {
			t.Error("relayer calls must not carry user headers")
		}

		json.NewEncoder(w).Encode(RelayerTxResponse{
			TransactionID:   "tx-1",
			TransactionHash: "0xhash",
			State:           "STATE_EXECUTED",
		})
	}))
	t.Cleanup(srv.Close)

	rc, err := NewRelayerClient(srv.URL, testBuilderCreds)
	if err != nil {
		t.Fatalf("new relayer client: %v", err)
	}
	resp, err := rc.DeploySafe(context.Background(), "0xsafe")
	if err != nil {
		t.Fatalf("deploy safe: %v", err)
	}
	if resp.TransactionHash != "0xhash" {
		t.Fatalf("tx hash got=%s", resp.TransactionHash)
	}
}

func TestRelayerClient_ApproveCollateral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointApproveAllowance {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		for _, field := range []string{"safeAddress", "token", "spender", "amount"} {
			if req[field] == "" {
				t.Errorf("missing field %s", field)
			}
		}
		json.NewEncoder(w).Encode(RelayerTxResponse{TransactionHash: "0xapprove"})
	}))
	t.Cleanup(srv.Close)

	rc, err := NewRelayerClient(srv.URL, testBuilderCreds)
	if err != nil {
		t.Fatalf("new relayer client: %v", err)
	}
	resp, err := rc.ApproveCollateral(context.Background(), "0xsafe",
		PolygonMainnetContracts.Collateral, PolygonMainnetContracts.Exchange, "1000000")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if resp.TransactionHash != "0xapprove" {
		t.Fatalf("tx hash got=%s", resp.TransactionHash)
	}
}
