package client

import (
	"testing"

	"github.com/betbot/polytrade/clob/signing"
	"github.com/betbot/polytrade/clob/types"
)

var (
	testUserCreds = &types.ApiKeyCreds{
		Key:        "user-key",
		Secret:     "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=",
		Passphrase: "user-pass",
	}
	testBuilderCreds = &types.BuilderCreds{
		Key:        "builder-key",
		Secret:     "builder-secret",
		Passphrase: "builder-pass",
	}
)

func TestBuildAuthHeaders_DirectWallet(t *testing.T) {
	h := buildAuthHeaders(testUserCreds, testBuilderCreds, types.SignatureTypeEOA,
		"0xabc", "POST", "/order", `{"x":1}`, 1700000000)

	// Both proofs attach in direct-wallet mode.
	if h[types.HeaderPolyAPIKey] != "user-key" || h[types.HeaderPolyAddress] != "0xabc" {
		t.Fatalf("user headers missing: %v", h)
	}
	if h[types.HeaderBuilderAPIKey] != "builder-key" {
		t.Fatalf("builder headers missing: %v", h)
	}
	if h[types.HeaderPolyTimestamp] != "1700000000" || h[types.HeaderBuilderTimestamp] != "1700000000" {
		t.Fatalf("timestamps wrong: %v", h)
	}

	wantBuilder := signing.BuildBuilderHmacSignature("builder-secret", "1700000000", "POST", "/order", `{"x":1}`)
	if h[types.HeaderBuilderSignature] != wantBuilder {
		t.Fatal("builder signature does not match the hmac over the same message")
	}
	wantUser := signing.BuildUserHmacSignature(testUserCreds.Secret, "1700000000", "POST", "/order", `{"x":1}`)
	if h[types.HeaderPolySignature] != wantUser {
		t.Fatal("user signature does not match the hmac over the same message")
	}
}

func TestBuildAuthHeaders_ProxyWalletSuppressesUserProof(t *testing.T) {
	h := buildAuthHeaders(testUserCreds, testBuilderCreds, types.SignatureTypeGnosisSafe,
		"0xabc", "POST", "/order", `{"x":1}`, 1700000000)

	if _, ok := h[types.HeaderPolyAPIKey]; ok {
		t.Fatal("user api key must not attach in proxy mode")
	}
	if _, ok := h[types.HeaderPolyAddress]; ok {
		t.Fatal("user address must not attach in proxy mode")
	}
	if h[types.HeaderBuilderAPIKey] != "builder-key" || h[types.HeaderBuilderSignature] == "" {
		t.Fatalf("builder headers must still attach: %v", h)
	}
}

func TestBuildAuthHeaders_MissingCredentials(t *testing.T) {
	if h := buildAuthHeaders(nil, nil, types.SignatureTypeEOA, "0xabc", "GET", "/data/orders", "", 1700000000); len(h) != 0 {
		t.Fatalf("no credentials must produce no auth headers, got %v", h)
	}

	// Builder only.
	h := buildAuthHeaders(nil, testBuilderCreds, types.SignatureTypeEOA, "0xabc", "GET", "/data/orders", "", 1700000000)
	if _, ok := h[types.HeaderPolySignature]; ok {
		t.Fatal("user proof must need user credentials")
	}
	if h[types.HeaderBuilderSignature] == "" {
		t.Fatal("builder proof missing")
	}

	// Incomplete user set behaves like none.
	partial := &types.ApiKeyCreds{Key: "only-key"}
	h = buildAuthHeaders(partial, nil, types.SignatureTypeEOA, "0xabc", "GET", "/data/orders", "", 1700000000)
	if len(h) != 0 {
		t.Fatalf("incomplete credentials must not sign, got %v", h)
	}
}
