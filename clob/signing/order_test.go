package signing

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/betbot/polytrade/clob/types"
)

func testOrderData(signer string) *OrderData {
	return &OrderData{
		Salt:          123456789,
		Maker:         signer,
		Signer:        signer,
		Taker:         types.ZeroAddress,
		TokenID:       big.NewInt(1234),
		MakerAmount:   big.NewInt(500000),
		TakerAmount:   big.NewInt(1000000),
		Expiration:    big.NewInt(0),
		Nonce:         big.NewInt(0),
		FeeRateBps:    big.NewInt(0),
		Side:          types.SideBuy,
		SignatureType: types.SignatureTypeEOA,
	}
}

func TestBuildOrderSignature(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	signer := AddressFromPrivateKey(key).Hex()
	exchange := "0x4bFb41d5B3570DeFd03C39a9A4D8dE6Bd8B8982E"

	sig, err := BuildOrderSignature(key, types.ChainPolygon, exchange, testOrderData(signer))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !strings.HasPrefix(sig, "0x") || len(sig) != 2+65*2 {
		t.Fatalf("unexpected signature form: %q", sig)
	}
	// v byte in wire form.
	last := sig[len(sig)-2:]
	if last != "1b" && last != "1c" {
		t.Fatalf("v byte got=%s want 1b or 1c", last)
	}

	again, err := BuildOrderSignature(key, types.ChainPolygon, exchange, testOrderData(signer))
	if err != nil {
		t.Fatalf("sign again: %v", err)
	}
	if sig != again {
		t.Fatal("same order must produce the same signature")
	}
}

func TestBuildOrderSignature_BindsFields(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	signer := AddressFromPrivateKey(key).Hex()
	exchange := "0x4bFb41d5B3570DeFd03C39a9A4D8dE6Bd8B8982E"
	negRisk := "0xC5d563A36AE78145C45a50134d48A1215220f80a"

	base, err := BuildOrderSignature(key, types.ChainPolygon, exchange, testOrderData(signer))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	other := testOrderData(signer)
	other.MakerAmount = big.NewInt(500001)
	if sig, _ := BuildOrderSignature(key, types.ChainPolygon, exchange, other); sig == base {
		t.Fatal("maker amount must be bound")
	}

	other = testOrderData(signer)
	other.Side = types.SideSell
	if sig, _ := BuildOrderSignature(key, types.ChainPolygon, exchange, other); sig == base {
		t.Fatal("side must be bound")
	}

	if sig, _ := BuildOrderSignature(key, types.ChainPolygon, negRisk, testOrderData(signer)); sig == base {
		t.Fatal("verifying contract must be bound")
	}
}
