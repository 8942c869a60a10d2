package types

import "testing"

func TestQuantizeAmounts(t *testing.T) {
	cases := []struct {
		name           string
		price, size    float64
		wantToken      string
		wantCollateral string
	}{
		{"whole share at half", 0.5, 1.0, "1000000", "500000"},
		{"token floors to step", 0.555, 1.234567, "1230000", "682600"},
		{"exact collateral", 0.7, 0.5, "500000", "350000"},
		{"tiny order floors collateral to zero", 0.001, 0.01, "10000", "0"},
		{"dust size floors token to zero", 0.5, 0.001, "0", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, collateral := QuantizeAmounts(tc.price, tc.size)
			if token != tc.wantToken || collateral != tc.wantCollateral {
				t.Fatalf("got token=%s collateral=%s, want %s/%s",
					token, collateral, tc.wantToken, tc.wantCollateral)
			}
		})
	}
}

func TestNewOrder_LegAssignment(t *testing.T) {
	buy, err := NewOrder("1234", 0.5, 1.0, SideBuy, ZeroAddress)
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	// BUY gives collateral, receives tokens.
	if buy.MakerAmount != "500000" || buy.TakerAmount != "1000000" {
		t.Fatalf("buy legs got maker=%s taker=%s", buy.MakerAmount, buy.TakerAmount)
	}
	if buy.SideValue != 0 {
		t.Fatalf("buy side value got=%d", buy.SideValue)
	}

	sell, err := NewOrder("1234", 0.5, 1.0, SideSell, ZeroAddress)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if sell.MakerAmount != "1000000" || sell.TakerAmount != "500000" {
		t.Fatalf("sell legs got maker=%s taker=%s", sell.MakerAmount, sell.TakerAmount)
	}
	if sell.SideValue != 1 {
		t.Fatalf("sell side value got=%d", sell.SideValue)
	}
}

func TestNewOrder_QuantizeIdempotent(t *testing.T) {
	o, err := NewOrder("1234", 0.555, 1.234567, SideBuy, ZeroAddress)
	if err != nil {
		t.Fatalf("new order: %v", err)
	}
	maker, taker := o.MakerAmount, o.TakerAmount
	o.quantize()
	if o.MakerAmount != maker || o.TakerAmount != taker {
		t.Fatalf("requantize changed amounts: %s/%s -> %s/%s",
			maker, taker, o.MakerAmount, o.TakerAmount)
	}
}

func TestNewOrder_Validation(t *testing.T) {
	cases := []struct {
		name    string
		tokenID string
		price   float64
		size    float64
		side    Side
	}{
		{"bad side", "1234", 0.5, 1, Side("HOLD")},
		{"zero price", "1234", 0, 1, SideBuy},
		{"price above one", "1234", 1.01, 1, SideBuy},
		{"zero size", "1234", 0.5, 0, SideBuy},
		{"negative size", "1234", 0.5, -1, SideSell},
		{"missing token", "", 0.5, 1, SideBuy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewOrder(tc.tokenID, tc.price, tc.size, tc.side, ZeroAddress); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewOrder_PriceOfOneIsLegal(t *testing.T) {
	o, err := NewOrder("1234", 1.0, 2.0, SideBuy, ZeroAddress)
	if err != nil {
		t.Fatalf("price 1.0 must be accepted: %v", err)
	}
	if o.MakerAmount != "2000000" || o.TakerAmount != "2000000" {
		t.Fatalf("legs got maker=%s taker=%s", o.MakerAmount, o.TakerAmount)
	}
}
