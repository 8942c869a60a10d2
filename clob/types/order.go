package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// CollateralDecimals is the base-unit precision of the collateral
	// token (USDC = 6).
	CollateralDecimals = 6

	// ZeroAddress is the taker for book orders (no counterparty).
	ZeroAddress = "0x0000000000000000000000000000000000000000"
)

// Order is a validated order intent. Construct it with NewOrder; the derived
// amounts are computed exactly once there and must not be touched afterwards.
type Order struct {
	TokenID       string
	Price         float64
	Size          float64
	Side          Side
	Maker         string
	Expiration    int64 // unix seconds, 0 = never
	Salt          int64
	Nonce         int64
	FeeRateBps    int64
	SignatureType SignatureType

	// Derived at construction: integer base-unit strings for the two legs.
	MakerAmount string
	TakerAmount string
	SideValue   int
}

// NewOrder validates the intent and derives the base-unit amounts.
//
// The exchange's matching engine only accepts amounts quantized in a fixed
// order: the token leg is floored to 2 decimal places of the human-readable
// quantity first, and the collateral leg is then recomputed from the floored
// token quantity and floored to 4 decimal places. The two steps are not
// reorderable.
func NewOrder(tokenID string, price, size float64, side Side, maker string) (*Order, error) {
	if side != SideBuy && side != SideSell {
		return nil, fmt.Errorf("invalid side: %s", side)
	}
	if price <= 0 || price > 1 {
		return nil, fmt.Errorf("invalid price: %v", price)
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid size: %v", size)
	}
	if tokenID == "" {
		return nil, fmt.Errorf("token id is required")
	}

	o := &Order{
		TokenID:       tokenID,
		Price:         price,
		Size:          size,
		Side:          side,
		Maker:         maker,
		SignatureType: SignatureTypeGnosisSafe,
	}
	o.quantize()
	return o, nil
}

// quantize derives MakerAmount/TakerAmount/SideValue from price, size and
// side. Idempotent: rerunning it never changes the result.
func (o *Order) quantize() {
	tokenAmt, collateralAmt := QuantizeAmounts(o.Price, o.Size)

	if o.Side == SideBuy {
		// BUY gives collateral, receives tokens.
		o.MakerAmount = collateralAmt
		o.TakerAmount = tokenAmt
	} else {
		// SELL gives tokens, receives collateral.
		o.MakerAmount = tokenAmt
		o.TakerAmount = collateralAmt
	}
	o.SideValue = o.Side.Value()
}

// QuantizeAmounts converts a (price, size) pair into exchange-legal integer
// base-unit strings for the token and collateral legs.
//
// A size*price small enough to floor the collateral leg to zero still
// produces an order; whether the exchange accepts such an order is its call,
// not ours.
func QuantizeAmounts(price, size float64) (tokenAmt, collateralAmt string) {
	scale := decimal.New(1, CollateralDecimals)    // 10^6
	tokenStep := decimal.New(1, 4)                 // floor token leg to multiples of 10^4
	collateralStep := decimal.New(1, 2)            // floor collateral leg to multiples of 10^2

	// Step 1: token leg in base units, truncated to 2 decimals of shares.
	tokenRaw := decimal.NewFromFloat(size).Mul(scale)
	tokenBase := tokenRaw.Div(tokenStep).Floor().Mul(tokenStep)

	// Step 2: collateral leg recomputed from the FLOORED token quantity,
	// truncated to 4 decimals of collateral.
	flooredSize := tokenBase.Div(scale)
	collateralRaw := flooredSize.Mul(decimal.NewFromFloat(price)).Mul(scale)
	collateralBase := collateralRaw.Div(collateralStep).Floor().Mul(collateralStep)

	return tokenBase.BigInt().String(), collateralBase.BigInt().String()
}

// SignedOrder is the wire form of an order plus its EIP-712 signature.
// Field names and casing are exchange-mandated; do not reorder.
type SignedOrder struct {
	Salt          int64  `json:"salt"`
	Maker         string `json:"maker"`
	Signer        string `json:"signer"`
	Taker         string `json:"taker"`
	TokenID       string `json:"tokenId"`
	MakerAmount   string `json:"makerAmount"`
	TakerAmount   string `json:"takerAmount"`
	Expiration    string `json:"expiration"`
	Nonce         string `json:"nonce"`
	FeeRateBps    string `json:"feeRateBps"`
	Side          Side   `json:"side"`
	SignatureType int    `json:"signatureType"`
	Signature     string `json:"signature"`
}

// OrderPayload is the body of POST /order. Built once per submission attempt
// and never mutated after signing: the bytes used to compute the request
// HMAC are the bytes transmitted.
type OrderPayload struct {
	Order     SignedOrder `json:"order"`
	Owner     string      `json:"owner"`
	OrderType OrderType   `json:"orderType"`
	PostOnly  bool        `json:"postOnly"`
}

// OrderResponse is the exchange's reply to an order submission. Placement
// failures come back through this struct (Success=false), not as errors, so
// batch submission can continue past individual rejections.
type OrderResponse struct {
	Success           bool     `json:"success"`
	ErrorMsg          string   `json:"errorMsg"`
	OrderID           string   `json:"orderID"`
	TransactionHashes []string `json:"transactionsHashes"`
	Status            string   `json:"status"`
	TakingAmount      string   `json:"takingAmount"`
	MakingAmount      string   `json:"makingAmount"`
}

// OpenOrder as returned by GET /data/orders.
type OpenOrder struct {
	ID              string   `json:"id"`
	Status          string   `json:"status"`
	Owner           string   `json:"owner"`
	MakerAddress    string   `json:"maker_address"`
	Market          string   `json:"market"`
	AssetID         string   `json:"asset_id"`
	Side            string   `json:"side"`
	OriginalSize    string   `json:"original_size"`
	SizeMatched     string   `json:"size_matched"`
	Price           string   `json:"price"`
	AssociateTrades []string `json:"associate_trades"`
	Outcome         string   `json:"outcome"`
	CreatedAt       int64    `json:"created_at"`
	Expiration      string   `json:"expiration"`
	OrderType       string   `json:"order_type"`
}

// Trade as returned by GET /data/trades.
type Trade struct {
	ID         string `json:"id"`
	TakerOrder string `json:"taker_order_id"`
	Market     string `json:"market"`
	AssetID    string `json:"asset_id"`
	Side       string `json:"side"`
	Size       string `json:"size"`
	Price      string `json:"price"`
	Status     string `json:"status"`
	MatchTime  string `json:"match_time"`
	Outcome    string `json:"outcome"`
}

// CancelResponse is the reply shape of the DELETE order endpoints.
type CancelResponse struct {
	Canceled    []string          `json:"canceled"`
	NotCanceled map[string]string `json:"not_canceled"`
}
