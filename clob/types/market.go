package types

// OrderSummary is one price level of a book side.
type OrderSummary struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// OrderBookSummary is the reply of GET /book.
type OrderBookSummary struct {
	Market    string         `json:"market"`
	AssetID   string         `json:"asset_id"`
	Timestamp string         `json:"timestamp"`
	Hash      string         `json:"hash"`
	Bids      []OrderSummary `json:"bids"`
	Asks      []OrderSummary `json:"asks"`
}

// PriceResponse is the reply of GET /price.
type PriceResponse struct {
	Price string `json:"price"`
}

// BalanceAllowanceResponse is the reply of GET /balance-allowance.
// Balance is in 6-decimal base units of the asset.
type BalanceAllowanceResponse struct {
	Balance    string            `json:"balance"`
	Allowances map[string]string `json:"allowances"`
}
