package types

// Side is the order direction.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Value returns the on-chain representation of the side (BUY=0, SELL=1).
func (s Side) Value() int {
	if s == SideSell {
		return 1
	}
	return 0
}

// OrderType is the order lifetime policy sent to the exchange.
type OrderType string

const (
	OrderTypeGTC OrderType = "GTC" // Good Till Cancel
	OrderTypeFOK OrderType = "FOK" // Fill or Kill
	OrderTypeGTD OrderType = "GTD" // Good Till Date
	OrderTypeFAK OrderType = "FAK" // Fill and Kill
)

// Chain is the blockchain network id.
type Chain int

const (
	ChainPolygon Chain = 137
	ChainAmoy    Chain = 80002
)

// SignatureType selects the wallet mode an order settles under.
type SignatureType int

const (
	// SignatureTypeEOA is a direct wallet: the signing key owns the funds.
	SignatureTypeEOA SignatureType = 0
	// SignatureTypeProxy is a Magic/email proxy wallet.
	SignatureTypeProxy SignatureType = 1
	// SignatureTypeGnosisSafe is a Safe proxy wallet: funds sit at the Safe
	// address while the owning EOA produces signatures.
	SignatureTypeGnosisSafe SignatureType = 2
)

// AssetType for balance-allowance queries.
type AssetType string

const (
	AssetTypeCollateral  AssetType = "COLLATERAL"
	AssetTypeConditional AssetType = "CONDITIONAL"
)

// ApiKeyCreds are user-level API credentials. They prove that a specific
// wallet derived an authenticated session.
type ApiKeyCreds struct {
	Key        string `json:"apiKey"`
	Secret     string `json:"secret"`
	Passphrase string `json:"passphrase"`
}

// Valid reports whether all three fields are present.
func (c *ApiKeyCreds) Valid() bool {
	return c != nil && c.Key != "" && c.Secret != "" && c.Passphrase != ""
}

// BuilderCreds are builder-program credentials. They prove delegated
// attribution authority and are orthogonal to wallet ownership.
type BuilderCreds struct {
	Key        string `json:"apiKey"`
	Secret     string `json:"secret"`
	Passphrase string `json:"passphrase"`
}

// Valid reports whether all three fields are present.
func (c *BuilderCreds) Valid() bool {
	return c != nil && c.Key != "" && c.Secret != "" && c.Passphrase != ""
}

// ApiKeyRaw is the credential shape returned by the auth endpoints.
type ApiKeyRaw struct {
	ApiKey     string `json:"apiKey"`
	Secret     string `json:"secret"`
	Passphrase string `json:"passphrase"`
}
