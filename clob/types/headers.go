package types

// Header names are exact, case-sensitive strings; the server matches them
// verbatim.
const (
	HeaderPolyAddress    = "POLY_ADDRESS"
	HeaderPolySignature  = "POLY_SIGNATURE"
	HeaderPolyTimestamp  = "POLY_TIMESTAMP"
	HeaderPolyNonce      = "POLY_NONCE"
	HeaderPolyAPIKey     = "POLY_API_KEY"
	HeaderPolyPassphrase = "POLY_PASSPHRASE"

	HeaderBuilderAPIKey     = "POLY_BUILDER_API_KEY"
	HeaderBuilderTimestamp  = "POLY_BUILDER_TIMESTAMP"
	HeaderBuilderPassphrase = "POLY_BUILDER_PASSPHRASE"
	HeaderBuilderSignature  = "POLY_BUILDER_SIGNATURE"
)

// L1Headers authenticate a wallet-ownership proof (credential issuance).
type L1Headers struct {
	Address   string
	Signature string
	Timestamp string
	Nonce     string
}

// Map returns the header set in wire form.
func (h *L1Headers) Map() map[string]string {
	return map[string]string{
		HeaderPolyAddress:   h.Address,
		HeaderPolySignature: h.Signature,
		HeaderPolyTimestamp: h.Timestamp,
		HeaderPolyNonce:     h.Nonce,
	}
}
