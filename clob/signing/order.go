package signing

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/betbot/polytrade/clob/types"
)

// OrderData carries the twelve fields bound into an order proof.
// Signer is always the address holding the private key; for proxy wallet
// modes it differs from Maker.
type OrderData struct {
	Salt          int64
	Maker         string
	Signer        string
	Taker         string
	TokenID       *big.Int
	MakerAmount   *big.Int
	TakerAmount   *big.Int
	Expiration    *big.Int
	Nonce         *big.Int
	FeeRateBps    *big.Int
	Side          types.Side
	SignatureType types.SignatureType
}

// orderTypedData builds the typed-data structure for an order proof bound to
// the given exchange contract.
func orderTypedData(chainID types.Chain, exchangeAddress string, o *OrderData) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Order": {
				{Name: "salt", Type: "uint256"},
				{Name: "maker", Type: "address"},
				{Name: "signer", Type: "address"},
				{Name: "taker", Type: "address"},
				{Name: "tokenId", Type: "uint256"},
				{Name: "makerAmount", Type: "uint256"},
				{Name: "takerAmount", Type: "uint256"},
				{Name: "expiration", Type: "uint256"},
				{Name: "nonce", Type: "uint256"},
				{Name: "feeRateBps", Type: "uint256"},
				{Name: "side", Type: "uint8"},
				{Name: "signatureType", Type: "uint8"},
			},
		},
		PrimaryType: "Order",
		Domain: apitypes.TypedDataDomain{
			Name:              OrderDomainName,
			Version:           OrderDomainVersion,
			ChainId:           math.NewHexOrDecimal256(int64(chainID)),
			VerifyingContract: exchangeAddress,
		},
		Message: map[string]interface{}{
			"salt":          big.NewInt(o.Salt),
			"maker":         common.HexToAddress(o.Maker).Hex(),
			"signer":        common.HexToAddress(o.Signer).Hex(),
			"taker":         common.HexToAddress(o.Taker).Hex(),
			"tokenId":       o.TokenID,
			"makerAmount":   o.MakerAmount,
			"takerAmount":   o.TakerAmount,
			"expiration":    o.Expiration,
			"nonce":         o.Nonce,
			"feeRateBps":    o.FeeRateBps,
			"side":          big.NewInt(int64(o.Side.Value())),
			"signatureType": big.NewInt(int64(o.SignatureType)),
		},
	}
}

// BuildOrderSignature signs an order proof under the exchange domain.
// Output is the 65-byte signature, 0x-prefixed hex, with v in {27, 28}.
func BuildOrderSignature(privateKey *ecdsa.PrivateKey, chainID types.Chain, exchangeAddress string, o *OrderData) (string, error) {
	typedData := orderTypedData(chainID, exchangeAddress, o)

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return "", errors.Wrap(err, "encode order typed data")
	}
	sig, err := crypto.Sign(hash, privateKey)
	if err != nil {
		return "", errors.Wrap(err, "sign order")
	}
	if sig[64] < 27 {
		sig[64] += 27
	}
	return hexutil.Encode(sig), nil
}
