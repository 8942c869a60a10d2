package signing

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"

	"github.com/betbot/polytrade/clob/types"
)

// authTypedData builds the ClobAuth typed-data structure for the given
// signer address. The auth domain has no verifying contract: the proof binds
// a wallet, not a contract interaction.
func authTypedData(address common.Address, chainID types.Chain, timestamp int64, nonce int64) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
			},
			"ClobAuth": {
				{Name: "address", Type: "address"},
				{Name: "timestamp", Type: "string"},
				{Name: "nonce", Type: "uint256"},
				{Name: "message", Type: "string"},
			},
		},
		PrimaryType: "ClobAuth",
		Domain: apitypes.TypedDataDomain{
			Name:    AuthDomainName,
			Version: AuthDomainVersion,
			ChainId: math.NewHexOrDecimal256(int64(chainID)),
		},
		Message: map[string]interface{}{
			"address":   address.Hex(),
			"timestamp": fmt.Sprintf("%d", timestamp),
			"nonce":     big.NewInt(nonce),
			"message":   AttestationMsg,
		},
	}
}

// BuildAuthSignature signs the wallet-ownership attestation used for
// credential issuance. Identical inputs always produce an identical
// signature; any encoding or signing failure is wrapped into one error.
func BuildAuthSignature(privateKey *ecdsa.PrivateKey, chainID types.Chain, timestamp int64, nonce int64) (string, error) {
	address := crypto.PubkeyToAddress(privateKey.PublicKey)
	typedData := authTypedData(address, chainID, timestamp, nonce)

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return "", errors.Wrap(err, "encode auth typed data")
	}
	sig, err := crypto.Sign(hash, privateKey)
	if err != nil {
		return "", errors.Wrap(err, "sign auth message")
	}
	// Ethereum wire form uses v in {27, 28}.
	if sig[64] < 27 {
		sig[64] += 27
	}
	return hexutil.Encode(sig), nil
}

// RecoverAuthSigner recovers the address that produced an auth signature for
// the given message fields.
func RecoverAuthSigner(signer common.Address, chainID types.Chain, timestamp int64, nonce int64, sigHex string) (common.Address, error) {
	sig, err := hexutil.Decode(sigHex)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "decode signature")
	}
	if len(sig) != 65 {
		return common.Address{}, errors.Errorf("signature must be 65 bytes, got %d", len(sig))
	}
	typedData := authTypedData(signer, chainID, timestamp, nonce)
	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "encode auth typed data")
	}

	recSig := make([]byte, 65)
	copy(recSig, sig)
	if recSig[64] >= 27 {
		recSig[64] -= 27
	}
	pub, err := crypto.SigToPub(hash, recSig)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "recover public key")
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// AddressFromPrivateKey returns the EOA address controlled by the key.
func AddressFromPrivateKey(privateKey *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(privateKey.PublicKey)
}

// PrivateKeyFromHex parses a hex private key, with or without 0x prefix.
func PrivateKeyFromHex(hexKey string) (*ecdsa.PrivateKey, error) {
	if len(hexKey) >= 2 && hexKey[0:2] == "0x" {
		hexKey = hexKey[2:]
	}
	return crypto.HexToECDSA(hexKey)
}
