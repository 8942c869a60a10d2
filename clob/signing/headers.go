package signing

import (
	"crypto/ecdsa"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/betbot/polytrade/clob/types"
)

// CreateL1Headers signs the auth attestation and packs it into the header
// set the credential-issuance endpoints expect. A nil timestamp means now.
func CreateL1Headers(privateKey *ecdsa.PrivateKey, chainID types.Chain, nonce int64, timestamp *int64) (*types.L1Headers, error) {
	ts := time.Now().Unix()
	if timestamp != nil {
		ts = *timestamp
	}

	sig, err := BuildAuthSignature(privateKey, chainID, ts, nonce)
	if err != nil {
		return nil, errors.Wrap(err, "build auth signature")
	}

	return &types.L1Headers{
		Address:   AddressFromPrivateKey(privateKey).Hex(),
		Signature: sig,
		Timestamp: strconv.FormatInt(ts, 10),
		Nonce:     strconv.FormatInt(nonce, 10),
	}, nil
}
