package client

import (
	"strconv"
	"time"

	"github.com/betbot/polytrade/clob/signing"
	"github.com/betbot/polytrade/clob/types"
)

// buildAuthHeaders assembles the header set for one request. Pure: same
// inputs, same headers.
//
// Two independent proofs may both land on the same request:
//   - builder HMAC, whenever builder credentials exist, regardless of
//     wallet mode;
//   - user HMAC (L2), only in direct-wallet mode (signatureType 0) with
//     valid user credentials. In proxy mode the user proof is never
//     attached even when credentials are present; order placement there is
//     authenticated by the builder layer plus the order's own signature.
func buildAuthHeaders(
	user *types.ApiKeyCreds,
	builder *types.BuilderCreds,
	sigType types.SignatureType,
	address string,
	method, path, body string,
	now int64,
) map[string]string {
	headers := make(map[string]string)
	timestamp := strconv.FormatInt(now, 10)

	if builder.Valid() {
		sig := signing.BuildBuilderHmacSignature(builder.Secret, timestamp, method, path, body)
		headers[types.HeaderBuilderAPIKey] = builder.Key
		headers[types.HeaderBuilderTimestamp] = timestamp
		headers[types.HeaderBuilderPassphrase] = builder.Passphrase
		headers[types.HeaderBuilderSignature] = sig
	}

	if sigType == types.SignatureTypeEOA && user.Valid() {
		sig := signing.BuildUserHmacSignature(user.Secret, timestamp, method, path, body)
		headers[types.HeaderPolyAddress] = address
		headers[types.HeaderPolyAPIKey] = user.Key
		headers[types.HeaderPolyTimestamp] = timestamp
		headers[types.HeaderPolyPassphrase] = user.Passphrase
		headers[types.HeaderPolySignature] = sig
	}

	return headers
}

// buildHeaders snapshots the credential store and stamps the current time.
func (c *Client) buildHeaders(method, path, body string) map[string]string {
	user, builder := c.credentials()
	return buildAuthHeaders(user, builder, c.signatureType, c.funder, method, path, body, time.Now().Unix())
}
