package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/betbot/polytrade/clob/signing"
	"github.com/betbot/polytrade/clob/types"
	"github.com/betbot/polytrade/pkg/logger"
)

// RelayerClient talks to the relayer service that deploys proxy safes and
// submits allowance approvals on behalf of a wallet. All relayer calls are
// authenticated with the builder HMAC scheme only.
type RelayerClient struct {
	host    string
	builder *types.BuilderCreds
	http    *httpClient
	log     *logrus.Entry
}

// RelayerTxResponse is the relayer's acknowledgement for a submitted
// transaction.
type RelayerTxResponse struct {
	TransactionID   string `json:"transactionID"`
	TransactionHash string `json:"transactionHash"`
	State           string `json:"state"`
}

// NewRelayerClient builds a relayer client. Builder credentials are
// mandatory; there is no unauthenticated relayer surface.
func NewRelayerClient(host string, builder *types.BuilderCreds) (*RelayerClient, error) {
	if !builder.Valid() {
		return nil, errors.Wrap(ErrCredentialsRequired, "relayer requires builder credentials")
	}
	return &RelayerClient{
		host:    host,
		builder: builder,
		http:    newHTTPClient(host, defaultTimeout, defaultRetryCount),
		log:     logger.WithField("component", "relayer"),
	}, nil
}

// DeploySafe asks the relayer to deploy the proxy safe for a wallet. The
// call is idempotent on the relayer side; re-deploying an existing safe
// returns the existing address.
func (r *RelayerClient) DeploySafe(ctx context.Context, safeAddress string) (*RelayerTxResponse, error) {
	body := map[string]string{"safeAddress": safeAddress}
	return r.post(ctx, EndpointDeploySafe, body)
}

// ApproveCollateral submits a collateral allowance approval for spender
// through the wallet's safe. amount is in base units.
func (r *RelayerClient) ApproveCollateral(ctx context.Context, safeAddress, token, spender, amount string) (*RelayerTxResponse, error) {
	body := map[string]string{
		"safeAddress": safeAddress,
		"token":       token,
		"spender":     spender,
		"amount":      amount,
	}
	return r.post(ctx, EndpointApproveAllowance, body)
}

// ApproveToken submits a conditional-token approval through the wallet's
// safe.
func (r *RelayerClient) ApproveToken(ctx context.Context, safeAddress, tokenID, spender, amount string) (*RelayerTxResponse, error) {
	body := map[string]string{
		"safeAddress": safeAddress,
		"tokenId":     tokenID,
		"spender":     spender,
		"amount":      amount,
	}
	return r.post(ctx, EndpointApproveToken, body)
}

func (r *RelayerClient) post(ctx context.Context, path string, payload any) (*RelayerTxResponse, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal relayer payload")
	}
	body := string(raw)

	headers := r.buildHeaders(http.MethodPost, path, body)
	var out RelayerTxResponse
	if err := r.http.do(ctx, http.MethodPost, path, headers, nil, body, &out); err != nil {
		return nil, err
	}
	r.log.WithFields(logrus.Fields{
		"path": path,
		"tx":   out.TransactionHash,
	}).Info("relayer transaction accepted")
	return &out, nil
}

func (r *RelayerClient) buildHeaders(method, path, body string) map[string]string {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	sig := signing.BuildBuilderHmacSignature(r.builder.Secret, timestamp, method, path, body)
	return map[string]string{
		types.HeaderBuilderAPIKey:     r.builder.Key,
		types.HeaderBuilderTimestamp:  timestamp,
		types.HeaderBuilderPassphrase: r.builder.Passphrase,
		types.HeaderBuilderSignature:  sig,
	}
}
