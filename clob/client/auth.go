package client

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/pkg/errors"

	"github.com/betbot/polytrade/clob/signing"
	"github.com/betbot/polytrade/clob/types"
)

// CreateAPIKey asks the exchange to mint fresh user credentials for this
// wallet. Fails when the wallet already has a key.
func (c *Client) CreateAPIKey(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error) {
	return c.issueAPIKey(ctx, http.MethodPost, EndpointCreateAPIKey, nonce)
}

// DeriveAPIKey recovers the wallet's existing credentials.
func (c *Client) DeriveAPIKey(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error) {
	return c.issueAPIKey(ctx, http.MethodGet, EndpointDeriveAPIKey, nonce)
}

// CreateOrDeriveAPIKey runs the two-step issuance chain: create first, and
// on its failure derive. The two are mutually exclusive server-side states,
// so exactly one of them succeeds for a healthy wallet. The result is also
// installed on the client.
func (c *Client) CreateOrDeriveAPIKey(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error) {
	creds, err := c.CreateAPIKey(ctx, nonce)
	if err != nil {
		c.log.Debugf("create api key failed (%v), deriving instead", err)
		creds, err = c.DeriveAPIKey(ctx, nonce)
		if err != nil {
			return nil, errors.Wrap(err, "derive api key")
		}
	}
	c.SetAPICredentials(creds)
	return creds, nil
}

func (c *Client) issueAPIKey(ctx context.Context, method, endpoint string, nonce int64) (*types.ApiKeyCreds, error) {
	if err := c.canL1Auth(); err != nil {
		return nil, err
	}

	l1, err := signing.CreateL1Headers(c.privateKey, c.chainID, nonce, nil)
	if err != nil {
		return nil, err
	}

	var raw types.ApiKeyRaw
	if err := c.http.do(ctx, method, endpoint, l1.Map(), nil, "", &raw); err != nil {
		return nil, err
	}
	creds := &types.ApiKeyCreds{
		Key:        raw.ApiKey,
		Secret:     raw.Secret,
		Passphrase: raw.Passphrase,
	}
	if !creds.Valid() {
		return nil, errors.New("auth endpoint returned incomplete credentials")
	}
	return creds, nil
}

// LoadCredentials reads user credentials from a JSON file
// ({"apiKey": ..., "secret": ..., "passphrase": ...}).
func LoadCredentials(path string) (*types.ApiKeyCreds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read credentials")
	}
	var creds types.ApiKeyCreds
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, errors.Wrapf(err, "parse credentials %s", path)
	}
	return &creds, nil
}

// SaveCredentials writes user credentials to a JSON file, owner-readable
// only.
func SaveCredentials(path string, creds *types.ApiKeyCreds) error {
	if !creds.Valid() {
		return errors.New("refusing to save incomplete credentials")
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
