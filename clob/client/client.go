package client

import (
	"crypto/ecdsa"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/betbot/polytrade/clob/signing"
	"github.com/betbot/polytrade/clob/types"
	"github.com/betbot/polytrade/pkg/cache"
	"github.com/betbot/polytrade/pkg/config"
	"github.com/betbot/polytrade/pkg/logger"
)

const (
	balanceCacheTTL = 30 * time.Second
	priceCacheTTL   = 5 * time.Second
)

// Client talks to the CLOB API for one wallet.
//
// Credentials are mutable shared state: either, both, or neither set may be
// present at any time, and each set is replaced as a whole under the lock.
// All request methods are blocking; callers that need concurrency offload
// onto their own goroutines.
type Client struct {
	host          string
	chainID       types.Chain
	signatureType types.SignatureType
	funder        string
	privateKey    *ecdsa.PrivateKey
	rpcURL        string

	http    *httpClient
	balance *cache.BalanceCache
	prices  *cache.PriceCache
	log     *logrus.Entry

	mu           sync.RWMutex
	userCreds    *types.ApiKeyCreds
	builderCreds *types.BuilderCreds
}

// Option tweaks client construction.
type Option func(*Client)

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = newHTTPClient(c.host, d, c.http.retryCount) }
}

// WithRetryCount sets the transport retry budget.
func WithRetryCount(n int) Option {
	return func(c *Client) { c.http = newHTTPClient(c.host, c.http.rc.GetClient().Timeout, n) }
}

// WithRPCURL overrides the chain RPC endpoint used by the on-chain balance
// fallback.
func WithRPCURL(url string) Option {
	return func(c *Client) { c.rpcURL = url }
}

// WithAPICredentials seeds user credentials at construction.
func WithAPICredentials(creds *types.ApiKeyCreds) Option {
	return func(c *Client) { c.userCreds = creds }
}

// WithBuilderCredentials seeds builder credentials at construction.
func WithBuilderCredentials(creds *types.BuilderCreds) Option {
	return func(c *Client) { c.builderCreds = creds }
}

// NewClient builds a client. funder is the settlement wallet: for proxy
// modes it is the Safe/proxy address, for direct mode it may be empty and
// defaults to the signing key's address.
func NewClient(host string, chainID types.Chain, privateKey *ecdsa.PrivateKey, signatureType types.SignatureType, funder string, opts ...Option) *Client {
	c := &Client{
		host:          strings.TrimSuffix(host, "/"),
		chainID:       chainID,
		signatureType: signatureType,
		funder:        funder,
		privateKey:    privateKey,
		rpcURL:        config.DefaultRPCURL,
		http:          newHTTPClient(host, defaultTimeout, defaultRetryCount),
		balance:       cache.NewBalanceCache(balanceCacheTTL),
		prices:        cache.NewPriceCache(priceCacheTTL),
		log:           logger.WithField("component", "clob"),
	}
	if c.funder == "" && privateKey != nil {
		c.funder = signing.AddressFromPrivateKey(privateKey).Hex()
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Host returns the base host.
func (c *Client) Host() string { return c.host }

// ChainID returns the configured chain.
func (c *Client) ChainID() types.Chain { return c.chainID }

// Funder returns the settlement wallet address.
func (c *Client) Funder() string { return c.funder }

// Address returns the signing key's address.
func (c *Client) Address() (common.Address, error) {
	if c.privateKey == nil {
		return common.Address{}, ErrCredentialsRequired
	}
	return signing.AddressFromPrivateKey(c.privateKey), nil
}

// SetAPICredentials atomically replaces the user credential set.
func (c *Client) SetAPICredentials(creds *types.ApiKeyCreds) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userCreds = creds
}

// SetBuilderCredentials atomically replaces the builder credential set.
func (c *Client) SetBuilderCredentials(creds *types.BuilderCreds) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builderCreds = creds
}

// credentials snapshots both sets under the read lock so a request sees one
// consistent pair.
func (c *Client) credentials() (*types.ApiKeyCreds, *types.BuilderCreds) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userCreds, c.builderCreds
}

// canL1Auth reports whether the client can sign wallet-ownership proofs.
func (c *Client) canL1Auth() error {
	if c.privateKey == nil {
		return ErrCredentialsRequired
	}
	return nil
}
