package client

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/betbot/polytrade/clob/signing"
	"github.com/betbot/polytrade/clob/types"
)

// CreateOrderOptions tune signing and submission of a single order.
type CreateOrderOptions struct {
	OrderType types.OrderType // default GTC
	NegRisk   bool            // bind the signature to the neg-risk exchange
	PostOnly  bool
}

// SignOrder turns a validated order intent into the wire payload: the order
// fields under the exchange-mandated names, this wallet mode's owner field,
// the lifetime policy tag, and the post-only flag. The payload must not be
// reused across submissions; build a fresh one (with a fresh salt) per
// attempt.
func (c *Client) SignOrder(order *types.Order, opts CreateOrderOptions) (*types.OrderPayload, error) {
	if c.privateKey == nil {
		return nil, ErrCredentialsRequired
	}
	contracts, err := GetContractConfig(c.chainID)
	if err != nil {
		return nil, err
	}
	exchange := contracts.Exchange
	if opts.NegRisk {
		exchange = contracts.NegRiskExchange
	}
	orderType := opts.OrderType
	if orderType == "" {
		orderType = types.OrderTypeGTC
	}

	salt := order.Salt
	if salt == 0 {
		salt = time.Now().UnixNano()
	}

	tokenID, ok := new(big.Int).SetString(order.TokenID, 10)
	if !ok {
		return nil, errors.Errorf("invalid token id: %s", order.TokenID)
	}
	makerAmount, ok := new(big.Int).SetString(order.MakerAmount, 10)
	if !ok {
		return nil, errors.Errorf("invalid maker amount: %s", order.MakerAmount)
	}
	takerAmount, ok := new(big.Int).SetString(order.TakerAmount, 10)
	if !ok {
		return nil, errors.Errorf("invalid taker amount: %s", order.TakerAmount)
	}

	maker := order.Maker
	if maker == "" {
		maker = c.funder
	}
	signer := signing.AddressFromPrivateKey(c.privateKey).Hex()

	data := &signing.OrderData{
		Salt:          salt,
		Maker:         maker,
		Signer:        signer,
		Taker:         types.ZeroAddress,
		TokenID:       tokenID,
		MakerAmount:   makerAmount,
		TakerAmount:   takerAmount,
		Expiration:    big.NewInt(order.Expiration),
		Nonce:         big.NewInt(order.Nonce),
		FeeRateBps:    big.NewInt(order.FeeRateBps),
		Side:          order.Side,
		SignatureType: order.SignatureType,
	}

	sig, err := signing.BuildOrderSignature(c.privateKey, c.chainID, exchange, data)
	if err != nil {
		return nil, err
	}

	owner, err := c.ownerField(order.SignatureType)
	if err != nil {
		return nil, err
	}

	if order.MakerAmount == "0" || order.TakerAmount == "0" {
		c.log.Warnf("order for token %s has a zero leg (maker=%s taker=%s); submitting anyway",
			order.TokenID, order.MakerAmount, order.TakerAmount)
	}

	return &types.OrderPayload{
		Order: types.SignedOrder{
			Salt:          salt,
			Maker:         maker,
			Signer:        signer,
			Taker:         types.ZeroAddress,
			TokenID:       order.TokenID,
			MakerAmount:   order.MakerAmount,
			TakerAmount:   order.TakerAmount,
			Expiration:    strconv.FormatInt(order.Expiration, 10),
			Nonce:         strconv.FormatInt(order.Nonce, 10),
			FeeRateBps:    strconv.FormatInt(order.FeeRateBps, 10),
			Side:          order.Side,
			SignatureType: int(order.SignatureType),
			Signature:     sig,
		},
		Owner:     owner,
		OrderType: orderType,
		PostOnly:  opts.PostOnly,
	}, nil
}

// ownerField tracks wallet mode exactly: delegated modes own orders by the
// settlement wallet's address, direct mode by the user api key. A mismatch
// here is rejected server-side as an authentication failure.
func (c *Client) ownerField(sigType types.SignatureType) (string, error) {
	if sigType == types.SignatureTypeEOA {
		user, _ := c.credentials()
		if !user.Valid() {
			return "", errors.Wrap(ErrCredentialsRequired, "direct-wallet orders need user api credentials for the owner field")
		}
		return user.Key, nil
	}
	return c.funder, nil
}

// PostOrder submits a signed payload. The payload is serialized exactly
// once; the same bytes feed the request HMAC and the wire.
//
// Exchange rejections come back as a structured response (Success=false,
// ErrorMsg set), not as an error, so batch submission can continue past
// individual failures.
func (c *Client) PostOrder(ctx context.Context, payload *types.OrderPayload) (*types.OrderResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "serialize order payload")
	}
	bodyStr := string(body)
	headers := c.buildHeaders(http.MethodPost, EndpointPostOrder, bodyStr)

	var out types.OrderResponse
	if err := c.http.do(ctx, http.MethodPost, EndpointPostOrder, headers, nil, bodyStr, &out); err != nil {
		var re *RequestError
		if errors.As(err, &re) {
			c.log.Warnf("order rejected: %s", re.Body)
			return &types.OrderResponse{Success: false, ErrorMsg: re.Body}, nil
		}
		return nil, err
	}
	return &out, nil
}

// CreateAndPostOrder is the one-shot path: quantized intent in, exchange
// response out.
func (c *Client) CreateAndPostOrder(ctx context.Context, order *types.Order, opts CreateOrderOptions) (*types.OrderResponse, error) {
	payload, err := c.SignOrder(order, opts)
	if err != nil {
		return nil, err
	}
	return c.PostOrder(ctx, payload)
}

// CancelOrder cancels one order by id.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (*types.CancelResponse, error) {
	body, err := json.Marshal(map[string]string{"orderID": orderID})
	if err != nil {
		return nil, err
	}
	return c.deleteWithBody(ctx, EndpointCancelOrder, string(body))
}

// CancelOrders cancels a batch of orders by id.
func (c *Client) CancelOrders(ctx context.Context, orderIDs []string) (*types.CancelResponse, error) {
	body, err := json.Marshal(orderIDs)
	if err != nil {
		return nil, err
	}
	return c.deleteWithBody(ctx, EndpointCancelOrders, string(body))
}

// CancelAll cancels every open order of this wallet.
func (c *Client) CancelAll(ctx context.Context) (*types.CancelResponse, error) {
	return c.deleteWithBody(ctx, EndpointCancelAll, "")
}

// CancelMarketOrders cancels open orders filtered by market condition id
// and/or asset id. Both filters are optional.
func (c *Client) CancelMarketOrders(ctx context.Context, market, assetID string) (*types.CancelResponse, error) {
	filter := make(map[string]string)
	if market != "" {
		filter["market"] = market
	}
	if assetID != "" {
		filter["asset_id"] = assetID
	}
	body := ""
	if len(filter) > 0 {
		b, err := json.Marshal(filter)
		if err != nil {
			return nil, err
		}
		body = string(b)
	}
	return c.deleteWithBody(ctx, EndpointCancelMarketOrders, body)
}

func (c *Client) deleteWithBody(ctx context.Context, endpoint, body string) (*types.CancelResponse, error) {
	headers := c.buildHeaders(http.MethodDelete, endpoint, body)
	var out types.CancelResponse
	if err := c.http.do(ctx, http.MethodDelete, endpoint, headers, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOpenOrders lists this wallet's open orders. Paginated responses are
// unwrapped to the bare slice.
func (c *Client) GetOpenOrders(ctx context.Context) ([]types.OpenOrder, error) {
	headers := c.buildHeaders(http.MethodGet, EndpointGetOpenOrders, "")
	var raw json.RawMessage
	if err := c.http.do(ctx, http.MethodGet, EndpointGetOpenOrders, headers, nil, "", &raw); err != nil {
		return nil, err
	}
	var orders []types.OpenOrder
	if err := unwrapData(raw, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches one order by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*types.OpenOrder, error) {
	endpoint := EndpointGetOrder + orderID
	headers := c.buildHeaders(http.MethodGet, endpoint, "")
	var out types.OpenOrder
	if err := c.http.do(ctx, http.MethodGet, endpoint, headers, nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTrades lists this wallet's trades, newest first. tokenID is optional.
func (c *Client) GetTrades(ctx context.Context, tokenID string, limit int) ([]types.Trade, error) {
	if limit <= 0 {
		limit = 100
	}
	params := map[string]string{"limit": strconv.Itoa(limit)}
	if tokenID != "" {
		params["token_id"] = tokenID
	}
	headers := c.buildHeaders(http.MethodGet, EndpointGetTrades, "")
	var raw json.RawMessage
	if err := c.http.do(ctx, http.MethodGet, EndpointGetTrades, headers, params, "", &raw); err != nil {
		return nil, err
	}
	var trades []types.Trade
	if err := unwrapData(raw, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

// unwrapData handles both bare-array responses and the paginated
// {"data": [...]} envelope.
func unwrapData(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	trimmed := raw
	for len(trimmed) > 0 && (trimmed[0] == ' ' || trimmed[0] == '\n' || trimmed[0] == '\t' || trimmed[0] == '\r') {
		trimmed = trimmed[1:]
	}
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return errors.Wrap(err, "parse paginated envelope")
		}
		if len(envelope.Data) == 0 {
			return nil
		}
		return json.Unmarshal(envelope.Data, out)
	}
	return json.Unmarshal(trimmed, out)
}
