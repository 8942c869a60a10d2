package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/betbot/polytrade/clob/types"
)

// GetOrderBook fetches the book for a token. Public endpoint, no auth.
func (c *Client) GetOrderBook(ctx context.Context, tokenID string) (*types.OrderBookSummary, error) {
	var out types.OrderBookSummary
	params := map[string]string{"token_id": tokenID}
	if err := c.http.do(ctx, http.MethodGet, EndpointGetOrderBook, nil, params, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPrice fetches the current market price for a token. Prices are cached
// for a few seconds per token; tight polling loops hit the cache instead of
// the endpoint.
func (c *Client) GetPrice(ctx context.Context, tokenID string) (*types.PriceResponse, error) {
	if price, ok := c.prices.Get(tokenID); ok {
		return &types.PriceResponse{Price: price}, nil
	}

	var out types.PriceResponse
	params := map[string]string{"token_id": tokenID}
	if err := c.http.do(ctx, http.MethodGet, EndpointGetPrice, nil, params, "", &out); err != nil {
		return nil, err
	}
	c.prices.Set(tokenID, out.Price)
	return &out, nil
}

// CalculateOptimalFill walks the book and reports how many tokens a given
// collateral amount (BUY) or token amount's worth of collateral (SELL) can
// fill, plus the average price paid.
func CalculateOptimalFill(book *types.OrderBookSummary, side types.Side, amount float64) (totalSize, avgPrice, filled float64) {
	var levels []types.OrderSummary
	if side == types.SideBuy {
		levels = book.Asks
	} else {
		levels = book.Bids
	}
	if len(levels) == 0 {
		return 0, 0, 0
	}

	remaining := amount
	totalCost := 0.0
	for _, level := range levels {
		price, _ := strconv.ParseFloat(level.Price, 64)
		size, _ := strconv.ParseFloat(level.Size, 64)
		if price <= 0 || size <= 0 {
			continue
		}

		levelValue := size * price
		if levelValue <= remaining {
			totalSize += size
			totalCost += levelValue
			remaining -= levelValue
		} else {
			fillSize := remaining / price
			totalSize += fillSize
			totalCost += remaining
			remaining = 0
		}
		if remaining <= 0 {
			break
		}
	}

	if totalSize > 0 {
		avgPrice = totalCost / totalSize
	}
	return totalSize, avgPrice, amount - remaining
}
