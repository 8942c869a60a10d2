package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	"github.com/betbot/polytrade/clob/types"
)

const erc20BalanceABI = `[
  {"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

// GetBalance is the raw /balance passthrough.
func (c *Client) GetBalance(ctx context.Context) (json.RawMessage, error) {
	headers := c.buildHeaders(http.MethodGet, EndpointGetBalance, "")
	var out json.RawMessage
	if err := c.http.do(ctx, http.MethodGet, EndpointGetBalance, headers, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCollateralBalance resolves the wallet's collateral balance as a
// decimal amount.
//
// Resolution order: 30s cache, then the authenticated balance-allowance
// endpoint, then (only on an authentication-class failure) a direct
// on-chain read of the collateral token, then the last cached positive
// value, then zero. It never returns an error; trading loops poll this and
// a transient failure must not tear them down.
func (c *Client) GetCollateralBalance(ctx context.Context) float64 {
	if v, ok := c.balance.Get(); ok {
		return v
	}

	balance, err := c.fetchCollateralBalance(ctx)
	if err == nil {
		c.balance.Set(balance)
		return balance
	}

	if IsUnauthorized(err) {
		c.log.Info("balance endpoint unauthorized, reading collateral balance on-chain")
		if onchain, cerr := c.onChainCollateralBalance(ctx); cerr == nil {
			c.balance.Set(onchain)
			return onchain
		} else {
			c.log.Warnf("on-chain balance read failed: %v", cerr)
		}
	} else {
		c.log.Warnf("balance query failed: %v", err)
	}

	if last := c.balance.LastKnown(); last > 0 {
		return last
	}
	return 0
}

// ClearBalanceCache forces the next balance query onto the network.
func (c *Client) ClearBalanceCache() {
	c.balance.Clear()
}

func (c *Client) fetchCollateralBalance(ctx context.Context) (float64, error) {
	headers := c.buildHeaders(http.MethodGet, EndpointGetBalanceAllowance, "")
	params := map[string]string{"asset_type": string(types.AssetTypeCollateral)}

	var out types.BalanceAllowanceResponse
	if err := c.http.do(ctx, http.MethodGet, EndpointGetBalanceAllowance, headers, params, "", &out); err != nil {
		return 0, err
	}
	raw, err := strconv.ParseFloat(strings.TrimSpace(out.Balance), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse balance %q", out.Balance)
	}
	// Base units with 6 decimals.
	return raw / 1e6, nil
}

// onChainCollateralBalance reads balanceOf(funder) from the collateral
// token contract, bypassing the exchange API entirely.
func (c *Client) onChainCollateralBalance(ctx context.Context) (float64, error) {
	contracts, err := GetContractConfig(c.chainID)
	if err != nil {
		return 0, err
	}

	eth, err := ethclient.DialContext(ctx, c.rpcURL)
	if err != nil {
		return 0, errors.Wrap(err, "dial rpc")
	}
	defer eth.Close()

	parsed, err := abi.JSON(strings.NewReader(erc20BalanceABI))
	if err != nil {
		return 0, errors.Wrap(err, "parse erc20 abi")
	}
	calldata, err := parsed.Pack("balanceOf", common.HexToAddress(c.funder))
	if err != nil {
		return 0, errors.Wrap(err, "pack balanceOf")
	}

	token := common.HexToAddress(contracts.Collateral)
	ret, err := eth.CallContract(ctx, ethereum.CallMsg{To: &token, Data: calldata}, nil)
	if err != nil {
		return 0, errors.Wrap(err, "eth_call balanceOf")
	}
	values, err := parsed.Unpack("balanceOf", ret)
	if err != nil || len(values) == 0 {
		return 0, errors.Wrap(err, "unpack balanceOf")
	}
	raw, ok := values[0].(interface{ String() string })
	if !ok {
		return 0, errors.New("unexpected balanceOf return type")
	}
	base, err := strconv.ParseFloat(raw.String(), 64)
	if err != nil {
		return 0, err
	}
	return base / 1e6, nil
}
