package client

// CLOB API endpoints.
const (
	EndpointCreateAPIKey = "/auth/api-key"
	EndpointDeriveAPIKey = "/auth/derive-api-key"

	EndpointGetOrderBook = "/book"
	EndpointGetPrice     = "/price"

	EndpointPostOrder          = "/order"
	EndpointCancelOrder        = "/order"
	EndpointCancelOrders       = "/orders"
	EndpointCancelAll          = "/cancel-all"
	EndpointCancelMarketOrders = "/cancel-market-orders"
	EndpointGetOpenOrders      = "/data/orders"
	EndpointGetOrder           = "/data/order/"
	EndpointGetTrades          = "/data/trades"

	EndpointGetBalance          = "/balance"
	EndpointGetBalanceAllowance = "/balance-allowance"
)

// Relayer endpoints (builder HMAC only).
const (
	EndpointDeploySafe       = "/wallet/deploy-safe"
	EndpointApproveAllowance = "/allowance/approve"
	EndpointApproveToken     = "/approve-token"
)
