package models

// QuoteRequest - API POST body for /v1/quote
type QuoteRequest struct {
	AmountIn string `json:"amountIn"` // Human decimal string, e.g. "1.5"
	TokenIn  string `json:"tokenIn"`  // Contract address or native alias, e.g. "ETH"
	TokenOut string `json:"tokenOut"` // Contract address or native alias
}

// QuoteResponse carries the first-success quote found across the fee tiers.
type QuoteResponse struct {
	FeeTier      uint32 `json:"feeTier"`      // Fee tier that produced the quote, e.g. 3000
	AmountOut    string `json:"amountOut"`    // Human decimal string in the output token's precision
	AmountOutRaw string `json:"amountOutRaw"` // Base units, decimal string
}

// SwapRequest - API POST body for /v1/swap. The signer credential travels
// out of band in the X-Signer-Key header, never in the body.
type SwapRequest struct {
	AmountIn string `json:"amountIn"`
	TokenIn  string `json:"tokenIn"`
	TokenOut string `json:"tokenOut"`
}

// SwapResponse is returned once the swap transaction is mined.
type SwapResponse struct {
	TransactionHash string `json:"transactionHash"` // 0x-prefixed tx hash
}

// ErrorResponse - uniform error envelope for every non-2xx reply
type ErrorResponse struct {
	Error string `json:"error"`
}
