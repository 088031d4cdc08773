package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zeebo/assert"

	"github.com/Cogwheel-Validator/spectra-swap-gateway/engine"
	"github.com/Cogwheel-Validator/spectra-swap-gateway/models"
)

const (
	testWETH = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	testOut  = "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599"
	testKey  = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
)

// stubChain answers every read with canned values and succeeds every write.
// The quote oracle only has liquidity on the 3000 tier.
type stubChain struct {
	quoteCalls int
}

func (s *stubChain) Decimals(context.Context, common.Address) (uint8, error) {
	return 8, nil
}

func (s *stubChain) BalanceOf(context.Context, common.Address, common.Address) (*big.Int, error) {
	return new(big.Int).Lsh(big.NewInt(1), 128), nil
}

func (s *stubChain) RouterAllowance(context.Context, common.Address, common.Address) (*big.Int, error) {
	return engine.MaxUint256(), nil
}

func (s *stubChain) QuoteExactInputSingle(_ context.Context, _, _ common.Address, feeTier uint32, _ *big.Int) (*big.Int, error) {
	s.quoteCalls++
	if feeTier != 3000 {
		return nil, fmt.Errorf("no pool at tier %d", feeTier)
	}
	return big.NewInt(5000000000), nil
}

func (s *stubChain) ApproveRouter(context.Context, *engine.Signer, common.Address, *big.Int) (common.Hash, error) {
	return common.HexToHash("0x01"), nil
}

func (s *stubChain) SwapExactInputSingle(context.Context, *engine.Signer, engine.SwapParams) (common.Hash, error) {
	return common.HexToHash("0xdeadbeef"), nil
}

func newTestHandler() *Handler {
	cfg := engine.VenueConfig{
		NativeAlias:     "ETH",
		WrappedNative:   testWETH,
		StableAlias:     "USDC",
		FeeTiers:        []uint32{500, 3000, 10000},
		DeadlineSeconds: 300,
		ApprovalMode:    engine.ApprovalUnbounded,
		StableBps:       50,
		VolatileBps:     100,
		CeilingBps:      300,
	}
	return NewHandler(engine.NewSwapper(&stubChain{}, cfg))
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestQuoteEndpoint(t *testing.T) {
	handler := newTestHandler()

	rec := postJSON(t, handler.Quote, "/v1/quote",
		`{"amountIn":"10","tokenIn":"ETH","tokenOut":"`+testOut+`"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.QuoteResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint32(3000), resp.FeeTier)
	assert.Equal(t, "50", resp.AmountOut)
	assert.Equal(t, "5000000000", resp.AmountOutRaw)
}

func TestQuoteEndpointMissingField(t *testing.T) {
	handler := newTestHandler()

	rec := postJSON(t, handler.Quote, "/v1/quote", `{"amountIn":"10","tokenIn":"ETH"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	if resp.Error == "" {
		t.Error("expected an error message in the envelope")
	}
}

func TestQuoteEndpointMalformedBody(t *testing.T) {
	handler := newTestHandler()

	rec := postJSON(t, handler.Quote, "/v1/quote", `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSwapEndpoint(t *testing.T) {
	handler := newTestHandler()

	rec := postJSON(t, handler.Swap, "/v1/swap",
		`{"amountIn":"1","tokenIn":"ETH","tokenOut":"`+testOut+`"}`,
		map[string]string{signerKeyHeader: testKey})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.SwapResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, common.HexToHash("0xdeadbeef").Hex(), resp.TransactionHash)
}

func TestSwapEndpointMissingCredential(t *testing.T) {
	handler := newTestHandler()

	rec := postJSON(t, handler.Swap, "/v1/swap",
		`{"amountIn":"1","tokenIn":"ETH","tokenOut":"`+testOut+`"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{engine.ErrUnauthorized, http.StatusUnauthorized},
		{engine.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", engine.ErrInvalidInput), http.StatusBadRequest},
		{engine.ErrInsufficientBalance, http.StatusInternalServerError},
		{engine.ErrNoLiquidity, http.StatusInternalServerError},
		{fmt.Errorf("dial tcp: connection refused"), http.StatusInternalServerError},
		{fmt.Errorf("submit swap: %w", fmt.Errorf("nonce too low")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
