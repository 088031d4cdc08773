package engine_test

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Cogwheel-Validator/spectra-swap-gateway/engine"
)

// mockChain implements engine.VenueClient with injectable behavior per call.
// Every invocation is recorded so tests can assert ordering and short-circuiting.
type mockChain struct {
	calls []string

	decimalsFunc  func(token common.Address) (uint8, error)
	balanceFunc   func(token, owner common.Address) (*big.Int, error)
	allowanceFunc func(token, owner common.Address) (*big.Int, error)
	quoteFunc     func(tokenIn, tokenOut common.Address, feeTier uint32, amountIn *big.Int) (*big.Int, error)
	approveFunc   func(token common.Address, amount *big.Int) (common.Hash, error)
	swapFunc      func(params engine.SwapParams) (common.Hash, error)
}

func (m *mockChain) Decimals(_ context.Context, token common.Address) (uint8, error) {
	m.calls = append(m.calls, "decimals")
	if m.decimalsFunc != nil {
		return m.decimalsFunc(token)
	}
	return 18, nil
}

func (m *mockChain) BalanceOf(_ context.Context, token, owner common.Address) (*big.Int, error) {
	m.calls = append(m.calls, "balanceOf")
	if m.balanceFunc != nil {
		return m.balanceFunc(token, owner)
	}
	return new(big.Int).Lsh(big.NewInt(1), 128), nil
}

func (m *mockChain) RouterAllowance(_ context.Context, token, owner common.Address) (*big.Int, error) {
	m.calls = append(m.calls, "allowance")
	if m.allowanceFunc != nil {
		return m.allowanceFunc(token, owner)
	}
	return engine.MaxUint256(), nil
}

func (m *mockChain) QuoteExactInputSingle(_ context.Context, tokenIn, tokenOut common.Address, feeTier uint32, amountIn *big.Int) (*big.Int, error) {
	m.calls = append(m.calls, fmt.Sprintf("quote:%d", feeTier))
	if m.quoteFunc != nil {
		return m.quoteFunc(tokenIn, tokenOut, feeTier, amountIn)
	}
	return big.NewInt(1000000), nil
}

func (m *mockChain) ApproveRouter(_ context.Context, _ *engine.Signer, token common.Address, amount *big.Int) (common.Hash, error) {
	m.calls = append(m.calls, "approve")
	if m.approveFunc != nil {
		return m.approveFunc(token, amount)
	}
	return common.HexToHash("0x01"), nil
}

func (m *mockChain) SwapExactInputSingle(_ context.Context, _ *engine.Signer, params engine.SwapParams) (common.Hash, error) {
	m.calls = append(m.calls, "swap")
	if m.swapFunc != nil {
		return m.swapFunc(params)
	}
	return common.HexToHash("0x02"), nil
}
