package engine_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zeebo/assert"

	"github.com/Cogwheel-Validator/spectra-swap-gateway/engine"
)

func TestBestQuoteFirstSuccessWins(t *testing.T) {
	// The cheapest tier wins even when a deeper tier would pay more.
	chain := &mockChain{
		quoteFunc: func(_, _ common.Address, feeTier uint32, _ *big.Int) (*big.Int, error) {
			if feeTier == 500 {
				return big.NewInt(900), nil
			}
			return big.NewInt(99999), nil
		},
	}
	quotes := engine.NewQuoteEngine(chain, []uint32{500, 3000, 10000})

	quote, err := quotes.BestQuote(context.Background(), wethAddr, usdcAddr, big.NewInt(100))
	assert.NoError(t, err)
	assert.Equal(t, uint32(500), quote.FeeTier)
	assert.Equal(t, int64(900), quote.AmountOut.Int64())

	// Later tiers must not be probed after a success
	if len(chain.calls) != 1 {
		t.Errorf("expected 1 oracle call, got %v", chain.calls)
	}
}

func TestBestQuoteSkipsFailedTiers(t *testing.T) {
	chain := &mockChain{
		quoteFunc: func(_, _ common.Address, feeTier uint32, _ *big.Int) (*big.Int, error) {
			if feeTier != 10000 {
				return nil, fmt.Errorf("no pool at tier %d", feeTier)
			}
			return big.NewInt(1000000), nil
		},
	}
	quotes := engine.NewQuoteEngine(chain, []uint32{500, 3000, 10000})

	quote, err := quotes.BestQuote(context.Background(), wethAddr, usdcAddr, big.NewInt(100))
	assert.NoError(t, err)
	assert.Equal(t, uint32(10000), quote.FeeTier)
	if len(chain.calls) != 3 {
		t.Errorf("expected all 3 tiers probed, got %v", chain.calls)
	}
}

func TestBestQuoteNoLiquidity(t *testing.T) {
	chain := &mockChain{
		quoteFunc: func(_, _ common.Address, _ uint32, _ *big.Int) (*big.Int, error) {
			return nil, fmt.Errorf("execution reverted")
		},
	}
	quotes := engine.NewQuoteEngine(chain, []uint32{500, 3000, 10000})

	_, err := quotes.BestQuote(context.Background(), wethAddr, usdcAddr, big.NewInt(100))
	if !errors.Is(err, engine.ErrNoLiquidity) {
		t.Fatalf("expected ErrNoLiquidity, got %v", err)
	}
}
