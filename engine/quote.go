package engine

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// QuoteEngine probes fee tiers in configured order and keeps the first tier
// that produces a quote. It does not shop for the best price across tiers,
// and it never retries a failed tier.
type QuoteEngine struct {
	oracle   QuoteOracle
	feeTiers []uint32
}

func NewQuoteEngine(oracle QuoteOracle, feeTiers []uint32) *QuoteEngine {
	return &QuoteEngine{oracle: oracle, feeTiers: feeTiers}
}

// BestQuote runs one read-only quote simulation per tier until one succeeds.
// Tier failures are logged and skipped; if every tier fails the pair has no
// usable liquidity.
func (qe *QuoteEngine) BestQuote(ctx context.Context, tokenIn, tokenOut string, amountIn *big.Int) (Quote, error) {
	in := common.HexToAddress(tokenIn)
	out := common.HexToAddress(tokenOut)
	for _, tier := range qe.feeTiers {
		amountOut, err := qe.oracle.QuoteExactInputSingle(ctx, in, out, tier, amountIn)
		if err != nil {
			log.Warn().
				Uint32("feeTier", tier).
				Str("tokenIn", tokenIn).
				Str("tokenOut", tokenOut).
				Err(err).
				Msg("fee tier quote failed, trying next")
			continue
		}
		log.Debug().
			Uint32("feeTier", tier).
			Str("amountOut", amountOut.String()).
			Msg("quote found")
		return Quote{FeeTier: tier, AmountOut: amountOut}, nil
	}
	return Quote{}, fmt.Errorf("%w: %s -> %s", ErrNoLiquidity, tokenIn, tokenOut)
}
