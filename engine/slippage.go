package engine

import (
	"math/big"
	"strings"
)

const bpsDenominator = 10000

// SlippagePolicy classifies a resolved pair into a basis-point tolerance.
// Pure, no I/O.
type SlippagePolicy struct {
	wrappedNative string
	stableAlias   string
	stableBps     uint32
	volatileBps   uint32
	ceilingBps    uint32
}

func NewSlippagePolicy(cfg VenueConfig) *SlippagePolicy {
	return &SlippagePolicy{
		wrappedNative: cfg.WrappedNative,
		stableAlias:   cfg.StableAlias,
		stableBps:     cfg.StableBps,
		volatileBps:   cfg.VolatileBps,
		ceilingBps:    cfg.CeilingBps,
	}
}

// Classify picks the tolerance for a resolved pair.
//
// The stable branch matches tokenOut against the symbolic stable alias, not
// the stable token's contract address, so it only fires when the caller sent
// the alias string itself and it passed through resolution unchanged.
func (sp *SlippagePolicy) Classify(tokenIn, tokenOut string) uint32 {
	inNative := strings.EqualFold(tokenIn, sp.wrappedNative)
	outNative := strings.EqualFold(tokenOut, sp.wrappedNative)
	switch {
	case inNative && strings.EqualFold(tokenOut, sp.stableAlias):
		return sp.stableBps
	case inNative != outNative:
		return min(sp.volatileBps, sp.ceilingBps)
	default:
		return sp.ceilingBps
	}
}

// MinimumOutput applies a basis-point tolerance to an expected output,
// truncating toward zero: expected * (10000 - bps) / 10000.
func MinimumOutput(expected *big.Int, bps uint32) *big.Int {
	if bps >= bpsDenominator {
		return big.NewInt(0)
	}
	out := new(big.Int).Mul(expected, big.NewInt(int64(bpsDenominator-bps)))
	return out.Quo(out, big.NewInt(bpsDenominator))
}
