package engine

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Approval policy for the router allowance. Unbounded grants the max uint256
// once so later swaps skip the approval round trip; exact grants only what
// the current swap consumes.
const (
	ApprovalUnbounded = "unbounded"
	ApprovalExact     = "exact"
)

// VenueConfig is the per-venue configuration the pipeline components share.
// It is built once by the config layer and never mutated afterwards.
type VenueConfig struct {
	NativeAlias     string   // e.g. "ETH"
	WrappedNative   string   // wrapped-native contract address, hex
	StableAlias     string   // symbolic stable alias, e.g. "USDC"
	FeeTiers        []uint32 // probe order, e.g. [500, 3000, 10000]
	DeadlineSeconds uint64   // swap deadline window
	ApprovalMode    string   // ApprovalUnbounded | ApprovalExact

	StableBps   uint32 // wrapped-native -> stable pairs
	VolatileBps uint32 // pairs with exactly one wrapped-native side
	CeilingBps  uint32 // everything else, and the cap on VolatileBps
}

// Quote is a single fee tier's exact-input quote.
type Quote struct {
	FeeTier   uint32
	AmountOut *big.Int
}

// SwapParams carries everything the router needs for one exactInputSingle.
type SwapParams struct {
	TokenIn          common.Address
	TokenOut         common.Address
	FeeTier          uint32
	Recipient        common.Address
	Deadline         *big.Int // unix seconds
	AmountIn         *big.Int
	AmountOutMinimum *big.Int
}

// TokenReader provides the ERC-20 read calls the pipeline depends on.
type TokenReader interface {
	Decimals(ctx context.Context, token common.Address) (uint8, error)
	BalanceOf(ctx context.Context, token, owner common.Address) (*big.Int, error)
	RouterAllowance(ctx context.Context, token, owner common.Address) (*big.Int, error)
}

// QuoteOracle simulates a single-pool exact-input swap at one fee tier.
type QuoteOracle interface {
	QuoteExactInputSingle(ctx context.Context, tokenIn, tokenOut common.Address, feeTier uint32, amountIn *big.Int) (*big.Int, error)
}

// SwapBroker submits state-changing transactions and blocks until they mine.
type SwapBroker interface {
	ApproveRouter(ctx context.Context, signer *Signer, token common.Address, amount *big.Int) (common.Hash, error)
	SwapExactInputSingle(ctx context.Context, signer *Signer, params SwapParams) (common.Hash, error)
}

// VenueClient is the full on-chain surface the orchestrator uses.
type VenueClient interface {
	TokenReader
	QuoteOracle
	SwapBroker
}

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// MaxUint256 returns a fresh copy of 2^256 - 1, the unbounded approval amount.
func MaxUint256() *big.Int {
	return new(big.Int).Set(maxUint256)
}
