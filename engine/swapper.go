package engine

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// QuoteResult is the quote-only pipeline output.
type QuoteResult struct {
	FeeTier      uint32
	AmountOut    string // human decimal in the output token's precision
	AmountOutRaw *big.Int
}

// Swapper drives the quote and swap pipelines end to end. Each call is an
// independent strictly sequential run over the chain client; the first
// failing step is terminal and nothing is rolled back.
type Swapper struct {
	resolver *TokenResolver
	amounts  *AmountNormalizer
	quotes   *QuoteEngine
	policy   *SlippagePolicy
	chain    VenueClient
	cfg      VenueConfig
}

func NewSwapper(chain VenueClient, cfg VenueConfig) *Swapper {
	resolver := NewTokenResolver(cfg)
	return &Swapper{
		resolver: resolver,
		amounts:  NewAmountNormalizer(resolver, chain),
		quotes:   NewQuoteEngine(chain, cfg.FeeTiers),
		policy:   NewSlippagePolicy(cfg),
		chain:    chain,
		cfg:      cfg,
	}
}

func validateFields(amountIn, tokenIn, tokenOut string) error {
	switch {
	case strings.TrimSpace(amountIn) == "":
		return fmt.Errorf("%w: amountIn is required", ErrInvalidInput)
	case strings.TrimSpace(tokenIn) == "":
		return fmt.Errorf("%w: tokenIn is required", ErrInvalidInput)
	case strings.TrimSpace(tokenOut) == "":
		return fmt.Errorf("%w: tokenOut is required", ErrInvalidInput)
	}
	return nil
}

// QuoteExactIn resolves the pair, normalizes the amount, probes the fee
// tiers and formats the winning quote in the output token's precision.
func (s *Swapper) QuoteExactIn(ctx context.Context, amountIn, tokenInRef, tokenOutRef string) (QuoteResult, error) {
	if err := validateFields(amountIn, tokenInRef, tokenOutRef); err != nil {
		return QuoteResult{}, err
	}
	tokenIn, err := s.resolver.Resolve(tokenInRef)
	if err != nil {
		return QuoteResult{}, err
	}
	tokenOut, err := s.resolver.Resolve(tokenOutRef)
	if err != nil {
		return QuoteResult{}, err
	}
	amountRaw, err := s.amounts.ToBaseUnits(ctx, amountIn, tokenInRef)
	if err != nil {
		return QuoteResult{}, err
	}
	quote, err := s.quotes.BestQuote(ctx, tokenIn, tokenOut, amountRaw)
	if err != nil {
		return QuoteResult{}, err
	}
	outDecimals, err := s.amounts.DecimalsFor(ctx, tokenOut)
	if err != nil {
		return QuoteResult{}, err
	}
	return QuoteResult{
		FeeTier:      quote.FeeTier,
		AmountOut:    FromBaseUnits(quote.AmountOut, outDecimals),
		AmountOutRaw: quote.AmountOut,
	}, nil
}

// ExecuteSwap runs the full pipeline: validate, resolve, check balance and
// allowance, quote, apply slippage, submit. The returned hash is of the
// mined swap transaction. A successful approval stays in place even if a
// later step fails, so a retried request skips it.
func (s *Swapper) ExecuteSwap(ctx context.Context, credential, amountIn, tokenInRef, tokenOutRef string) (common.Hash, error) {
	if strings.TrimSpace(credential) == "" {
		return common.Hash{}, ErrUnauthorized
	}
	if err := validateFields(amountIn, tokenInRef, tokenOutRef); err != nil {
		return common.Hash{}, err
	}
	signer, err := NewSigner(credential)
	if err != nil {
		return common.Hash{}, err
	}

	tokenIn, err := s.resolver.Resolve(tokenInRef)
	if err != nil {
		return common.Hash{}, err
	}
	tokenOut, err := s.resolver.Resolve(tokenOutRef)
	if err != nil {
		return common.Hash{}, err
	}
	amountRaw, err := s.amounts.ToBaseUnits(ctx, amountIn, tokenInRef)
	if err != nil {
		return common.Hash{}, err
	}
	inAddr := common.HexToAddress(tokenIn)
	outAddr := common.HexToAddress(tokenOut)

	balance, err := s.chain.BalanceOf(ctx, inAddr, signer.Address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("read balance: %w", err)
	}
	if balance.Cmp(amountRaw) < 0 {
		return common.Hash{}, fmt.Errorf("%w: have %s, need %s of %s",
			ErrInsufficientBalance, balance, amountRaw, tokenIn)
	}

	allowance, err := s.chain.RouterAllowance(ctx, inAddr, signer.Address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("read allowance: %w", err)
	}
	if allowance.Cmp(amountRaw) < 0 {
		grant := MaxUint256()
		if s.cfg.ApprovalMode == ApprovalExact {
			grant = amountRaw
		}
		approveHash, err := s.chain.ApproveRouter(ctx, signer, inAddr, grant)
		if err != nil {
			return common.Hash{}, fmt.Errorf("approve router: %w", err)
		}
		log.Info().
			Str("token", tokenIn).
			Str("mode", s.cfg.ApprovalMode).
			Str("tx", approveHash.Hex()).
			Msg("router approval mined")
	}

	quote, err := s.quotes.BestQuote(ctx, tokenIn, tokenOut, amountRaw)
	if err != nil {
		return common.Hash{}, err
	}
	bps := s.policy.Classify(tokenIn, tokenOut)
	minOut := MinimumOutput(quote.AmountOut, bps)

	deadline := big.NewInt(time.Now().Unix() + int64(s.cfg.DeadlineSeconds))
	hash, err := s.chain.SwapExactInputSingle(ctx, signer, SwapParams{
		TokenIn:          inAddr,
		TokenOut:         outAddr,
		FeeTier:          quote.FeeTier,
		Recipient:        signer.Address,
		Deadline:         deadline,
		AmountIn:         amountRaw,
		AmountOutMinimum: minOut,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("submit swap: %w", err)
	}
	log.Info().
		Str("tokenIn", tokenIn).
		Str("tokenOut", tokenOut).
		Uint32("feeTier", quote.FeeTier).
		Uint32("slippageBps", bps).
		Str("minOut", minOut.String()).
		Str("tx", hash.Hex()).
		Msg("swap mined")
	return hash, nil
}
