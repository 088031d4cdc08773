package engine

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// The wrapped-native token always carries 18 decimals; only other tokens
// need an on-chain decimals() read.
const wrappedNativeDecimals = 18

// AmountNormalizer converts between human decimal strings and base units,
// looking up token precision on chain when needed.
type AmountNormalizer struct {
	resolver *TokenResolver
	tokens   TokenReader
}

func NewAmountNormalizer(resolver *TokenResolver, tokens TokenReader) *AmountNormalizer {
	return &AmountNormalizer{resolver: resolver, tokens: tokens}
}

// DecimalsFor returns the precision of a canonical token.
func (an *AmountNormalizer) DecimalsFor(ctx context.Context, token string) (uint8, error) {
	if an.resolver.IsWrappedNative(token) {
		return wrappedNativeDecimals, nil
	}
	dec, err := an.tokens.Decimals(ctx, common.HexToAddress(token))
	if err != nil {
		return 0, fmt.Errorf("read decimals for %s: %w", token, err)
	}
	return dec, nil
}

// ToBaseUnits converts a human decimal amount of tokenRef into base units,
// truncating anything finer than the token's precision.
func (an *AmountNormalizer) ToBaseUnits(ctx context.Context, amount, tokenRef string) (*big.Int, error) {
	if strings.TrimSpace(amount) == "" {
		return nil, fmt.Errorf("%w: empty amount", ErrInvalidInput)
	}
	token, err := an.resolver.Resolve(tokenRef)
	if err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q is not a decimal number", ErrInvalidInput, amount)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	dec, err := an.DecimalsFor(ctx, token)
	if err != nil {
		return nil, err
	}
	return d.Shift(int32(dec)).Truncate(0).BigInt(), nil
}

// FromBaseUnits renders base units back into a human decimal string.
func FromBaseUnits(raw *big.Int, decimals uint8) string {
	return decimal.NewFromBigInt(raw, -int32(decimals)).String()
}
