package engine

import (
	"fmt"
	"strings"
)

// TokenResolver maps user-facing token references onto canonical tokens.
// The native alias resolves to the wrapped-native contract address; every
// other non-empty reference passes through untouched. No address validation
// happens here; malformed addresses fail later as on-chain call errors.
type TokenResolver struct {
	nativeAlias   string
	wrappedNative string
}

func NewTokenResolver(cfg VenueConfig) *TokenResolver {
	return &TokenResolver{
		nativeAlias:   cfg.NativeAlias,
		wrappedNative: cfg.WrappedNative,
	}
}

// Resolve returns the canonical token for a user-facing reference.
func (tr *TokenResolver) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty token reference", ErrInvalidInput)
	}
	if strings.EqualFold(ref, tr.nativeAlias) {
		return tr.wrappedNative, nil
	}
	return ref, nil
}

// IsWrappedNative reports whether a canonical token is the wrapped-native contract.
func (tr *TokenResolver) IsWrappedNative(token string) bool {
	return strings.EqualFold(token, tr.wrappedNative)
}
