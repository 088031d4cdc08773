package engine_test

import (
	"errors"
	"testing"

	"github.com/zeebo/assert"

	"github.com/Cogwheel-Validator/spectra-swap-gateway/engine"
)

const (
	wethAddr = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	usdcAddr = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
)

func testVenueConfig() engine.VenueConfig {
	return engine.VenueConfig{
		NativeAlias:     "ETH",
		WrappedNative:   wethAddr,
		StableAlias:     "USDC",
		FeeTiers:        []uint32{500, 3000, 10000},
		DeadlineSeconds: 300,
		ApprovalMode:    engine.ApprovalUnbounded,
		StableBps:       50,
		VolatileBps:     100,
		CeilingBps:      300,
	}
}

func TestResolveNativeAlias(t *testing.T) {
	resolver := engine.NewTokenResolver(testVenueConfig())

	for _, ref := range []string{"ETH", "eth", "Eth", " ETH "} {
		got, err := resolver.Resolve(ref)
		assert.NoError(t, err)
		assert.Equal(t, wethAddr, got)
	}
}

func TestResolvePassThrough(t *testing.T) {
	resolver := engine.NewTokenResolver(testVenueConfig())

	got, err := resolver.Resolve(usdcAddr)
	assert.NoError(t, err)
	assert.Equal(t, usdcAddr, got)

	// Unknown symbols pass through unchanged, no validation happens here
	got, err = resolver.Resolve("USDC")
	assert.NoError(t, err)
	assert.Equal(t, "USDC", got)
}

func TestResolveEmpty(t *testing.T) {
	resolver := engine.NewTokenResolver(testVenueConfig())

	for _, ref := range []string{"", "   "} {
		_, err := resolver.Resolve(ref)
		if !errors.Is(err, engine.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for %q, got %v", ref, err)
		}
	}
}

func TestIsWrappedNative(t *testing.T) {
	resolver := engine.NewTokenResolver(testVenueConfig())

	if !resolver.IsWrappedNative("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2") {
		t.Error("wrapped-native check should be case-insensitive")
	}
	if resolver.IsWrappedNative(usdcAddr) {
		t.Error("USDC address should not match wrapped native")
	}
}
