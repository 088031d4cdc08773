package engine_test

import (
	"math/big"
	"testing"

	"github.com/zeebo/assert"

	"github.com/Cogwheel-Validator/spectra-swap-gateway/engine"
)

func TestClassify(t *testing.T) {
	policy := engine.NewSlippagePolicy(testVenueConfig())

	cases := []struct {
		name     string
		tokenIn  string
		tokenOut string
		want     uint32
	}{
		// The stable branch only fires for the symbolic alias; a resolved
		// stable contract address lands in the one-sided class instead.
		{"native to stable alias", wethAddr, "USDC", 50},
		{"native to stable address", wethAddr, usdcAddr, 100},
		{"stable address to native", usdcAddr, wethAddr, 100},
		{"token to token", usdcAddr, "0x6B175474E89094C44Da98b954EedeAC495271d0F", 300},
		{"native both sides", wethAddr, wethAddr, 300},
		{"case-insensitive native", "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", "usdc", 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.Classify(tc.tokenIn, tc.tokenOut))
		})
	}
}

func TestClassifyVolatileCappedByCeiling(t *testing.T) {
	cfg := testVenueConfig()
	cfg.VolatileBps = 500
	cfg.CeilingBps = 300
	policy := engine.NewSlippagePolicy(cfg)

	assert.Equal(t, uint32(300), policy.Classify(wethAddr, usdcAddr))
}

func TestMinimumOutput(t *testing.T) {
	cases := []struct {
		expected int64
		bps      uint32
		want     int64
	}{
		{1000000, 50, 995000},
		{1000000, 100, 990000},
		{1000000, 300, 970000},
		{999, 50, 994},  // truncates toward zero
		{0, 300, 0},
		{1, 10000, 0},
	}
	for _, tc := range cases {
		got := engine.MinimumOutput(big.NewInt(tc.expected), tc.bps)
		if got.Cmp(big.NewInt(tc.want)) != 0 {
			t.Errorf("MinimumOutput(%d, %d) = %s, want %d", tc.expected, tc.bps, got, tc.want)
		}
	}
}

func BenchmarkMinimumOutput(b *testing.B) {
	expected, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	for b.Loop() {
		engine.MinimumOutput(expected, 300)
	}
}
