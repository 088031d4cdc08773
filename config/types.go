package config

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Cogwheel-Validator/spectra-swap-gateway/engine"
	"github.com/Cogwheel-Validator/spectra-swap-gateway/engine/uniswap"
)

// ServerConfig - TOML document for the HTTP server
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           uint16   `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
	EnableMetrics  bool     `toml:"enable_metrics"`
	RatePerMinute         *int `toml:"rate_per_minute"` // nil disables per-IP limiting
	MaxConcurrentRequests *int `toml:"max_concurrent_requests"`
	OTel           OTelSettings `toml:"otel"`
}

// OTelSettings - observability exporter switches, mapped onto the SDK
// bootstrap in the rpc package
type OTelSettings struct {
	ServiceName     string `toml:"service_name"`
	ServiceVersion  string `toml:"service_version"`
	Environment     string `toml:"environment"`
	EnableTracing   bool   `toml:"enable_tracing"`
	UseOTLPTraces   bool   `toml:"use_otlp_traces"`
	OTLPTracesURL   string `toml:"otlp_traces_url"`
	EnableMetrics   bool   `toml:"enable_metrics"`
	UsePrometheus   bool   `toml:"use_prometheus"`
	UseOTLPMetrics  bool   `toml:"use_otlp_metrics"`
	OTLPMetricsURL  string `toml:"otlp_metrics_url"`
	InsecureOTLP    bool   `toml:"insecure_otlp"`
	DevelopmentMode bool   `toml:"development_mode"`
}

// SlippageConfig - basis-point tolerances per pair class
type SlippageConfig struct {
	StableBps   uint32 `toml:"stable_bps" json:"stableBps"`
	VolatileBps uint32 `toml:"volatile_bps" json:"volatileBps"`
	CeilingBps  uint32 `toml:"ceiling_bps" json:"ceilingBps"`
}

// ChainConfig pins the venue: node endpoint, contract addresses, token
// aliases and the swap policy knobs.
type ChainConfig struct {
	RPCURL          string         `toml:"rpc_url" json:"rpcUrl"`
	ChainID         uint64         `toml:"chain_id" json:"chainId"`
	Router          string         `toml:"router" json:"router"`
	Quoter          string         `toml:"quoter" json:"quoter"`
	WrappedNative   string         `toml:"wrapped_native" json:"wrappedNative"`
	NativeAlias     string         `toml:"native_alias" json:"nativeAlias"`
	StableAlias     string         `toml:"stable_alias" json:"stableAlias"`
	FeeTiers        []uint32       `toml:"fee_tiers" json:"feeTiers"`
	SwapGasLimit    uint64         `toml:"swap_gas_limit" json:"swapGasLimit"`
	DeadlineSeconds uint64         `toml:"deadline_seconds" json:"deadlineSeconds"`
	ApprovalMode    string         `toml:"approval_mode" json:"approvalMode"`
	Slippage        SlippageConfig `toml:"slippage" json:"slippage"`
}

// ApplyDefaults fills the optional knobs the file left out.
func (c *ChainConfig) ApplyDefaults() {
	if c.NativeAlias == "" {
		c.NativeAlias = "ETH"
	}
	if len(c.FeeTiers) == 0 {
		c.FeeTiers = []uint32{500, 3000, 10000}
	}
	if c.SwapGasLimit == 0 {
		c.SwapGasLimit = 500000
	}
	if c.DeadlineSeconds == 0 {
		c.DeadlineSeconds = 300
	}
	if c.ApprovalMode == "" {
		c.ApprovalMode = engine.ApprovalUnbounded
	}
	if c.Slippage.StableBps == 0 {
		c.Slippage.StableBps = 50
	}
	if c.Slippage.VolatileBps == 0 {
		c.Slippage.VolatileBps = 100
	}
	if c.Slippage.CeilingBps == 0 {
		c.Slippage.CeilingBps = 300
	}
}

// Validate rejects configs that cannot produce a working client.
func (c *ChainConfig) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("rpc_url is required")
	}
	for name, addr := range map[string]string{
		"router":         c.Router,
		"quoter":         c.Quoter,
		"wrapped_native": c.WrappedNative,
	} {
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("%s is not a hex address: %q", name, addr)
		}
	}
	if c.ApprovalMode != engine.ApprovalUnbounded && c.ApprovalMode != engine.ApprovalExact {
		return fmt.Errorf("approval_mode must be %q or %q, got %q",
			engine.ApprovalUnbounded, engine.ApprovalExact, c.ApprovalMode)
	}
	for _, tier := range c.FeeTiers {
		if tier == 0 {
			return fmt.Errorf("fee tiers must be positive")
		}
	}
	if c.Slippage.CeilingBps >= 10000 {
		return fmt.Errorf("ceiling_bps must be below 10000")
	}
	return nil
}

// VenueConfig converts the file shape into the pipeline's config type.
func (c *ChainConfig) VenueConfig() engine.VenueConfig {
	return engine.VenueConfig{
		NativeAlias:     c.NativeAlias,
		WrappedNative:   c.WrappedNative,
		StableAlias:     c.StableAlias,
		FeeTiers:        c.FeeTiers,
		DeadlineSeconds: c.DeadlineSeconds,
		ApprovalMode:    c.ApprovalMode,
		StableBps:       c.Slippage.StableBps,
		VolatileBps:     c.Slippage.VolatileBps,
		CeilingBps:      c.Slippage.CeilingBps,
	}
}

// ClientConfig converts the file shape into the chain client's config type.
func (c *ChainConfig) ClientConfig() uniswap.Config {
	return uniswap.Config{
		RPCURL:       c.RPCURL,
		ChainID:      c.ChainID,
		Router:       common.HexToAddress(c.Router),
		Quoter:       common.HexToAddress(c.Quoter),
		SwapGasLimit: c.SwapGasLimit,
	}
}
