package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Cogwheel-Validator/spectra-swap-gateway/config"
	"github.com/Cogwheel-Validator/spectra-swap-gateway/engine"
	"github.com/Cogwheel-Validator/spectra-swap-gateway/engine/uniswap"
	"github.com/Cogwheel-Validator/spectra-swap-gateway/rpc"
)

var log zerolog.Logger

func init() {
	// Initialize zerolog with console writer
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Logger()

	// Share the logger with the other packages
	rpc.SetLogger(log)
	engine.SetLogger(log)
	uniswap.SetLogger(log)
}

func main() {
	configServer := flag.String("config-server", "./server-config.toml", "config file for the http server")
	configChain := flag.String("config-chain", "./chain-config.toml", "config file for the venue")
	flag.Parse()

	// Optional .env with RPC_URL so node credentials stay out of the configs
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	log.Info().
		Str("server_config", *configServer).
		Str("chain_config", *configChain).
		Msg("Starting Spectra Swap Gateway")

	loader := config.NewDefaultLoader()

	serverCfg, err := loader.LoadServerConfig(*configServer)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load server config")
	}
	chainCfg, err := loader.LoadChainConfig(*configChain)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load chain config")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Dial the node and bind the venue contracts
	chainClient, err := uniswap.NewClient(ctx, chainCfg.ClientConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the chain")
	}
	defer chainClient.Close()

	swapper := engine.NewSwapper(chainClient, chainCfg.VenueConfig())

	server, err := rpc.NewServer(ctx, buildServerConfig(serverCfg), swapper)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	// Setup signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Server error")
			sigCh <- syscall.SIGTERM
		}
	}()

	// Wait for shutdown signal
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}
}

// buildServerConfig converts the loaded TOML config to rpc.ServerConfig
func buildServerConfig(cfg *config.ServerConfig) *rpc.ServerConfig {
	serverConfig := &rpc.ServerConfig{
		Address:               fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		AllowedOrigins:        cfg.AllowedOrigins,
		EnableMetrics:         cfg.EnableMetrics,
		RatePerMinute:         cfg.RatePerMinute,
		MaxConcurrentRequests: cfg.MaxConcurrentRequests,
	}

	if cfg.OTel.EnableTracing || cfg.OTel.EnableMetrics || cfg.OTel.UsePrometheus {
		serverConfig.OTelConfig = rpc.OTelConfigFromSettings(cfg.OTel)
	}

	return serverConfig
}
