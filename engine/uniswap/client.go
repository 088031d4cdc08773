// Package uniswap implements the on-chain venue client for a Uniswap V3
// style deployment: QuoterV2 for read-only quotes, SwapRouter for execution
// and plain ERC-20 calls for token metadata, balances and allowances.
package uniswap

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"

	"github.com/Cogwheel-Validator/spectra-swap-gateway/engine"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "uniswap-client").Logger()
}

// SetLogger replaces the package logger, usually with the process-wide one.
func SetLogger(l zerolog.Logger) {
	log = l.With().Str("component", "uniswap-client").Logger()
}

// Config pins the venue the client talks to. Addresses are fixed for the
// process lifetime.
type Config struct {
	RPCURL       string
	ChainID      uint64 // expected chain id, verified against the node
	Router       common.Address
	Quoter       common.Address
	SwapGasLimit uint64 // fixed ceiling for exactInputSingle
}

// Client talks to one EVM node and one router/quoter pair. It is safe for
// concurrent use; per-request signing state never lives on the client.
type Client struct {
	client   *ethclient.Client
	chainID  *big.Int
	cfg      Config
	quoter   *bind.BoundContract
	router   *bind.BoundContract
	erc20ABI abi.ABI
}

// NewClient dials the node, verifies the chain id and binds the contracts.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	ethClient, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.RPCURL, err)
	}
	chainID, err := ethClient.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("read chain id: %w", err)
	}
	if cfg.ChainID != 0 && chainID.Uint64() != cfg.ChainID {
		return nil, fmt.Errorf("node reports chain id %d, config expects %d", chainID.Uint64(), cfg.ChainID)
	}

	erc20ABI, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}
	quoterABI, err := abi.JSON(strings.NewReader(quoterV2ABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse quoter abi: %w", err)
	}
	routerABI, err := abi.JSON(strings.NewReader(swapRouterABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse router abi: %w", err)
	}

	c := &Client{
		client:   ethClient,
		chainID:  chainID,
		cfg:      cfg,
		quoter:   bind.NewBoundContract(cfg.Quoter, quoterABI, ethClient, ethClient, ethClient),
		router:   bind.NewBoundContract(cfg.Router, routerABI, ethClient, ethClient, ethClient),
		erc20ABI: erc20ABI,
	}
	log.Info().
		Uint64("chainId", chainID.Uint64()).
		Str("router", cfg.Router.Hex()).
		Str("quoter", cfg.Quoter.Hex()).
		Msg("venue client connected")
	return c, nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.client.Close()
}

func (c *Client) token(addr common.Address) *bind.BoundContract {
	return bind.NewBoundContract(addr, c.erc20ABI, c.client, c.client, c.client)
}

// Decimals reads the ERC-20 decimals of a token.
func (c *Client) Decimals(ctx context.Context, token common.Address) (uint8, error) {
	var out []interface{}
	err := c.token(token).Call(&bind.CallOpts{Context: ctx}, &out, "decimals")
	if err != nil {
		return 0, fmt.Errorf("decimals(%s): %w", token.Hex(), err)
	}
	return out[0].(uint8), nil
}

// BalanceOf reads the ERC-20 balance of owner.
func (c *Client) BalanceOf(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	var out []interface{}
	err := c.token(token).Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", owner)
	if err != nil {
		return nil, fmt.Errorf("balanceOf(%s): %w", token.Hex(), err)
	}
	return out[0].(*big.Int), nil
}

// RouterAllowance reads how much of token the router may spend for owner.
func (c *Client) RouterAllowance(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	var out []interface{}
	err := c.token(token).Call(&bind.CallOpts{Context: ctx}, &out, "allowance", owner, c.cfg.Router)
	if err != nil {
		return nil, fmt.Errorf("allowance(%s): %w", token.Hex(), err)
	}
	return out[0].(*big.Int), nil
}

// QuoteExactInputSingle runs one read-only QuoterV2 simulation for the pair
// at a single fee tier with no price limit.
func (c *Client) QuoteExactInputSingle(ctx context.Context, tokenIn, tokenOut common.Address, feeTier uint32, amountIn *big.Int) (*big.Int, error) {
	params := struct {
		TokenIn           common.Address
		TokenOut          common.Address
		AmountIn          *big.Int
		Fee               *big.Int
		SqrtPriceLimitX96 *big.Int
	}{
		TokenIn:           tokenIn,
		TokenOut:          tokenOut,
		AmountIn:          amountIn,
		Fee:               big.NewInt(int64(feeTier)),
		SqrtPriceLimitX96: big.NewInt(0),
	}
	var out []interface{}
	err := c.quoter.Call(&bind.CallOpts{Context: ctx}, &out, "quoteExactInputSingle", params)
	if err != nil {
		return nil, fmt.Errorf("quoteExactInputSingle fee %d: %w", feeTier, err)
	}
	return out[0].(*big.Int), nil
}

// transactOpts builds per-transaction signing options for one submission.
func (c *Client) transactOpts(ctx context.Context, signer *engine.Signer) (*bind.TransactOpts, error) {
	auth, err := bind.NewKeyedTransactorWithChainID(signer.Key, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("build transactor: %w", err)
	}
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}
	auth.Context = ctx
	auth.GasPrice = gasPrice
	auth.Value = big.NewInt(0)
	return auth, nil
}

// waitMined blocks until the transaction is included and checks the receipt.
func (c *Client) waitMined(ctx context.Context, tx *types.Transaction) (common.Hash, error) {
	receipt, err := bind.WaitMined(ctx, c.client, tx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("wait for tx %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return common.Hash{}, fmt.Errorf("tx %s reverted", tx.Hash().Hex())
	}
	return tx.Hash(), nil
}

// ApproveRouter grants the router an allowance on token and blocks until
// the approval is mined.
func (c *Client) ApproveRouter(ctx context.Context, signer *engine.Signer, token common.Address, amount *big.Int) (common.Hash, error) {
	auth, err := c.transactOpts(ctx, signer)
	if err != nil {
		return common.Hash{}, err
	}
	tx, err := c.token(token).Transact(auth, "approve", c.cfg.Router, amount)
	if err != nil {
		return common.Hash{}, fmt.Errorf("approve(%s): %w", token.Hex(), err)
	}
	log.Debug().Str("token", token.Hex()).Str("tx", tx.Hash().Hex()).Msg("approval submitted")
	return c.waitMined(ctx, tx)
}

// SwapExactInputSingle submits the swap with the configured gas ceiling and
// zero native value, then blocks until it is mined.
func (c *Client) SwapExactInputSingle(ctx context.Context, signer *engine.Signer, p engine.SwapParams) (common.Hash, error) {
	auth, err := c.transactOpts(ctx, signer)
	if err != nil {
		return common.Hash{}, err
	}
	auth.GasLimit = c.cfg.SwapGasLimit

	params := struct {
		TokenIn           common.Address
		TokenOut          common.Address
		Fee               *big.Int
		Recipient         common.Address
		Deadline          *big.Int
		AmountIn          *big.Int
		AmountOutMinimum  *big.Int
		SqrtPriceLimitX96 *big.Int
	}{
		TokenIn:           p.TokenIn,
		TokenOut:          p.TokenOut,
		Fee:               big.NewInt(int64(p.FeeTier)),
		Recipient:         p.Recipient,
		Deadline:          p.Deadline,
		AmountIn:          p.AmountIn,
		AmountOutMinimum:  p.AmountOutMinimum,
		SqrtPriceLimitX96: big.NewInt(0),
	}
	tx, err := c.router.Transact(auth, "exactInputSingle", params)
	if err != nil {
		return common.Hash{}, fmt.Errorf("exactInputSingle: %w", err)
	}
	log.Debug().Str("tx", tx.Hash().Hex()).Msg("swap submitted")
	return c.waitMined(ctx, tx)
}
