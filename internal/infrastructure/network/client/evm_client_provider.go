package client

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"raffle_deployer/internal/app/port"
	"raffle_deployer/internal/domain/entity"
	"raffle_deployer/internal/infrastructure/configloader"
	"raffle_deployer/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
)

const (
	defaultProviderConnectionTimeout = 10 * time.Second
	inProcessAccountBalance          = "10000" // ether per pre-funded account
)

// EVMClientProvider hands out one connected ChainClient per network and caches it.
type EVMClientProvider struct {
	clients map[string]*ChainClient
	mu      sync.Mutex
	cfg     *configloader.Config
	logger  port.Logger
}

// NewEVMClientProvider creates a new EVMClientProvider.
func NewEVMClientProvider(cfg *configloader.Config, logger port.Logger) *EVMClientProvider {
	return &EVMClientProvider{
		clients: make(map[string]*ChainClient),
		cfg:     cfg,
		logger:  logger,
	}
}

// GetClient retrieves a client for the network definition, connecting on first use.
// For ephemeral networks an in-process chain is started and funded accounts receive
// a balance; funded is ignored for remote networks.
func (p *EVMClientProvider) GetClient(ctx context.Context, def entity.NetworkDefinition, funded []common.Address) (*ChainClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, exists := p.clients[def.Name]; exists {
		p.logger.Debug("Returning cached EVM client", "network", def.Name)
		return c, nil
	}

	node, _ := p.cfg.NetworkNode(def.Name)

	var c *ChainClient
	if def.Ephemeral {
		p.logger.Info("Starting in-process chain", "network", def.Name, "chain_id", def.ChainID, "funded_accounts", len(funded))
		c = NewInProcessChain(def, funded, utils.MustParseEther(inProcessAccountBalance))
	} else {
		timeout := defaultProviderConnectionTimeout
		if node.RPCTimeoutMs > 0 {
			timeout = time.Duration(node.RPCTimeoutMs) * time.Millisecond
		}
		p.logger.Info("Creating new EVM client", "network", def.Name, "rpc_primary", def.PrimaryRPCURL)
		dialed, err := Dial(ctx, def, timeout)
		if err != nil {
			p.logger.Error("Failed to create EVM client", "network", def.Name, "error", err)
			return nil, fmt.Errorf("failed to create EVM client for %s: %w", def.Name, err)
		}
		c = dialed
	}

	limiter, err := NewLimiter(node.LimiterPeriod, node.LimiterBurst)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("network %s: %w", def.Name, err)
	}
	c.Backend = WithRateLimit(c.Backend, limiter)

	p.clients[def.Name] = c
	return c, nil
}

// Close shuts down every cached client.
func (p *EVMClientProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for name, c := range p.clients {
		c.Close()
		delete(p.clients, name)
	}
}

// DescribeBalances logs the native balance of each account, for the run header.
func DescribeBalances(ctx context.Context, c *ChainClient, accounts []common.Address, logger port.Logger) {
	balances, err := Balances(ctx, c.Backend, accounts)
	if err != nil {
		logger.Warn("Could not fetch account balances", "network", c.Definition.Name, "error", err)
		return
	}
	for _, addr := range accounts {
		bal := balances[addr]
		if bal == nil {
			bal = new(big.Int)
		}
		logger.Info("Account balance", "address", addr.Hex(), "balance", utils.FormatBigInt(bal, c.Definition.Decimals), "symbol", c.Definition.NativeSymbol)
	}
}
