package client

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"raffle_deployer/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/eth/ethconfig"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/node"
	"golang.org/x/sync/errgroup"
)

// ChainBackend is the subset of an Ethereum client the deployer needs.
// Both *ethclient.Client and the in-process simulated client satisfy it.
type ChainBackend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// ChainClient is a connected backend for one network.
type ChainClient struct {
	Backend    ChainBackend
	Definition entity.NetworkDefinition
	closeFn    func()
}

// Close releases the underlying connection or in-process node.
func (c *ChainClient) Close() {
	if c != nil && c.closeFn != nil {
		c.closeFn()
	}
}

// Dial connects to the first reachable RPC URL of the network and checks that
// the endpoint serves the expected chain.
func Dial(ctx context.Context, def entity.NetworkDefinition, connectionTimeout time.Duration) (*ChainClient, error) {
	rpcURLs := def.RPCURLs()
	if len(rpcURLs) == 0 {
		return nil, fmt.Errorf("network %s has no RPC URL", def.Name)
	}
	var lastErr error

	for _, rpcURL := range rpcURLs {
		dialCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
		client, err := ethclient.DialContext(dialCtx, rpcURL)
		if err != nil {
			cancel()
			lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
			continue
		}

		err = verifyEndpoint(dialCtx, client, def)
		cancel()
		if err != nil {
			client.Close()
			lastErr = fmt.Errorf("RPC %s: %w", rpcURL, err)
			continue
		}
		return &ChainClient{Backend: client, Definition: def, closeFn: client.Close}, nil
	}

	return nil, fmt.Errorf("all RPC connection attempts failed for network %s: %w", def.Name, lastErr)
}

func verifyEndpoint(ctx context.Context, client *ethclient.Client, def entity.NetworkDefinition) error {
	var chainID *big.Int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		id, err := client.ChainID(gctx)
		if err != nil {
			return fmt.Errorf("failed to read chain ID: %w", err)
		}
		chainID = id
		return nil
	})
	g.Go(func() error {
		if _, err := client.BlockNumber(gctx); err != nil {
			return fmt.Errorf("failed to read block number: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if def.ChainID != 0 && chainID.Uint64() != def.ChainID {
		return fmt.Errorf("chainID mismatch: expected %d, got %d", def.ChainID, chainID.Uint64())
	}
	return nil
}

// simulatedChainID is the chain ID of the in-process chain when the definition has none.
const simulatedChainID = 1337

// automineBackend mines a block after every accepted transaction, like a local dev node.
type automineBackend struct {
	simulated.Client
	sim     *simulated.Backend
	chainID *big.Int
	mu      sync.Mutex
}

func (b *automineBackend) ChainID(context.Context) (*big.Int, error) {
	return new(big.Int).Set(b.chainID), nil
}

func (b *automineBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.Client.SendTransaction(ctx, tx); err != nil {
		return err
	}
	b.sim.Commit()
	return nil
}

// NewInProcessChain starts an ephemeral automining chain with the given chain ID and
// pre-funds the accounts. All state is lost on Close.
func NewInProcessChain(def entity.NetworkDefinition, funded []common.Address, balance *big.Int) *ChainClient {
	alloc := make(types.GenesisAlloc, len(funded))
	for _, addr := range funded {
		alloc[addr] = types.Account{Balance: new(big.Int).Set(balance)}
	}
	chainID := new(big.Int).SetUint64(def.ChainID)
	if chainID.Sign() == 0 {
		chainID.SetUint64(simulatedChainID)
	}
	sim := simulated.NewBackend(alloc, func(_ *node.Config, ethConf *ethconfig.Config) {
		// Genesis.Config points at a shared params value, copy before changing it.
		chainConfig := *ethConf.Genesis.Config
		chainConfig.ChainID = new(big.Int).Set(chainID)
		ethConf.Genesis.Config = &chainConfig
	})
	return &ChainClient{
		Backend:    &automineBackend{Client: sim.Client(), sim: sim, chainID: chainID},
		Definition: def,
		closeFn:    func() { _ = sim.Close() },
	}
}

// Balances fetches the native balances of accounts concurrently.
func Balances(ctx context.Context, backend ChainBackend, accounts []common.Address) (map[common.Address]*big.Int, error) {
	out := make(map[common.Address]*big.Int, len(accounts))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, addr := range accounts {
		g.Go(func() error {
			bal, err := backend.BalanceAt(gctx, addr, nil)
			if err != nil {
				return fmt.Errorf("failed to fetch balance of %s: %w", addr.Hex(), err)
			}
			mu.Lock()
			out[addr] = bal
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
