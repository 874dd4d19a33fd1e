package client

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/time/rate"
)

// NewLimiter builds a limiter from a period string ("100ms") and burst.
// An empty period returns nil, meaning unlimited.
func NewLimiter(period string, burst int) (*rate.Limiter, error) {
	if period == "" {
		return nil, nil
	}
	d, err := time.ParseDuration(period)
	if err != nil {
		return nil, fmt.Errorf("invalid limiter period %q: %w", period, err)
	}
	if d <= 0 {
		return nil, fmt.Errorf("limiter period must be positive, got %s", period)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(d), burst), nil
}

// rateLimitedBackend throttles the RPC calls a deployment makes.
type rateLimitedBackend struct {
	ChainBackend
	limiter *rate.Limiter
}

// WithRateLimit wraps backend; a nil limiter returns backend unchanged.
func WithRateLimit(backend ChainBackend, limiter *rate.Limiter) ChainBackend {
	if limiter == nil {
		return backend
	}
	return &rateLimitedBackend{ChainBackend: backend, limiter: limiter}
}

func (b *rateLimitedBackend) ChainID(ctx context.Context) (*big.Int, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return b.ChainBackend.ChainID(ctx)
}

func (b *rateLimitedBackend) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return b.ChainBackend.BalanceAt(ctx, account, blockNumber)
}

func (b *rateLimitedBackend) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return b.ChainBackend.CodeAt(ctx, contract, blockNumber)
}

func (b *rateLimitedBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	return b.ChainBackend.PendingNonceAt(ctx, account)
}

func (b *rateLimitedBackend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	return b.ChainBackend.EstimateGas(ctx, call)
}

func (b *rateLimitedBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	return b.ChainBackend.SendTransaction(ctx, tx)
}

func (b *rateLimitedBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return b.ChainBackend.TransactionReceipt(ctx, txHash)
}
