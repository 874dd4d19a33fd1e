package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"time"

	"raffle_deployer/internal/app/port"
	"raffle_deployer/internal/domain/entity"
	"raffle_deployer/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

const defaultWaitTimeout = 2 * time.Minute

// EVMDeployerOptions tunes transaction sending.
type EVMDeployerOptions struct {
	WaitTimeout time.Duration
	GasLimit    uint64 // 0 lets the node estimate
}

// EVMDeployer implements port.DeploymentFacility on an EVM chain.
type EVMDeployer struct {
	network   entity.NetworkDefinition
	backend   ChainBackend
	artifacts port.ArtifactProvider
	store     port.DeploymentStore
	signer    port.TransactorProvider
	logger    port.Logger
	metrics   *metrics.Metrics
	opts      EVMDeployerOptions
	now       func() time.Time
}

// NewEVMDeployer creates a deployer bound to one network.
func NewEVMDeployer(
	c *ChainClient,
	artifacts port.ArtifactProvider,
	store port.DeploymentStore,
	signer port.TransactorProvider,
	logger port.Logger,
	m *metrics.Metrics,
	opts EVMDeployerOptions,
) *EVMDeployer {
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = defaultWaitTimeout
	}
	return &EVMDeployer{
		network:   c.Definition,
		backend:   c.Backend,
		artifacts: artifacts,
		store:     store,
		signer:    signer,
		logger:    logger,
		metrics:   m,
		opts:      opts,
		now:       time.Now,
	}
}

// Log writes an informational line on behalf of a script.
func (d *EVMDeployer) Log(msg string, args ...any) {
	d.logger.Info(msg, args...)
}

// Get returns the recorded deployment of a contract on this network.
func (d *EVMDeployer) Get(_ context.Context, name string) (entity.Deployment, error) {
	rec, found, err := d.store.Get(d.network.Name, name)
	if err != nil {
		return entity.Deployment{}, err
	}
	if !found {
		return entity.Deployment{}, fmt.Errorf("%w: %s on %s", entity.ErrDeploymentNotFound, name, d.network.Name)
	}
	return rec, nil
}

// Deploy deploys the named artifact with the given constructor args. A previous
// deployment with identical bytecode and args whose code is still on chain is reused.
func (d *EVMDeployer) Deploy(ctx context.Context, name string, opts entity.DeployOptions) (entity.Deployment, error) {
	artifact, err := d.artifacts.GetArtifact(name)
	if err != nil {
		d.count(name, metrics.OutcomeFailed)
		return entity.Deployment{}, err
	}
	parsedABI, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		d.count(name, metrics.OutcomeFailed)
		return entity.Deployment{}, fmt.Errorf("failed to parse ABI of %s: %w", name, err)
	}
	bytecode, err := hexutil.Decode(artifact.Bytecode)
	if err != nil {
		d.count(name, metrics.OutcomeFailed)
		return entity.Deployment{}, fmt.Errorf("failed to decode bytecode of %s: %w", name, err)
	}
	args := formatArgs(opts.Args)

	if rec, ok, err := d.reusable(ctx, name, artifact.Bytecode, args); err != nil {
		d.count(name, metrics.OutcomeFailed)
		return entity.Deployment{}, err
	} else if ok {
		if opts.Log {
			d.logger.Info(fmt.Sprintf("reusing \"%s\" at %s", name, rec.Address.Hex()))
		}
		d.count(name, metrics.OutcomeReused)
		rec.Reused = true
		return rec, nil
	}

	chainID, err := d.backend.ChainID(ctx)
	if err != nil {
		d.count(name, metrics.OutcomeFailed)
		return entity.Deployment{}, fmt.Errorf("failed to read chain ID: %w", err)
	}
	txOpts, err := d.signer.TransactOpts(ctx, opts.From, chainID)
	if err != nil {
		d.count(name, metrics.OutcomeFailed)
		return entity.Deployment{}, err
	}
	if d.opts.GasLimit > 0 {
		txOpts.GasLimit = d.opts.GasLimit
	}

	start := d.now()
	address, tx, _, err := bind.DeployContract(txOpts, parsedABI, bytecode, d.backend, opts.Args...)
	if err != nil {
		d.count(name, metrics.OutcomeFailed)
		return entity.Deployment{}, fmt.Errorf("failed to deploy %s: %w", name, err)
	}
	if opts.Log {
		d.logger.Info(fmt.Sprintf("deploying \"%s\" (tx: %s)...", name, tx.Hash().Hex()))
	}

	waitCtx, cancel := context.WithTimeout(ctx, d.opts.WaitTimeout)
	defer cancel()
	receipt, err := bind.WaitMined(waitCtx, d.backend, tx)
	if err != nil {
		d.count(name, metrics.OutcomeFailed)
		return entity.Deployment{}, fmt.Errorf("failed waiting for %s deployment %s: %w", name, tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		d.count(name, metrics.OutcomeFailed)
		return entity.Deployment{}, fmt.Errorf("%w: %s (tx %s)", entity.ErrDeploymentReverted, name, tx.Hash().Hex())
	}

	rec := entity.Deployment{
		ContractName:    name,
		Network:         d.network.Name,
		ChainID:         chainID.Uint64(),
		Address:         address,
		Deployer:        opts.From,
		TransactionHash: tx.Hash(),
		GasUsed:         receipt.GasUsed,
		Args:            args,
		Bytecode:        artifact.Bytecode,
		ABI:             artifact.ABI,
		DeployedAt:      d.now().UTC(),
	}
	if receipt.BlockNumber != nil {
		rec.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if err := d.store.Save(rec); err != nil {
		return entity.Deployment{}, fmt.Errorf("deployed %s at %s but failed to record it: %w", name, address.Hex(), err)
	}

	if d.metrics != nil {
		d.metrics.DeploymentDuration.WithLabelValues(d.network.Name, name).Observe(d.now().Sub(start).Seconds())
		d.metrics.DeploymentGasUsed.WithLabelValues(d.network.Name, name).Add(float64(receipt.GasUsed))
	}
	d.count(name, metrics.OutcomeDeployed)
	if opts.Log {
		d.logger.Info(fmt.Sprintf("deployed \"%s\" at %s with %d gas", name, address.Hex(), receipt.GasUsed))
	}
	return rec, nil
}

func (d *EVMDeployer) reusable(ctx context.Context, name, bytecode string, args []string) (entity.Deployment, bool, error) {
	rec, found, err := d.store.Get(d.network.Name, name)
	if err != nil {
		return entity.Deployment{}, false, fmt.Errorf("failed to read deployment record of %s: %w", name, err)
	}
	if !found || rec.Bytecode != bytecode || !slices.Equal(rec.Args, args) {
		return entity.Deployment{}, false, nil
	}
	code, err := d.backend.CodeAt(ctx, rec.Address, nil)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return entity.Deployment{}, false, err
		}
		d.logger.Warn("Could not check code of recorded deployment, redeploying", "contract", name, "address", rec.Address.Hex(), "error", err)
		return entity.Deployment{}, false, nil
	}
	return rec, len(code) > 0, nil
}

func (d *EVMDeployer) count(name, outcome string) {
	if d.metrics != nil {
		d.metrics.Deployments.WithLabelValues(d.network.Name, name, outcome).Inc()
	}
}

func formatArgs(args []any) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if b, ok := a.(*big.Int); ok && b != nil {
			out[i] = b.String()
			continue
		}
		out[i] = fmt.Sprint(a)
	}
	return out
}
