package client

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"math/big"
	"testing"

	"raffle_deployer/internal/app/provider"
	"raffle_deployer/internal/domain/entity"
	"raffle_deployer/internal/infrastructure/deploymentstore"
	"raffle_deployer/internal/pkg/logger"
	"raffle_deployer/internal/pkg/metrics"
	"raffle_deployer/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	coordinatorABI = `[{"inputs":[{"internalType":"uint96","name":"_baseFee","type":"uint96"},{"internalType":"uint96","name":"_gasPriceLink","type":"uint96"}],"stateMutability":"nonpayable","type":"constructor"}]`
	// Init code returning a 10 byte runtime that answers every call with 42.
	storingBytecode = "0x600a600c600039600a6000f3602a60005260206000f3"
	// PUSH1 0 PUSH1 0 REVERT
	revertingBytecode = "0x60006000fd"
)

type mapArtifacts map[string]entity.Artifact

func (m mapArtifacts) GetArtifact(name string) (entity.Artifact, error) {
	a, ok := m[name]
	if !ok {
		return entity.Artifact{}, entity.ErrArtifactNotFound
	}
	return a, nil
}

type deployFixture struct {
	chain    *ChainClient
	deployer *EVMDeployer
	store    *deploymentstore.MemoryStore
	metrics  *metrics.Metrics
	from     common.Address
}

func newDeployFixture(t *testing.T, opts EVMDeployerOptions) *deployFixture {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	def := entity.NetworkDefinition{Name: "hardhat", ChainID: 31337, Decimals: 18, NativeSymbol: "ETH", Ephemeral: true}
	chain := NewInProcessChain(def, []common.Address{from}, utils.MustParseEther("100"))
	t.Cleanup(chain.Close)

	artifacts := mapArtifacts{
		"VRFCoordinatorV2Mock": {ContractName: "VRFCoordinatorV2Mock", ABI: json.RawMessage(coordinatorABI), Bytecode: storingBytecode},
		"Broken":               {ContractName: "Broken", ABI: json.RawMessage(`[]`), Bytecode: revertingBytecode},
	}
	store := deploymentstore.NewMemoryStore()
	m := metrics.New()
	accounts := provider.NewAccountProvider([]*ecdsa.PrivateKey{key}, map[string]int{"deployer": 0}, logger.NewNopAdapter())

	return &deployFixture{
		chain:    chain,
		deployer: NewEVMDeployer(chain, artifacts, store, accounts, logger.NewNopAdapter(), m, opts),
		store:    store,
		metrics:  m,
		from:     from,
	}
}

func mockArgs() []any {
	return []any{utils.MustParseEther("0.25"), big.NewInt(1e9)}
}

func TestDeployThenReuse(t *testing.T) {
	f := newDeployFixture(t, EVMDeployerOptions{})
	ctx := context.Background()

	first, err := f.deployer.Deploy(ctx, "VRFCoordinatorV2Mock", entity.DeployOptions{From: f.from, Args: mockArgs(), Log: true})
	require.NoError(t, err)
	assert.False(t, first.Reused)
	assert.Equal(t, uint64(31337), first.ChainID)
	assert.Equal(t, f.from, first.Deployer)
	assert.Equal(t, []string{"250000000000000000", "1000000000"}, first.Args)
	assert.NotZero(t, first.GasUsed)

	code, err := f.chain.Backend.CodeAt(ctx, first.Address, nil)
	require.NoError(t, err)
	assert.Equal(t, common.FromHex("0x602a60005260206000f3"), code)

	second, err := f.deployer.Deploy(ctx, "VRFCoordinatorV2Mock", entity.DeployOptions{From: f.from, Args: mockArgs()})
	require.NoError(t, err)
	assert.True(t, second.Reused)
	assert.Equal(t, first.Address, second.Address)

	third, err := f.deployer.Deploy(ctx, "VRFCoordinatorV2Mock", entity.DeployOptions{From: f.from, Args: []any{big.NewInt(1), big.NewInt(2)}})
	require.NoError(t, err)
	assert.False(t, third.Reused)
	assert.NotEqual(t, first.Address, third.Address)

	got, err := f.deployer.Get(ctx, "VRFCoordinatorV2Mock")
	require.NoError(t, err)
	assert.Equal(t, third.Address, got.Address)

	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.Deployments.WithLabelValues("hardhat", "VRFCoordinatorV2Mock", metrics.OutcomeDeployed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Deployments.WithLabelValues("hardhat", "VRFCoordinatorV2Mock", metrics.OutcomeReused)))
}

func TestDeployFailures(t *testing.T) {
	f := newDeployFixture(t, EVMDeployerOptions{GasLimit: 200000})
	ctx := context.Background()

	_, err := f.deployer.Deploy(ctx, "Missing", entity.DeployOptions{From: f.from})
	assert.ErrorIs(t, err, entity.ErrArtifactNotFound)

	stranger := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	_, err = f.deployer.Deploy(ctx, "VRFCoordinatorV2Mock", entity.DeployOptions{From: stranger, Args: mockArgs()})
	assert.ErrorIs(t, err, entity.ErrUnknownAccount)

	_, err = f.deployer.Deploy(ctx, "Broken", entity.DeployOptions{From: f.from})
	assert.ErrorIs(t, err, entity.ErrDeploymentReverted)

	_, err = f.deployer.Get(ctx, "Broken")
	assert.ErrorIs(t, err, entity.ErrDeploymentNotFound)
}

func TestBalances(t *testing.T) {
	f := newDeployFixture(t, EVMDeployerOptions{})
	other := common.HexToAddress("0x0000000000000000000000000000000000000001")

	balances, err := Balances(context.Background(), f.chain.Backend, []common.Address{f.from, other})
	require.NoError(t, err)
	assert.Equal(t, 0, balances[f.from].Cmp(utils.MustParseEther("100")))
	assert.Equal(t, 0, balances[other].Sign())

	id, err := f.chain.Backend.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), id.Uint64())
}

func TestNewLimiter(t *testing.T) {
	l, err := NewLimiter("", 0)
	require.NoError(t, err)
	assert.Nil(t, l)

	l, err = NewLimiter("100ms", 0)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, 1, l.Burst())

	_, err = NewLimiter("soon", 1)
	assert.Error(t, err)

	_, err = NewLimiter("-1s", 1)
	assert.Error(t, err)
}

func TestWithRateLimitPassesThrough(t *testing.T) {
	f := newDeployFixture(t, EVMDeployerOptions{})
	l, err := NewLimiter("1ms", 5)
	require.NoError(t, err)

	limited := WithRateLimit(f.chain.Backend, l)
	id, err := limited.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), id.Uint64())

	assert.Same(t, f.chain.Backend, WithRateLimit(f.chain.Backend, nil))
}

func TestFormatArgs(t *testing.T) {
	assert.Equal(t, []string{"250000000000000000", "1000000000", "abc"}, formatArgs([]any{utils.MustParseEther("0.25"), big.NewInt(1e9), "abc"}))
	assert.Empty(t, formatArgs(nil))
}
