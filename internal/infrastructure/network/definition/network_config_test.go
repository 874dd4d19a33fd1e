package networkdefinition

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"raffle_deployer/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForChainIDHardhat(t *testing.T) {
	cfg := NewNetworkConfig()

	p, ok := cfg.ForChainID(31337)
	require.True(t, ok)
	assert.Equal(t, "hardhat", p.Name)
	assert.Equal(t, "30", p.Interval)
	assert.Equal(t, "500000", p.CallbackGasLimit)
	assert.Equal(t, 0, p.EntranceFee.Cmp(big.NewInt(1e16)))

	interval, err := p.IntervalDuration()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, interval)

	gas, err := p.CallbackGasLimitValue()
	require.NoError(t, err)
	assert.Equal(t, uint32(500000), gas)

	sub, err := p.SubscriptionIDValue()
	require.NoError(t, err)
	assert.Equal(t, uint64(588), sub)

	lane, err := p.GasLaneHash()
	require.NoError(t, err)
	assert.Equal(t, common.HexToHash("0xd89b2bf150e3b9e13446986e571fb9cab24b13cea0a43ea20a6049a85cc807cc"), lane)
}

func TestForChainIDGoerliCoordinator(t *testing.T) {
	p, ok := NewNetworkConfig().ForChainID(5)
	require.True(t, ok)
	assert.Equal(t, "goerli", p.Name)

	addr, err := p.CoordinatorAddress()
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x2ca8e0c643bde4c2e08ab1fa0da3401adad7734d"), addr)
}

func TestUnknownChainHasNoEntry(t *testing.T) {
	cfg := NewNetworkConfig()

	_, ok := cfg.ForChainID(1)
	assert.False(t, ok, "default entry must not be merged in for unconfigured chains")

	_, ok = cfg.Lookup("mainnet")
	assert.False(t, ok)
}

func TestDefaultEntryIsExplicit(t *testing.T) {
	p, ok := NewNetworkConfig().Default()
	require.True(t, ok)
	assert.Equal(t, "hardhat", p.Name)
	assert.Equal(t, "30", p.KeepersUpdateInterval)

	_, err := p.EntranceFeeWei()
	assert.True(t, errors.Is(err, entity.ErrMissingParameter))
}

func TestMissingFieldSurfacesAtUse(t *testing.T) {
	p, ok := NewNetworkConfig().ForChainID(31337)
	require.True(t, ok)

	_, err := p.CoordinatorAddress()
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrMissingParameter)
	assert.Contains(t, err.Error(), "vrfCoordinatorV2")
	assert.Contains(t, err.Error(), "31337")
}

func TestMalformedFieldIsNotMissing(t *testing.T) {
	cfg := newNetworkConfig([]entity.NetworkParameters{{Key: "99", Interval: "thirty", GasLane: "0x1234"}}, nil)
	p, ok := cfg.Lookup("99")
	require.True(t, ok)

	_, err := p.IntervalDuration()
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrMissingParameter)

	_, err = p.GasLaneHash()
	assert.Error(t, err)
}

func TestLookupReturnsCopies(t *testing.T) {
	cfg := NewNetworkConfig()

	p, _ := cfg.ForChainID(31337)
	p.EntranceFee.SetInt64(1)
	p.Interval = "1"

	again, _ := cfg.ForChainID(31337)
	assert.Equal(t, "30", again.Interval)
	assert.Equal(t, 0, again.EntranceFee.Cmp(big.NewInt(1e16)))

	fee, err := again.EntranceFeeWei()
	require.NoError(t, err)
	fee.SetInt64(2)
	assert.Equal(t, 0, again.EntranceFee.Cmp(big.NewInt(1e16)))
}

func TestDevelopmentChains(t *testing.T) {
	cfg := NewNetworkConfig()

	assert.True(t, cfg.IsDevelopmentChain("hardhat"))
	assert.True(t, cfg.IsDevelopmentChain("localhost"))
	assert.False(t, cfg.IsDevelopmentChain("goerli"))
	assert.False(t, cfg.IsDevelopmentChain(""))
	assert.Equal(t, []string{"hardhat", "localhost"}, cfg.DevelopmentChains())
	assert.Equal(t, []string{"31337", "5", "default"}, cfg.Keys())
}
