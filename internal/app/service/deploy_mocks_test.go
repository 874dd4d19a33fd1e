package service

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"raffle_deployer/internal/app/port"
	"raffle_deployer/internal/domain/entity"
	networkdefinition "raffle_deployer/internal/infrastructure/network/definition"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var deployerAddr = common.HexToAddress("0x00000000000000000000000000000000000000d1")

func mocksEnv(network string, facility *fakeFacility, accounts fakeAccounts) port.ScriptEnv {
	return port.ScriptEnv{
		Network:     entity.NetworkDefinition{Name: network, ChainID: 31337},
		Params:      networkdefinition.NewNetworkConfig(),
		Accounts:    accounts,
		Deployments: facility,
	}
}

func TestDeployMocksOnDevelopmentChains(t *testing.T) {
	for _, network := range []string{"hardhat", "localhost"} {
		t.Run(network, func(t *testing.T) {
			facility := newFakeFacility()
			accounts := fakeAccounts{accounts: map[string]common.Address{"deployer": deployerAddr}}

			err := NewDeployMocks().Run(context.Background(), mocksEnv(network, facility, accounts))
			require.NoError(t, err)

			require.Len(t, facility.calls, 1)
			call := facility.calls[0]
			assert.Equal(t, "VRFCoordinatorV2Mock", call.name)
			assert.Equal(t, deployerAddr, call.opts.From)
			assert.True(t, call.opts.Log)

			require.Len(t, call.opts.Args, 2)
			baseFee, ok := call.opts.Args[0].(*big.Int)
			require.True(t, ok)
			assert.Equal(t, "250000000000000000", baseFee.String())
			gasPrice, ok := call.opts.Args[1].(*big.Int)
			require.True(t, ok)
			assert.Equal(t, "1000000000", gasPrice.String())

			assert.Equal(t, "Local network detected! Deploying mocks...", facility.logs[0])
			assert.Contains(t, facility.logs, "Mocks deployed!")
		})
	}
}

func TestDeployMocksSkipsOtherNetworks(t *testing.T) {
	facility := newFakeFacility()
	accounts := fakeAccounts{accounts: map[string]common.Address{"deployer": deployerAddr}}

	err := NewDeployMocks().Run(context.Background(), mocksEnv("goerli", facility, accounts))
	require.NoError(t, err)
	assert.Empty(t, facility.calls)
	assert.Empty(t, facility.logs)
}

func TestDeployMocksPropagatesFailures(t *testing.T) {
	t.Run("deploy error", func(t *testing.T) {
		facility := newFakeFacility()
		facility.deployErr = entity.ErrArtifactNotFound
		accounts := fakeAccounts{accounts: map[string]common.Address{"deployer": deployerAddr}}

		err := NewDeployMocks().Run(context.Background(), mocksEnv("hardhat", facility, accounts))
		require.Error(t, err)
		assert.True(t, errors.Is(err, entity.ErrArtifactNotFound))
		assert.NotContains(t, facility.logs, "Mocks deployed!")
	})

	t.Run("no deployer account", func(t *testing.T) {
		facility := newFakeFacility()

		err := NewDeployMocks().Run(context.Background(), mocksEnv("hardhat", facility, fakeAccounts{accounts: map[string]common.Address{}}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, entity.ErrUnknownAccount))
		assert.Empty(t, facility.calls)
	})

	t.Run("resolver error", func(t *testing.T) {
		facility := newFakeFacility()

		err := NewDeployMocks().Run(context.Background(), mocksEnv("hardhat", facility, fakeAccounts{err: errors.New("keystore locked")}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "keystore locked")
		assert.Empty(t, facility.calls)
	})
}

func TestDeployMocksArgsAreNotShared(t *testing.T) {
	facility := newFakeFacility()
	accounts := fakeAccounts{accounts: map[string]common.Address{"deployer": deployerAddr}}
	require.NoError(t, NewDeployMocks().Run(context.Background(), mocksEnv("hardhat", facility, accounts)))

	facility.calls[0].opts.Args[0].(*big.Int).SetInt64(0)
	assert.Equal(t, "250000000000000000", BaseFee.String())
}

func TestDeployMocksTags(t *testing.T) {
	s := NewDeployMocks()
	assert.Equal(t, "00-deploy-mocks", s.Name())
	assert.Equal(t, []string{"all", "mocks"}, s.Tags())
}
