package service

import (
	"context"
	"fmt"
	"math/big"

	"raffle_deployer/internal/app/port"
	"raffle_deployer/internal/domain/entity"
	"raffle_deployer/internal/pkg/utils"
)

// MockCoordinatorName is the artifact deployed as the local oracle coordinator.
const MockCoordinatorName = "VRFCoordinatorV2Mock"

var (
	// BaseFee is the flat oracle fee per request. On a local chain it is paid in ether instead of LINK.
	BaseFee = utils.MustParseEther("0.25")
	// GasPriceLink is the LINK-per-gas rate the mock charges for callback gas.
	GasPriceLink = big.NewInt(1e9)
)

// DeployMocks deploys the mock coordinator, but only on development chains.
type DeployMocks struct{}

// NewDeployMocks creates the mocks script.
func NewDeployMocks() *DeployMocks {
	return &DeployMocks{}
}

// Name implements port.DeployScript.
func (s *DeployMocks) Name() string { return "00-deploy-mocks" }

// Tags implements port.DeployScript.
func (s *DeployMocks) Tags() []string { return []string{"all", "mocks"} }

// Run implements port.DeployScript.
func (s *DeployMocks) Run(ctx context.Context, env port.ScriptEnv) error {
	if !env.Params.IsDevelopmentChain(env.Network.Name) {
		return nil
	}

	env.Deployments.Log("Local network detected! Deploying mocks...")

	accounts, err := env.Accounts.NamedAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve named accounts: %w", err)
	}
	deployer, ok := accounts["deployer"]
	if !ok {
		return fmt.Errorf("%w: named account \"deployer\"", entity.ErrUnknownAccount)
	}

	_, err = env.Deployments.Deploy(ctx, MockCoordinatorName, entity.DeployOptions{
		From: deployer,
		Args: []any{new(big.Int).Set(BaseFee), new(big.Int).Set(GasPriceLink)},
		Log:  true,
	})
	if err != nil {
		return err
	}

	env.Deployments.Log("Mocks deployed!")
	env.Deployments.Log("---------------------------------------------")
	return nil
}
