package port

import (
	"context"

	"raffle_deployer/internal/domain/entity"
)

// ScriptEnv is everything a deploy script may touch during a run.
type ScriptEnv struct {
	Network     entity.NetworkDefinition
	Params      NetworkParametersProvider
	Accounts    AccountResolver
	Deployments DeploymentFacility
}

// DeployScript is a single provisioning step run by the script runner.
type DeployScript interface {
	// Name identifies the script in logs and errors, e.g. "00-deploy-mocks".
	Name() string
	// Tags are matched against the runner's --tags filter.
	Tags() []string
	Run(ctx context.Context, env ScriptEnv) error
}
