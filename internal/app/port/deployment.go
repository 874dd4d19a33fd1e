package port

import (
	"context"
	"math/big"

	"raffle_deployer/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// AccountResolver resolves the named accounts scripts deploy from.
type AccountResolver interface {
	NamedAccounts(ctx context.Context) (map[string]common.Address, error)
}

// TransactorProvider signs transactions on behalf of a resolved account.
type TransactorProvider interface {
	TransactOpts(ctx context.Context, from common.Address, chainID *big.Int) (*bind.TransactOpts, error)
	Addresses() []common.Address
}

// DeploymentFacility deploys contracts by artifact name and reports what it did.
type DeploymentFacility interface {
	Deploy(ctx context.Context, name string, opts entity.DeployOptions) (entity.Deployment, error)
	Get(ctx context.Context, name string) (entity.Deployment, error)
	Log(msg string, args ...any)
}

// ArtifactProvider loads compiled contract artifacts.
type ArtifactProvider interface {
	GetArtifact(name string) (entity.Artifact, error)
}

// DeploymentStore persists deployment records per network.
type DeploymentStore interface {
	Get(network, name string) (entity.Deployment, bool, error)
	Save(d entity.Deployment) error
	List(network string) ([]entity.Deployment, error)
}
