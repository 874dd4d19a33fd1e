package service

import (
	"context"
	"fmt"

	"raffle_deployer/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

type deployCall struct {
	name string
	opts entity.DeployOptions
}

type fakeFacility struct {
	calls     []deployCall
	deployed  map[string]entity.Deployment
	deployErr error
	logs      []string
}

func newFakeFacility() *fakeFacility {
	return &fakeFacility{deployed: map[string]entity.Deployment{}}
}

func (f *fakeFacility) Deploy(_ context.Context, name string, opts entity.DeployOptions) (entity.Deployment, error) {
	f.calls = append(f.calls, deployCall{name: name, opts: opts})
	if f.deployErr != nil {
		return entity.Deployment{}, f.deployErr
	}
	d := entity.Deployment{
		ContractName: name,
		Address:      common.BigToAddress(common.Big1),
		Deployer:     opts.From,
	}
	f.deployed[name] = d
	return d, nil
}

func (f *fakeFacility) Get(_ context.Context, name string) (entity.Deployment, error) {
	d, ok := f.deployed[name]
	if !ok {
		return entity.Deployment{}, fmt.Errorf("%w: %s", entity.ErrDeploymentNotFound, name)
	}
	return d, nil
}

func (f *fakeFacility) Log(msg string, _ ...any) {
	f.logs = append(f.logs, msg)
}

type fakeAccounts struct {
	accounts map[string]common.Address
	err      error
}

func (f fakeAccounts) NamedAccounts(context.Context) (map[string]common.Address, error) {
	return f.accounts, f.err
}

type fakeWriter struct {
	written []entity.Deployment
	err     error
}

func (w *fakeWriter) Write(_ context.Context, d entity.Deployment) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, d)
	return nil
}
