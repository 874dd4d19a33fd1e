package service

import (
	"context"
	"errors"
	"fmt"

	"raffle_deployer/internal/app/port"
	"raffle_deployer/internal/domain/entity"
)

// FrontEndWriter persists a deployment for the web front-end.
type FrontEndWriter interface {
	Write(ctx context.Context, d entity.Deployment) error
}

// UpdateFrontEnd exports the address and ABI of one contract to the front-end constants.
type UpdateFrontEnd struct {
	enabled      bool
	contractName string
	writer       FrontEndWriter
}

// NewUpdateFrontEnd creates the export script. A disabled script is a no-op.
func NewUpdateFrontEnd(enabled bool, contractName string, writer FrontEndWriter) *UpdateFrontEnd {
	return &UpdateFrontEnd{enabled: enabled, contractName: contractName, writer: writer}
}

// Name implements port.DeployScript.
func (s *UpdateFrontEnd) Name() string { return "99-update-front-end" }

// Tags implements port.DeployScript.
func (s *UpdateFrontEnd) Tags() []string { return []string{"all", "frontend"} }

// Run implements port.DeployScript.
func (s *UpdateFrontEnd) Run(ctx context.Context, env port.ScriptEnv) error {
	if !s.enabled {
		return nil
	}
	env.Deployments.Log("Updating front end...")

	d, err := env.Deployments.Get(ctx, s.contractName)
	if errors.Is(err, entity.ErrDeploymentNotFound) {
		env.Deployments.Log("Nothing to export, contract is not deployed", "contract", s.contractName, "network", env.Network.Name)
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.writer.Write(ctx, d); err != nil {
		return fmt.Errorf("failed to update front end: %w", err)
	}
	env.Deployments.Log("Front end written!", "contract", s.contractName, "address", d.Address.Hex())
	return nil
}
