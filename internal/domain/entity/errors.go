package entity

import "errors"

var (
	// ErrMissingParameter is returned when a network parameter is read but was never configured.
	ErrMissingParameter = errors.New("network parameter not configured")
	// ErrUnknownNetwork is returned when a network name has no definition.
	ErrUnknownNetwork = errors.New("unknown network")
	// ErrArtifactNotFound is returned when no compiled artifact exists for a contract name.
	ErrArtifactNotFound = errors.New("contract artifact not found")
	// ErrUnknownAccount is returned when a named account or address cannot be resolved to a key.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrDeploymentReverted is returned when the deployment transaction was mined with a failed status.
	ErrDeploymentReverted = errors.New("deployment transaction reverted")
	// ErrDeploymentNotFound is returned when no deployment record exists for a contract.
	ErrDeploymentNotFound = errors.New("deployment not found")
)
