package port

import (
	"raffle_deployer/internal/domain/entity"
)

// NetworkDefinitionProvider defines the interface for providing runtime network definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns all available network definitions as a slice.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByName returns a specific network definition by its name.
	// Возвращает определение и true, если найдено, иначе false.
	GetNetworkDefinitionByName(name string) (entity.NetworkDefinition, bool)
}

// NetworkParametersProvider exposes the read-only per-network deployment parameters.
type NetworkParametersProvider interface {
	Lookup(key string) (entity.NetworkParameters, bool)
	ForChainID(chainID uint64) (entity.NetworkParameters, bool)
	Default() (entity.NetworkParameters, bool)
	Keys() []string
	IsDevelopmentChain(name string) bool
	DevelopmentChains() []string
}
