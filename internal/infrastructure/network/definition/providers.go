package networkdefinition

import (
	"fmt"
	"sort"

	"raffle_deployer/internal/app/port"
	"raffle_deployer/internal/domain/entity"
	"raffle_deployer/internal/infrastructure/configloader"
)

// NetworkDefinitionProvider provides runtime network definitions: the built-in
// networks merged with the overrides from the configuration file.
type NetworkDefinitionProvider struct {
	logger  port.Logger
	allDefs map[string]entity.NetworkDefinition
}

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Hardhat = entity.NetworkDefinition{
		ChainID:      31337,
		Name:         "hardhat",
		DisplayName:  "Hardhat in-process network",
		NativeSymbol: "ETH",
		Decimals:     18,
		Ephemeral:    true, // без RPC: поднимается в процессе
	}
	Localhost = entity.NetworkDefinition{
		ChainID:       31337,
		Name:          "localhost",
		DisplayName:   "Local development node",
		NativeSymbol:  "ETH",
		Decimals:      18,
		PrimaryRPCURL: "http://127.0.0.1:8545",
	}
	Goerli = entity.NetworkDefinition{
		ChainID:          5,
		Name:             "goerli",
		DisplayName:      "Goerli Testnet",
		NativeSymbol:     "ETH",
		Decimals:         18,
		BlockExplorerURL: "https://goerli.etherscan.io",
	}
)

// NewNetworkDefinitionProvider creates a provider from the built-in definitions and the config overrides.
func NewNetworkDefinitionProvider(logger port.Logger, cfg *configloader.Config) *NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{
		logger: logger,
		allDefs: map[string]entity.NetworkDefinition{
			Hardhat.Name:   Hardhat,
			Localhost.Name: Localhost,
			Goerli.Name:    Goerli,
		},
	}
	if cfg == nil {
		return p
	}

	for _, node := range cfg.Networks {
		def, known := p.allDefs[node.Name]
		if !known {
			def = entity.NetworkDefinition{Name: node.Name, DisplayName: node.Name, NativeSymbol: "ETH", Decimals: 18}
			p.logger.Debug(fmt.Sprintf("Adding network '%s' from configuration", node.Name))
		}
		if node.ChainID != 0 {
			if known && def.ChainID != node.ChainID {
				p.logger.Warn("Configured chain ID differs from built-in definition", "network", node.Name, "builtin", def.ChainID, "configured", node.ChainID)
			}
			def.ChainID = node.ChainID
		}
		if node.RPCURL != "" {
			def.PrimaryRPCURL = node.RPCURL
			// An explicit RPC URL turns the in-process network into a remote one.
			def.Ephemeral = false
		}
		if len(node.FallbackRPCURLs) > 0 {
			def.FallbackRPCURLs = append([]string(nil), node.FallbackRPCURLs...)
		}
		p.allDefs[node.Name] = def
	}
	return p
}

// GetAllNetworkDefinitions returns every known network definition, sorted by name.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defs := make([]entity.NetworkDefinition, 0, len(p.allDefs))
	for _, def := range p.allDefs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// GetNetworkDefinitionByName returns a specific network definition by its name.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(name string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	def, ok := p.allDefs[name]
	return def, ok
}

// Resolve returns the definition for name or ErrUnknownNetwork. Remote networks
// without any RPC URL are rejected here rather than at dial time.
func (p *NetworkDefinitionProvider) Resolve(name string) (entity.NetworkDefinition, error) {
	def, ok := p.GetNetworkDefinitionByName(name)
	if !ok {
		return entity.NetworkDefinition{}, fmt.Errorf("%w: %s", entity.ErrUnknownNetwork, name)
	}
	if !def.Ephemeral && len(def.RPCURLs()) == 0 {
		return entity.NetworkDefinition{}, fmt.Errorf("network %s has no RPC URL configured", name)
	}
	return def, nil
}
