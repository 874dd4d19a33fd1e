package networkdefinition

import (
	"sort"
	"strconv"

	"raffle_deployer/internal/domain/entity"
	"raffle_deployer/internal/pkg/utils"
)

const (
	// DefaultKey is the table identifier of the "default" entry.
	DefaultKey = "default"

	// FrontEndContractsFile and FrontEndABIFile are where the web front-end expects
	// deployed addresses and the contract ABI.
	FrontEndContractsFile = "../raffle-nextjs/constants/contractAddresses.json"
	FrontEndABIFile       = "../raffle-nextjs/constants/abi.json"
)

// NetworkConfig is the immutable per-network parameter table together with the
// set of development chains. Build it once with NewNetworkConfig and share the pointer.
type NetworkConfig struct {
	params            map[string]entity.NetworkParameters
	developmentChains map[string]struct{}
}

// NewNetworkConfig builds the deployment parameter table.
func NewNetworkConfig() *NetworkConfig {
	entries := []entity.NetworkParameters{
		{
			Key:                   DefaultKey,
			Name:                  "hardhat",
			KeepersUpdateInterval: "30",
		},
		{
			Key:              "31337",
			Name:             "hardhat",
			SubscriptionID:   "588",
			GasLane:          "0xd89b2bf150e3b9e13446986e571fb9cab24b13cea0a43ea20a6049a85cc807cc", // 30 gwei
			Interval:         "30",
			EntranceFee:      utils.MustParseEther("0.01"),
			CallbackGasLimit: "500000", // 500,000 gas
		},
		{
			Key:              "5",
			Name:             "goerli",
			SubscriptionID:   "6249",
			GasLane:          "0x79d3d8832d904592c0bf9818b621522c988bb8b0c05cdc3b15aea1b6e8db0c15",
			Interval:         "30",
			EntranceFee:      utils.MustParseEther("0.01"),
			CallbackGasLimit: "500000",
			VRFCoordinatorV2: "0x2ca8e0c643bde4c2e08ab1fa0da3401adad7734d",
		},
	}
	return newNetworkConfig(entries, []string{"hardhat", "localhost"})
}

func newNetworkConfig(entries []entity.NetworkParameters, devChains []string) *NetworkConfig {
	c := &NetworkConfig{
		params:            make(map[string]entity.NetworkParameters, len(entries)),
		developmentChains: make(map[string]struct{}, len(devChains)),
	}
	for _, e := range entries {
		c.params[e.Key] = e.Clone()
	}
	for _, name := range devChains {
		c.developmentChains[name] = struct{}{}
	}
	return c
}

// Lookup returns the entry stored under key ("default", "31337", "5", ...).
func (c *NetworkConfig) Lookup(key string) (entity.NetworkParameters, bool) {
	p, ok := c.params[key]
	if !ok {
		return entity.NetworkParameters{}, false
	}
	return p.Clone(), true
}

// ForChainID returns the entry for a chain ID. Unconfigured chains are absent;
// the "default" entry is never merged in.
func (c *NetworkConfig) ForChainID(chainID uint64) (entity.NetworkParameters, bool) {
	return c.Lookup(strconv.FormatUint(chainID, 10))
}

// Default returns the "default" entry.
func (c *NetworkConfig) Default() (entity.NetworkParameters, bool) {
	return c.Lookup(DefaultKey)
}

// Keys returns all table identifiers in sorted order.
func (c *NetworkConfig) Keys() []string {
	keys := make([]string, 0, len(c.params))
	for k := range c.params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsDevelopmentChain reports whether the network name is a local, ephemeral chain.
func (c *NetworkConfig) IsDevelopmentChain(name string) bool {
	_, ok := c.developmentChains[name]
	return ok
}

// DevelopmentChains returns the development network names in sorted order.
func (c *NetworkConfig) DevelopmentChains() []string {
	names := make([]string, 0, len(c.developmentChains))
	for n := range c.developmentChains {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
