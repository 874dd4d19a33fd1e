package entity

import (
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// NetworkParameters holds the deployment parameters of a single network.
// Every field is optional. Nothing is validated when the table is built,
// the typed accessors below report a missing or malformed value when it is read.
type NetworkParameters struct {
	Key                   string   `json:"key" yaml:"key"` // Table identifier: a chain ID or "default"
	Name                  string   `json:"name,omitempty" yaml:"name,omitempty"`
	SubscriptionID        string   `json:"subscriptionId,omitempty" yaml:"subscriptionId,omitempty"`
	GasLane               string   `json:"gasLane,omitempty" yaml:"gasLane,omitempty"`
	Interval              string   `json:"interval,omitempty" yaml:"interval,omitempty"` // Seconds
	KeepersUpdateInterval string   `json:"keepersUpdateInterval,omitempty" yaml:"keepersUpdateInterval,omitempty"`
	EntranceFee           *big.Int `json:"entranceFee,omitempty" yaml:"entranceFee,omitempty"` // Wei
	CallbackGasLimit      string   `json:"callbackGasLimit,omitempty" yaml:"callbackGasLimit,omitempty"`
	VRFCoordinatorV2      string   `json:"vrfCoordinatorV2,omitempty" yaml:"vrfCoordinatorV2,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate table data through the big.Int.
func (p NetworkParameters) Clone() NetworkParameters {
	if p.EntranceFee != nil {
		p.EntranceFee = new(big.Int).Set(p.EntranceFee)
	}
	return p
}

func (p NetworkParameters) missing(field string) error {
	return fmt.Errorf("%w: %s for network %q", ErrMissingParameter, field, p.Key)
}

// SubscriptionIDValue returns the oracle subscription ID.
func (p NetworkParameters) SubscriptionIDValue() (uint64, error) {
	if p.SubscriptionID == "" {
		return 0, p.missing("subscriptionId")
	}
	id, err := strconv.ParseUint(p.SubscriptionID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subscriptionId %q for network %q: %w", p.SubscriptionID, p.Key, err)
	}
	return id, nil
}

// GasLaneHash returns the key hash selecting the oracle fee tier.
func (p NetworkParameters) GasLaneHash() (common.Hash, error) {
	if p.GasLane == "" {
		return common.Hash{}, p.missing("gasLane")
	}
	b, err := hexutil.Decode(p.GasLane)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid gasLane %q for network %q", p.GasLane, p.Key)
	}
	return common.BytesToHash(b), nil
}

// IntervalDuration returns the upkeep interval.
func (p NetworkParameters) IntervalDuration() (time.Duration, error) {
	if p.Interval == "" {
		return 0, p.missing("interval")
	}
	return parseSeconds(p.Interval, "interval", p.Key)
}

// KeepersUpdateIntervalDuration returns the keepers update interval.
func (p NetworkParameters) KeepersUpdateIntervalDuration() (time.Duration, error) {
	if p.KeepersUpdateInterval == "" {
		return 0, p.missing("keepersUpdateInterval")
	}
	return parseSeconds(p.KeepersUpdateInterval, "keepersUpdateInterval", p.Key)
}

// EntranceFeeWei returns a copy of the entrance fee in wei.
func (p NetworkParameters) EntranceFeeWei() (*big.Int, error) {
	if p.EntranceFee == nil {
		return nil, p.missing("entranceFee")
	}
	return new(big.Int).Set(p.EntranceFee), nil
}

// CallbackGasLimitValue returns the oracle callback gas limit.
func (p NetworkParameters) CallbackGasLimitValue() (uint32, error) {
	if p.CallbackGasLimit == "" {
		return 0, p.missing("callbackGasLimit")
	}
	v, err := strconv.ParseUint(p.CallbackGasLimit, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid callbackGasLimit %q for network %q: %w", p.CallbackGasLimit, p.Key, err)
	}
	return uint32(v), nil
}

// CoordinatorAddress returns the externally deployed coordinator address.
func (p NetworkParameters) CoordinatorAddress() (common.Address, error) {
	if p.VRFCoordinatorV2 == "" {
		return common.Address{}, p.missing("vrfCoordinatorV2")
	}
	if !common.IsHexAddress(p.VRFCoordinatorV2) {
		return common.Address{}, fmt.Errorf("invalid vrfCoordinatorV2 %q for network %q", p.VRFCoordinatorV2, p.Key)
	}
	return common.HexToAddress(p.VRFCoordinatorV2), nil
}

func parseSeconds(raw, field, key string) (time.Duration, error) {
	secs, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q for network %q: %w", field, raw, key, err)
	}
	return time.Duration(secs) * time.Second, nil
}
