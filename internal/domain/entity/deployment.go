package entity

import (
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// DeployOptions describes a single contract deployment request.
type DeployOptions struct {
	From common.Address
	Args []any
	Log  bool // Log the deployment result through the facility logger
}

// Deployment is the persisted record of a deployed contract.
type Deployment struct {
	ContractName    string          `json:"contractName"`
	Network         string          `json:"network"`
	ChainID         uint64          `json:"chainId"`
	Address         common.Address  `json:"address"`
	Deployer        common.Address  `json:"deployer"`
	TransactionHash common.Hash     `json:"transactionHash"`
	BlockNumber     uint64          `json:"blockNumber"`
	GasUsed         uint64          `json:"gasUsed"`
	Args            []string        `json:"args"`
	Bytecode        string          `json:"bytecode"`
	ABI             json.RawMessage `json:"abi"`
	DeployedAt      time.Time       `json:"deployedAt"`
	// Reused is set when an existing deployment was returned instead of a new transaction.
	Reused bool `json:"-"`
}

// Artifact is a compiled contract as emitted by the contract compiler toolchain.
type Artifact struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName,omitempty"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}
