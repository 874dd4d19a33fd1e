package configloader

import (
	"fmt"
	"os"

	"raffle_deployer/internal/pkg/utils"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultNetwork         = "hardhat"
	defaultArtifactsDir    = "artifacts"
	defaultDeploymentsDir  = "deployments"
	defaultFrontEndAddress = "../raffle-nextjs/constants/contractAddresses.json"
	defaultFrontEndABI     = "../raffle-nextjs/constants/abi.json"
	defaultFrontEndName    = "Raffle"
)

// ServerConfig holds settings of the read-only deployments API.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// NetworkNodeConfig overrides or adds the connection settings of a network.
type NetworkNodeConfig struct {
	Name            string   `yaml:"name"`
	ChainID         uint64   `yaml:"chainID"`
	RPCURL          string   `yaml:"rpcURL"`
	FallbackRPCURLs []string `yaml:"fallbackRpcURLs"`
	RPCTimeoutMs    int64    `yaml:"rpcTimeoutMs"`
	LimiterPeriod   string   `yaml:"limiterPeriod"` // e.g. "100ms"; empty disables rate limiting
	LimiterBurst    int      `yaml:"limiterBurst"`
}

// AccountsConfig describes where signing keys come from and how accounts are named.
type AccountsConfig struct {
	KeysFile   string         `yaml:"keysFile"`
	PrivateKey string         `yaml:"privateKey"`
	Named      map[string]int `yaml:"named"` // name -> key index
}

// PathsConfig holds filesystem locations used by the deployer.
type PathsConfig struct {
	Artifacts   string `yaml:"artifacts"`
	Deployments string `yaml:"deployments"`
}

// DeployConfig tunes how deployment transactions are sent and awaited.
type DeployConfig struct {
	WaitTimeoutSeconds int    `yaml:"waitTimeoutSeconds"`
	GasLimit           uint64 `yaml:"gasLimit"` // 0 lets the node estimate
}

// FrontEndConfig controls the export of addresses and ABI for the web front-end.
type FrontEndConfig struct {
	Update        bool   `yaml:"update"`
	ContractName  string `yaml:"contractName"`
	AddressesFile string `yaml:"addressesFile"`
	ABIFile       string `yaml:"abiFile"`
}

// MetricsConfig holds prometheus output settings.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // CLI writes the registry here after a run when set
}

// Config is the top-level configuration structure.
type Config struct {
	Network  string              `yaml:"network"`
	Server   ServerConfig        `yaml:"server"`
	Logging  LoggingConfig       `yaml:"logging"`
	Networks []NetworkNodeConfig `yaml:"networks"`
	Accounts AccountsConfig      `yaml:"accounts"`
	Paths    PathsConfig         `yaml:"paths"`
	Deploy   DeployConfig        `yaml:"deploy"`
	FrontEnd FrontEndConfig      `yaml:"frontEnd"`
	Metrics  MetricsConfig       `yaml:"metrics"`
}

// Load reads the YAML configuration file from the given path, applies defaults
// and environment overrides. A missing file is not an error: defaults are used.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
		logrus.Infof("Loaded configuration from path: %s", path)
	case os.IsNotExist(err):
		logrus.Warnf("Config file %s not found, using defaults", path)
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)

	for i, n := range cfg.Networks {
		if n.Name == "" {
			return nil, fmt.Errorf("networks[%d]: name is required", i)
		}
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Network == "" {
		cfg.Network = defaultNetwork
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Paths.Artifacts == "" {
		cfg.Paths.Artifacts = defaultArtifactsDir
	}
	if cfg.Paths.Deployments == "" {
		cfg.Paths.Deployments = defaultDeploymentsDir
	}
	if cfg.Deploy.WaitTimeoutSeconds <= 0 {
		cfg.Deploy.WaitTimeoutSeconds = 120
		logrus.Debugf("deploy.waitTimeoutSeconds not set, defaulting to %d", cfg.Deploy.WaitTimeoutSeconds)
	}
	if len(cfg.Accounts.Named) == 0 {
		cfg.Accounts.Named = map[string]int{"deployer": 0, "player": 1}
	}
	if cfg.FrontEnd.ContractName == "" {
		cfg.FrontEnd.ContractName = defaultFrontEndName
	}
	if cfg.FrontEnd.AddressesFile == "" {
		cfg.FrontEnd.AddressesFile = defaultFrontEndAddress
	}
	if cfg.FrontEnd.ABIFile == "" {
		cfg.FrontEnd.ABIFile = defaultFrontEndABI
	}
	for i := range cfg.Networks {
		if cfg.Networks[i].RPCTimeoutMs <= 0 {
			cfg.Networks[i].RPCTimeoutMs = 10000
		}
	}
}

func applyEnv(cfg *Config) {
	if key := utils.GetEnv("PRIVATE_KEY", ""); key != "" {
		cfg.Accounts.PrivateKey = key
	}
	if update, ok := utils.GetEnvBool("UPDATE_FRONT_END"); ok {
		cfg.FrontEnd.Update = update
	}
}

// NetworkNode returns the override block for a network name, if configured.
func (c *Config) NetworkNode(name string) (NetworkNodeConfig, bool) {
	for _, n := range c.Networks {
		if n.Name == name {
			return n, true
		}
	}
	return NetworkNodeConfig{}, false
}
