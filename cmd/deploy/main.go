package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"raffle_deployer/internal/app/port"
	"raffle_deployer/internal/app/provider"
	"raffle_deployer/internal/app/service"
	"raffle_deployer/internal/infrastructure/artifactloader"
	"raffle_deployer/internal/infrastructure/configloader"
	"raffle_deployer/internal/infrastructure/deploymentstore"
	"raffle_deployer/internal/infrastructure/frontend"
	clientprovider "raffle_deployer/internal/infrastructure/network/client"
	networkdefinition "raffle_deployer/internal/infrastructure/network/definition"
	"raffle_deployer/internal/pkg/logger"
	"raffle_deployer/internal/pkg/metrics"
	"raffle_deployer/internal/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	networkName string
	tagsFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Run the raffle deploy scripts against a network",
	Long: `Run the deploy scripts in order against the selected network.

On development networks (hardhat, localhost) the mock VRF coordinator is
deployed first. The hardhat network runs in-process unless an RPC URL is
configured for it.

Examples:
  # Everything on the in-process hardhat chain
  deploy

  # Only the mocks, on a local node
  deploy --network localhost --tags mocks

  # Export addresses to the front-end after a goerli deployment
  UPDATE_FRONT_END=true deploy --network goerli --tags frontend`,
	SilenceUsage: true,
	RunE:         runDeploy,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", utils.GetEnv("CONFIG_PATH", "config/config.yml"), "path to the YAML config")
	rootCmd.Flags().StringVar(&networkName, "network", "", "network to deploy to (overrides config)")
	rootCmd.Flags().StringVar(&tagsFlag, "tags", "", "comma-separated script tags to run; empty runs all")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDeploy(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := configloader.Load(configPath)
	if err != nil {
		return fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}
	if networkName != "" {
		cfg.Network = networkName
	}

	zapLogger, err := logger.Init(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return err
	}
	defer zapLogger.Sync() //nolint:errcheck

	appLogger := logger.NewSlogAdapter()
	m := metrics.New()
	defer writeMetrics(cfg, m)

	netDefProvider := networkdefinition.NewNetworkDefinitionProvider(appLogger, cfg)
	network, err := netDefProvider.Resolve(cfg.Network)
	if err != nil {
		return err
	}
	logger.Info("Deploy target resolved", "network", network.Name, "chain_id", network.ChainID, "ephemeral", network.Ephemeral)

	keys, err := provider.LoadKeys(cfg, network, appLogger)
	if err != nil {
		return err
	}
	accounts := provider.NewAccountProvider(keys, cfg.Accounts.Named, appLogger)

	clients := clientprovider.NewEVMClientProvider(cfg, appLogger)
	defer clients.Close()

	chain, err := clients.GetClient(ctx, network, accounts.Addresses())
	if err != nil {
		return err
	}
	clientprovider.DescribeBalances(ctx, chain, accounts.Addresses(), appLogger)

	deployer := clientprovider.NewEVMDeployer(
		chain,
		artifactloader.NewArtifactLoader(cfg.Paths.Artifacts, appLogger.Debug),
		newStore(cfg, network.Ephemeral),
		accounts,
		appLogger.With("network", network.Name),
		m,
		clientprovider.EVMDeployerOptions{
			WaitTimeout: time.Duration(cfg.Deploy.WaitTimeoutSeconds) * time.Second,
			GasLimit:    cfg.Deploy.GasLimit,
		},
	)

	runner := service.NewScriptRunner(appLogger, m,
		service.NewDeployMocks(),
		service.NewUpdateFrontEnd(cfg.FrontEnd.Update, cfg.FrontEnd.ContractName,
			frontend.NewWriter(cfg.FrontEnd.AddressesFile, cfg.FrontEnd.ABIFile)),
	)

	env := port.ScriptEnv{
		Network:     network,
		Params:      networkdefinition.NewNetworkConfig(),
		Accounts:    accounts,
		Deployments: deployer,
	}
	return runner.Run(ctx, env, utils.SplitList(tagsFlag))
}

// Records of the in-process chain die with the process, so they are not written to disk.
func newStore(cfg *configloader.Config, ephemeral bool) port.DeploymentStore {
	if ephemeral {
		return deploymentstore.NewMemoryStore()
	}
	return deploymentstore.NewFileStore(cfg.Paths.Deployments)
}

func writeMetrics(cfg *configloader.Config, m *metrics.Metrics) {
	if cfg.Metrics.Textfile == "" {
		return
	}
	if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Warn("Failed to write metrics textfile", "error", err)
	}
}

