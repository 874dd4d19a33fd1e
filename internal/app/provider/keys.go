package provider

import (
	"crypto/ecdsa"
	"fmt"

	"raffle_deployer/internal/app/port"
	"raffle_deployer/internal/domain/entity"
	"raffle_deployer/internal/infrastructure/configloader"
	"raffle_deployer/internal/infrastructure/walletloader"

	"github.com/ethereum/go-ethereum/crypto"
)

// LoadKeys collects signing keys for a network: the single configured private key
// first, then the key file. Ephemeral networks get a fresh key per named account
// when nothing is configured.
func LoadKeys(cfg *configloader.Config, network entity.NetworkDefinition, logger port.Logger) ([]*ecdsa.PrivateKey, error) {
	var keys []*ecdsa.PrivateKey

	if cfg.Accounts.PrivateKey != "" {
		key, err := walletloader.ParseKey(cfg.Accounts.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("accounts.privateKey: %w", err)
		}
		keys = append(keys, key)
	}
	if cfg.Accounts.KeysFile != "" {
		fileKeys, err := walletloader.NewKeyFileLoader(cfg.Accounts.KeysFile, logger.Info).LoadKeys()
		if err != nil {
			return nil, err
		}
		keys = append(keys, fileKeys...)
	}

	if len(keys) == 0 && network.Ephemeral {
		n := 1
		for _, idx := range cfg.Accounts.Named {
			if idx+1 > n {
				n = idx + 1
			}
		}
		for i := 0; i < n; i++ {
			key, err := crypto.GenerateKey()
			if err != nil {
				return nil, fmt.Errorf("failed to generate ephemeral key: %w", err)
			}
			keys = append(keys, key)
		}
		logger.Info("Generated ephemeral accounts for in-process network", "network", network.Name, "count", n)
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no keys configured for network %s (set accounts.keysFile or PRIVATE_KEY)", entity.ErrUnknownAccount, network.Name)
	}
	return keys, nil
}
