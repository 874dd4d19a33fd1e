package provider

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sort"

	"raffle_deployer/internal/app/port"
	"raffle_deployer/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// AccountProvider resolves named accounts to local signing keys.
// It implements both port.AccountResolver and port.TransactorProvider.
type AccountProvider struct {
	keys   []*ecdsa.PrivateKey
	byAddr map[common.Address]*ecdsa.PrivateKey
	named  map[string]int
	logger port.Logger
}

// NewAccountProvider creates a provider over keys; named maps account names to key indices.
func NewAccountProvider(keys []*ecdsa.PrivateKey, named map[string]int, logger port.Logger) *AccountProvider {
	p := &AccountProvider{
		keys:   keys,
		byAddr: make(map[common.Address]*ecdsa.PrivateKey, len(keys)),
		named:  make(map[string]int, len(named)),
		logger: logger,
	}
	for _, k := range keys {
		p.byAddr[crypto.PubkeyToAddress(k.PublicKey)] = k
	}
	for name, idx := range named {
		p.named[name] = idx
	}
	return p
}

// NamedAccounts resolves every configured name whose index has a key.
// Names pointing past the loaded keys are left out; asking for them via Account fails.
func (p *AccountProvider) NamedAccounts(_ context.Context) (map[string]common.Address, error) {
	if len(p.keys) == 0 {
		return nil, fmt.Errorf("%w: no signing keys loaded", entity.ErrUnknownAccount)
	}
	out := make(map[string]common.Address, len(p.named))
	for name, idx := range p.named {
		if idx < 0 || idx >= len(p.keys) {
			p.logger.Debug("Named account has no key", "account", name, "index", idx, "keys", len(p.keys))
			continue
		}
		out[name] = crypto.PubkeyToAddress(p.keys[idx].PublicKey)
	}
	return out, nil
}

// Account resolves a single named account.
func (p *AccountProvider) Account(ctx context.Context, name string) (common.Address, error) {
	accounts, err := p.NamedAccounts(ctx)
	if err != nil {
		return common.Address{}, err
	}
	addr, ok := accounts[name]
	if !ok {
		return common.Address{}, fmt.Errorf("%w: named account %q", entity.ErrUnknownAccount, name)
	}
	return addr, nil
}

// TransactOpts builds a keyed transactor for from on chainID.
func (p *AccountProvider) TransactOpts(ctx context.Context, from common.Address, chainID *big.Int) (*bind.TransactOpts, error) {
	key, ok := p.byAddr[from]
	if !ok {
		return nil, fmt.Errorf("%w: no key for %s", entity.ErrUnknownAccount, from.Hex())
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor for %s: %w", from.Hex(), err)
	}
	opts.Context = ctx
	return opts, nil
}

// Addresses returns the addresses of all loaded keys in key order.
func (p *AccountProvider) Addresses() []common.Address {
	out := make([]common.Address, len(p.keys))
	for i, k := range p.keys {
		out[i] = crypto.PubkeyToAddress(k.PublicKey)
	}
	return out
}

// Names returns the configured account names, sorted.
func (p *AccountProvider) Names() []string {
	names := make([]string, 0, len(p.named))
	for n := range p.named {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
