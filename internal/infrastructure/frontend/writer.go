package frontend

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"raffle_deployer/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Writer exports deployed addresses and the contract ABI for the web front-end.
type Writer struct {
	addressesFile string
	abiFile       string
}

// NewWriter creates a writer for the two front-end constants files.
func NewWriter(addressesFile, abiFile string) *Writer {
	return &Writer{addressesFile: addressesFile, abiFile: abiFile}
}

// Write records d's address under its chain ID and replaces the ABI file. Both files are written concurrently.
func (w *Writer) Write(ctx context.Context, d entity.Deployment) error {
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return w.writeAddress(d) })
	g.Go(func() error { return w.writeABI(d) })
	return g.Wait()
}

func (w *Writer) writeAddress(d entity.Deployment) error {
	addresses := map[string][]string{}

	data, err := os.ReadFile(w.addressesFile)
	switch {
	case err == nil:
		if len(strings.TrimSpace(string(data))) > 0 {
			if err := json.Unmarshal(data, &addresses); err != nil {
				return fmt.Errorf("failed to parse %s: %w", w.addressesFile, err)
			}
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("failed to read %s: %w", w.addressesFile, err)
	}

	chainKey := strconv.FormatUint(d.ChainID, 10)
	addr := d.Address.Hex()
	if !slices.Contains(addresses[chainKey], addr) {
		addresses[chainKey] = append(addresses[chainKey], addr)
	}

	out, err := json.MarshalIndent(addresses, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal addresses: %w", err)
	}
	return writeFile(w.addressesFile, out)
}

func (w *Writer) writeABI(d entity.Deployment) error {
	if len(d.ABI) == 0 {
		return fmt.Errorf("deployment of %s has no ABI", d.ContractName)
	}
	return writeFile(w.abiFile, d.ABI)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
