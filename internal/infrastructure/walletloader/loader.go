package walletloader

import (
	"bufio"
	"crypto/ecdsa"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// KeyFileLoader loads signing keys from a file with one hex private key per line.
// Blank lines and lines starting with '#' are ignored.
type KeyFileLoader struct {
	filePath   string
	loggerInfo func(msg string, args ...any)
}

// NewKeyFileLoader creates a new KeyFileLoader.
func NewKeyFileLoader(filePath string, loggerInfo func(msg string, args ...any)) *KeyFileLoader {
	return &KeyFileLoader{
		filePath:   filePath,
		loggerInfo: loggerInfo,
	}
}

// LoadKeys reads private keys from the configured file path, in file order.
func (l *KeyFileLoader) LoadKeys() ([]*ecdsa.PrivateKey, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file %s: %w", l.filePath, err)
	}
	defer file.Close()

	var keys []*ecdsa.PrivateKey
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, err := ParseKey(line)
		if err != nil {
			// Сам ключ в лог не пишем
			if l.loggerInfo != nil {
				l.loggerInfo("Skipping invalid private key", "file", l.filePath, "line_number", lineNum)
			}
			continue
		}
		keys = append(keys, key)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning key file %s: %w", l.filePath, err)
	}

	if l.loggerInfo != nil {
		l.loggerInfo("Keys loaded successfully from file", "count", len(keys), "path", l.filePath)
	}
	return keys, nil
}

// ParseKey parses a hex private key with or without the 0x prefix.
func ParseKey(raw string) (*ecdsa.PrivateKey, error) {
	raw = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(raw), "0x"), "0X")
	if len(raw) != 64 {
		return nil, fmt.Errorf("private key must be 32 bytes of hex")
	}
	key, err := crypto.HexToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}
