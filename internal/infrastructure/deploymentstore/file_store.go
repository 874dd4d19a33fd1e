package deploymentstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"raffle_deployer/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileStore keeps one JSON record per contract under <dir>/<network>/<ContractName>.json.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a store rooted at dir. The directory is created lazily on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(network, name string) string {
	return filepath.Join(s.dir, network, name+".json")
}

// Get returns the record for (network, name); found is false when none was saved.
func (s *FileStore) Get(network, name string) (entity.Deployment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := readRecord(s.path(network, name))
	if errors.Is(err, fs.ErrNotExist) {
		return entity.Deployment{}, false, nil
	}
	if err != nil {
		return entity.Deployment{}, false, err
	}
	return d, true, nil
}

// Save writes the record atomically (temp file + rename).
func (s *FileStore) Save(d entity.Deployment) error {
	if d.Network == "" || d.ContractName == "" {
		return fmt.Errorf("deployment record needs network and contract name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.path(d.Network, d.ContractName)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create deployments directory: %w", err)
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployment %s: %w", d.ContractName, err)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write deployment %s: %w", target, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to move deployment into place %s: %w", target, err)
	}
	return nil
}

// List returns all records of a network sorted by contract name.
func (s *FileStore) List(network string) ([]entity.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(filepath.Join(s.dir, network))
	if errors.Is(err, fs.ErrNotExist) {
		return []entity.Deployment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read deployments of %s: %w", network, err)
	}

	out := make([]entity.Deployment, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		d, err := readRecord(filepath.Join(s.dir, network, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContractName < out[j].ContractName })
	return out, nil
}

func readRecord(path string) (entity.Deployment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Deployment{}, err
	}
	var d entity.Deployment
	if err := json.Unmarshal(data, &d); err != nil {
		return entity.Deployment{}, fmt.Errorf("failed to unmarshal deployment %s: %w", path, err)
	}
	return d, nil
}
