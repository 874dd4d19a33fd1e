package deploymentstore

import (
	"sort"
	"strings"

	"raffle_deployer/internal/domain/entity"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps records for the lifetime of the process. It backs ephemeral networks.
type MemoryStore struct {
	c *cache.Cache
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: cache.New(cache.NoExpiration, 0)}
}

func memoryKey(network, name string) string {
	return network + "/" + name
}

// Get returns the record for (network, name).
func (s *MemoryStore) Get(network, name string) (entity.Deployment, bool, error) {
	v, ok := s.c.Get(memoryKey(network, name))
	if !ok {
		return entity.Deployment{}, false, nil
	}
	return v.(entity.Deployment), true, nil
}

// Save stores or replaces the record.
func (s *MemoryStore) Save(d entity.Deployment) error {
	s.c.Set(memoryKey(d.Network, d.ContractName), d, cache.NoExpiration)
	return nil
}

// List returns all records of a network sorted by contract name.
func (s *MemoryStore) List(network string) ([]entity.Deployment, error) {
	prefix := network + "/"
	out := []entity.Deployment{}
	for k, item := range s.c.Items() {
		if strings.HasPrefix(k, prefix) {
			out = append(out, item.Object.(entity.Deployment))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContractName < out[j].ContractName })
	return out, nil
}
