package checkpoint

import (
	"strings"
	"sync"

	"github.com/siherrmann/wikigraph/model"
)

// MemoryStore keeps checkpoints in a map. It is used in tests and
// wherever resumability across process restarts is not needed.
type MemoryStore struct {
	mu     sync.RWMutex
	byName map[string]model.LinkList
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byName: map[string]model.LinkList{},
	}
}

// Has reports whether a checkpoint exists for the entity
func (s *MemoryStore) Has(entity string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byName[strings.TrimSpace(entity)]
	return ok, nil
}

// Put stores the link list for the entity. An existing checkpoint is
// left untouched.
func (s *MemoryStore) Put(entity string, links model.LinkList) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(entity)
	if _, ok := s.byName[name]; ok {
		return nil
	}

	stored := make(model.LinkList, len(links))
	copy(stored, links)
	s.byName[name] = stored

	return nil
}

// Get returns the stored link list, or ErrNotFound
func (s *MemoryStore) Get(entity string) (model.LinkList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links, ok := s.byName[strings.TrimSpace(entity)]
	if !ok {
		return nil, ErrNotFound
	}

	result := make(model.LinkList, len(links))
	copy(result, links)
	return result, nil
}
