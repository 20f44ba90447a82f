// internal/store/memory.go
package store

import (
	"context"
	"sync"
	"time"

	"github.com/beastaman/Sleft-Signal-sub000/internal/common/errors"
	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
)

// MemoryBriefStore keeps briefs in process memory. Used in tests and
// single-instance dev setups. Expiry is checked lazily on Get.
type MemoryBriefStore struct {
	mu     sync.RWMutex
	briefs map[string]memoryEntry
	ttl    time.Duration
	clock  func() time.Time
}

type memoryEntry struct {
	brief   *models.Brief
	expires time.Time
}

func NewMemoryBriefStore(ttl time.Duration) *MemoryBriefStore {
	if ttl <= 0 {
		ttl = DefaultBriefTTL
	}
	return &MemoryBriefStore{
		briefs: make(map[string]memoryEntry),
		ttl:    ttl,
		clock:  time.Now,
	}
}

func (s *MemoryBriefStore) Put(_ context.Context, brief *models.Brief) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.briefs[brief.ID] = memoryEntry{
		brief:   brief,
		expires: s.clock().Add(s.ttl),
	}
	return nil
}

func (s *MemoryBriefStore) Get(_ context.Context, id string) (*models.Brief, error) {
	s.mu.RLock()
	entry, ok := s.briefs[id]
	s.mu.RUnlock()
	if !ok || s.clock().After(entry.expires) {
		return nil, errors.NewBriefNotFoundError(id)
	}
	return entry.brief, nil
}
