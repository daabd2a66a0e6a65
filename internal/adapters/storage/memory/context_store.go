package memory

import (
	"fmt"
	"sync"

	"github.com/PabloGalante/neogiator-agent/internal/domain"
)

// ContextStore keeps negotiations in process memory. Contexts are copied on the
// way in and out, so callers must UpdateContext to make a change visible.
type ContextStore struct {
	mu       sync.RWMutex
	contexts map[domain.ContextID]*domain.NegotiationContext
	closed   bool
}

func NewContextStore() *ContextStore {
	return &ContextStore{
		contexts: make(map[domain.ContextID]*domain.NegotiationContext),
	}
}

func (s *ContextStore) CreateContext(c *domain.NegotiationContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrStoreClosed
	}
	if _, exists := s.contexts[c.ID]; exists {
		return fmt.Errorf("%w: context %s already exists", domain.ErrInvalidInput, c.ID)
	}

	s.contexts[c.ID] = c.Clone()
	return nil
}

func (s *ContextStore) UpdateContext(c *domain.NegotiationContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrStoreClosed
	}
	if _, exists := s.contexts[c.ID]; !exists {
		return fmt.Errorf("%w: %s", domain.ErrUnknownContext, c.ID)
	}

	s.contexts[c.ID] = c.Clone()
	return nil
}

func (s *ContextStore) GetContext(id domain.ContextID) (*domain.NegotiationContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, domain.ErrStoreClosed
	}
	c, ok := s.contexts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownContext, id)
	}

	return c.Clone(), nil
}

// Len reports how many contexts are held.
func (s *ContextStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contexts)
}

// Close drops every context. Later calls fail with domain.ErrStoreClosed.
func (s *ContextStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.contexts = nil
	return nil
}
