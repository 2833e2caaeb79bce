package memory

import (
	"context"
	"sync"

	"timesheet/internal/domain"
)

// AccessRuleStore implements ports.AccessRuleStore.
type AccessRuleStore struct {
	mu     sync.Mutex
	cfg    domain.AccessConfig
	Writes int
}

func NewAccessRuleStore(cfg domain.AccessConfig) *AccessRuleStore {
	return &AccessRuleStore{cfg: cfg}
}

func (s *AccessRuleStore) Load(_ context.Context) (domain.AccessConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg, nil
}

func (s *AccessRuleStore) Save(_ context.Context, cfg domain.AccessConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.Writes++
	return nil
}
