package memory

import (
	"context"
	"sync"

	"timesheet/internal/domain"
)

// UserConfigStore implements ports.UserConfigStore.
type UserConfigStore struct {
	mu      sync.Mutex
	configs map[string]domain.UserConfig
}

func NewUserConfigStore() *UserConfigStore {
	return &UserConfigStore{configs: map[string]domain.UserConfig{}}
}

func (s *UserConfigStore) Get(_ context.Context, userID string) (*domain.UserConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.configs[userID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *UserConfigStore) Set(_ context.Context, cfg domain.UserConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[cfg.UserID] = cfg
	return nil
}
