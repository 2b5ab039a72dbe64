package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/truassets/truassets-server/internal/interfaces"
	"github.com/truassets/truassets-server/internal/models"
)

// RoiStore implements interfaces.RoiStore with in-memory state.
type RoiStore struct {
	mu        sync.RWMutex
	settings  *models.RoiSettings
	scenarios map[string]models.RoiScenario
}

// NewRoiStore creates an empty RoiStore.
func NewRoiStore() *RoiStore {
	return &RoiStore{scenarios: make(map[string]models.RoiScenario)}
}

func (s *RoiStore) GetSettings(_ context.Context) (*models.RoiSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return nil, fmt.Errorf("roi settings not found")
	}
	settings := *s.settings
	return &settings, nil
}

func (s *RoiStore) SaveSettings(_ context.Context, settings *models.RoiSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *settings
	s.settings = &copied
	return nil
}

func (s *RoiStore) GetScenario(_ context.Context, id string) (*models.RoiScenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scenario, ok := s.scenarios[id]
	if !ok {
		return nil, fmt.Errorf("scenario %s not found", id)
	}
	return &scenario, nil
}

func (s *RoiStore) SaveScenario(_ context.Context, scenario *models.RoiScenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenarios[scenario.ID] = *scenario
	return nil
}

func (s *RoiStore) DeleteScenario(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scenarios, id)
	return nil
}

func (s *RoiStore) ListScenarios(_ context.Context) ([]*models.RoiScenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scenarios := make([]*models.RoiScenario, 0, len(s.scenarios))
	for _, scenario := range s.scenarios {
		sc := scenario
		scenarios = append(scenarios, &sc)
	}
	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].ID < scenarios[j].ID
	})
	return scenarios, nil
}

// Compile-time check
var _ interfaces.RoiStore = (*RoiStore)(nil)
