// Package memory implements platform storage with in-process maps. It backs
// development mode and unit tests where no SurrealDB instance is available.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/truassets/truassets-server/internal/common"
	"github.com/truassets/truassets-server/internal/interfaces"
)

// Manager implements interfaces.StorageManager with in-memory stores.
type Manager struct {
	logger *common.Logger

	mu       sync.RWMutex
	systemKV map[string]string

	userStore     *UserStore
	propertyStore *PropertyStore
	leadStore     *LeadStore
	insightStore  *InsightStore
	roiStore      *RoiStore
}

// NewManager creates an empty in-memory StorageManager.
func NewManager(logger *common.Logger) *Manager {
	return &Manager{
		logger:        logger,
		systemKV:      make(map[string]string),
		userStore:     NewUserStore(),
		propertyStore: NewPropertyStore(),
		leadStore:     NewLeadStore(),
		insightStore:  NewInsightStore(),
		roiStore:      NewRoiStore(),
	}
}

func (m *Manager) UserStore() interfaces.UserStore {
	return m.userStore
}

func (m *Manager) PropertyStore() interfaces.PropertyStore {
	return m.propertyStore
}

func (m *Manager) LeadStore() interfaces.LeadStore {
	return m.leadStore
}

func (m *Manager) InsightStore() interfaces.InsightStore {
	return m.insightStore
}

func (m *Manager) RoiStore() interfaces.RoiStore {
	return m.roiStore
}

func (m *Manager) GetSystemKV(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.systemKV[key]
	if !ok {
		return "", fmt.Errorf("system KV not found")
	}
	return value, nil
}

func (m *Manager) SetSystemKV(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.systemKV[key] = value
	return nil
}

func (m *Manager) Close() error {
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
