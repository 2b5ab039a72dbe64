package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/truassets/truassets-server/internal/interfaces"
	"github.com/truassets/truassets-server/internal/models"
)

// PropertyStore implements interfaces.PropertyStore with an in-memory map.
type PropertyStore struct {
	mu         sync.RWMutex
	properties map[string]models.Property
}

// NewPropertyStore creates an empty PropertyStore.
func NewPropertyStore() *PropertyStore {
	return &PropertyStore{properties: make(map[string]models.Property)}
}

func (s *PropertyStore) Get(_ context.Context, id string) (*models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	property, ok := s.properties[id]
	if !ok {
		return nil, fmt.Errorf("property %s not found", id)
	}
	return &property, nil
}

func (s *PropertyStore) Save(_ context.Context, property *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[property.ID] = *property
	return nil
}

func (s *PropertyStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.properties, id)
	return nil
}

func (s *PropertyStore) List(_ context.Context, opts interfaces.PropertyListOptions) ([]*models.Property, int, error) {
	s.mu.RLock()
	items := make([]*models.Property, 0, len(s.properties))
	for _, property := range s.properties {
		if opts.Status != "" && property.Status != opts.Status {
			continue
		}
		if opts.Type != "" && property.Type != opts.Type {
			continue
		}
		p := property
		items = append(items, &p)
	}
	s.mu.RUnlock()

	switch opts.Sort {
	case "created_at_asc":
		sort.Slice(items, func(i, j int) bool {
			if items[i].CreatedAt.Equal(items[j].CreatedAt) {
				return items[i].ID < items[j].ID
			}
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		})
	case "price_asc":
		sort.Slice(items, func(i, j int) bool {
			if items[i].Price == items[j].Price {
				return items[i].ID < items[j].ID
			}
			return items[i].Price < items[j].Price
		})
	case "price_desc":
		sort.Slice(items, func(i, j int) bool {
			if items[i].Price == items[j].Price {
				return items[i].ID > items[j].ID
			}
			return items[i].Price > items[j].Price
		})
	default:
		sort.Slice(items, func(i, j int) bool {
			if items[i].CreatedAt.Equal(items[j].CreatedAt) {
				return items[i].ID > items[j].ID
			}
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}

	total := len(items)
	return paginate(items, opts.Page, opts.PerPage), total, nil
}

func (s *PropertyStore) GetBatch(ctx context.Context, ids []string) ([]*models.Property, error) {
	items := make([]*models.Property, 0, len(ids))
	for _, id := range ids {
		property, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		items = append(items, property)
	}
	return items, nil
}

// paginate applies the shared page/per-page window used by all list queries.
func paginate[T any](items []T, page, perPage int) []T {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Compile-time check
var _ interfaces.PropertyStore = (*PropertyStore)(nil)
