package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/truassets/truassets-server/internal/interfaces"
	"github.com/truassets/truassets-server/internal/models"
)

// LeadStore implements interfaces.LeadStore with an in-memory map.
type LeadStore struct {
	mu    sync.RWMutex
	leads map[string]models.Lead
}

// NewLeadStore creates an empty LeadStore.
func NewLeadStore() *LeadStore {
	return &LeadStore{leads: make(map[string]models.Lead)}
}

func (s *LeadStore) Get(_ context.Context, id string) (*models.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lead, ok := s.leads[id]
	if !ok {
		return nil, fmt.Errorf("lead %s not found", id)
	}
	return &lead, nil
}

func (s *LeadStore) Save(_ context.Context, lead *models.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[lead.ID] = *lead
	return nil
}

func (s *LeadStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.leads, id)
	return nil
}

func (s *LeadStore) List(_ context.Context, opts interfaces.LeadListOptions) ([]*models.Lead, int, error) {
	s.mu.RLock()
	items := make([]*models.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		if opts.Status != "" && lead.Status != opts.Status {
			continue
		}
		if opts.Source != "" && lead.Source != opts.Source {
			continue
		}
		if opts.Since != nil && lead.CreatedAt.Before(*opts.Since) {
			continue
		}
		l := lead
		items = append(items, &l)
	}
	s.mu.RUnlock()

	if opts.Sort == "created_at_asc" {
		sort.Slice(items, func(i, j int) bool {
			if items[i].CreatedAt.Equal(items[j].CreatedAt) {
				return items[i].ID < items[j].ID
			}
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		})
	} else {
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

func (s *LeadStore) Stats(_ context.Context) (*models.LeadStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.LeadStats{}
	for _, lead := range s.leads {
		stats.Total++
		switch lead.Status {
		case models.LeadStatusNew:
			stats.New++
		case models.LeadStatusInProgress:
			stats.InProgress++
		case models.LeadStatusContacted:
			stats.Contacted++
		case models.LeadStatusConverted:
			stats.Converted++
		case models.LeadStatusArchived:
			stats.Archived++
		}
	}
	return stats, nil
}

// Compile-time check
var _ interfaces.LeadStore = (*LeadStore)(nil)
