package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/truassets/truassets-server/internal/interfaces"
	"github.com/truassets/truassets-server/internal/models"
)

// InsightStore implements interfaces.InsightStore with an in-memory map.
type InsightStore struct {
	mu    sync.RWMutex
	posts map[string]models.InsightPost
}

// NewInsightStore creates an empty InsightStore.
func NewInsightStore() *InsightStore {
	return &InsightStore{posts: make(map[string]models.InsightPost)}
}

func (s *InsightStore) Get(_ context.Context, id string) (*models.InsightPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("insight post %s not found", id)
	}
	return &post, nil
}

func (s *InsightStore) Save(_ context.Context, post *models.InsightPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ID] = *post
	return nil
}

func (s *InsightStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

func (s *InsightStore) List(_ context.Context, opts interfaces.InsightListOptions) ([]*models.InsightPost, int, error) {
	s.mu.RLock()
	items := make([]*models.InsightPost, 0, len(s.posts))
	for _, post := range s.posts {
		if opts.Status != "" && post.Status != opts.Status {
			continue
		}
		if opts.Tag != "" && !slices.Contains(post.Tags, opts.Tag) {
			continue
		}
		p := post
		items = append(items, &p)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if items[i].UpdatedAt.Equal(items[j].UpdatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})

	total := len(items)
	return paginate(items, opts.Page, opts.PerPage), total, nil
}

// Compile-time check
var _ interfaces.InsightStore = (*InsightStore)(nil)
