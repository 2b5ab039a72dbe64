// Package insights manages the CMS article pipeline.
package insights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/truassets/truassets-server/internal/common"
	"github.com/truassets/truassets-server/internal/interfaces"
	"github.com/truassets/truassets-server/internal/models"
)

// Compile-time interface check
var _ interfaces.InsightService = (*Service)(nil)

// Service implements InsightService
type Service struct {
	storage interfaces.StorageManager
	gemini  interfaces.GeminiClient
	logger  *common.Logger
}

// NewService creates a new insights service. The gemini client may be nil
// when no API key is configured; DraftExcerpt then returns an error.
func NewService(storage interfaces.StorageManager, gemini interfaces.GeminiClient, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		gemini:  gemini,
		logger:  logger,
	}
}

// Get retrieves a single post.
func (s *Service) Get(ctx context.Context, id string) (*models.InsightPost, error) {
	return s.storage.InsightStore().Get(ctx, id)
}

// Create validates and stores a new post. Posts default to draft; a post
// created as published gets its published timestamp set immediately.
func (s *Service) Create(ctx context.Context, post *models.InsightPost) (*models.InsightPost, error) {
	if err := validatePost(post); err != nil {
		return nil, err
	}

	now := time.Now()
	post.ID = fmt.Sprintf("post_%s", uuid.New().String()[:8])
	post.UpdatedAt = now
	if post.Status == "" {
		post.Status = models.InsightStatusDraft
	}
	if post.Status == models.InsightStatusPublished {
		post.PublishedAt = &now
	} else {
		post.PublishedAt = nil
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if err := s.storage.InsightStore().Save(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to save insight post: %w", err)
	}

	s.logger.Info().
		Str("post_id", post.ID).
		Str("title", post.Title).
		Str("status", post.Status).
		Msg("Created insight post")

	return post, nil
}

// Update applies a partial update to a post. Status changes route through
// the same publish bookkeeping as TogglePublish.
func (s *Service) Update(ctx context.Context, id string, updates map[string]any) (*models.InsightPost, error) {
	post, err := s.storage.InsightStore().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for key, value := range updates {
		switch key {
		case "title":
			str, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("field %q must be a string", key)
			}
			post.Title = str
		case "excerpt":
			str, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("field %q must be a string", key)
			}
			post.Excerpt = str
		case "content":
			str, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("field %q must be a string", key)
			}
			post.Content = str
		case "author":
			str, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("field %q must be a string", key)
			}
			post.Author = str
		case "hero_image":
			str, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("field %q must be a string", key)
			}
			post.HeroImage = str
		case "tags":
			tags, err := toStringSlice(value)
			if err != nil {
				return nil, fmt.Errorf("field %q must be a string array", key)
			}
			post.Tags = tags
		case "status":
			str, ok := value.(string)
			if !ok || !models.ValidInsightStatuses[str] {
				return nil, fmt.Errorf("invalid status %v; must be draft or published", value)
			}
			applyStatus(post, str)
		default:
			return nil, fmt.Errorf("unknown field %q", key)
		}
	}

	if err := validatePost(post); err != nil {
		return nil, err
	}

	post.UpdatedAt = time.Now()
	if err := s.storage.InsightStore().Save(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update insight post: %w", err)
	}

	s.logger.Info().Str("post_id", id).Msg("Updated insight post")
	return post, nil
}

// Delete removes a post.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.storage.InsightStore().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete insight post %s: %w", id, err)
	}

	s.logger.Info().Str("post_id", id).Msg("Deleted insight post")
	return nil
}

// List returns a filtered, paginated page of posts.
func (s *Service) List(ctx context.Context, opts interfaces.InsightListOptions) ([]*models.InsightPost, int, error) {
	if opts.Status != "" && !models.ValidInsightStatuses[opts.Status] {
		return nil, 0, fmt.Errorf("invalid status filter %q", opts.Status)
	}
	return s.storage.InsightStore().List(ctx, opts)
}

// TogglePublish flips a post between draft and published. Publishing sets
// the published timestamp; reverting to draft clears it.
func (s *Service) TogglePublish(ctx context.Context, id string) (*models.InsightPost, error) {
	post, err := s.storage.InsightStore().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.Status == models.InsightStatusPublished {
		applyStatus(post, models.InsightStatusDraft)
	} else {
		applyStatus(post, models.InsightStatusPublished)
	}

	post.UpdatedAt = time.Now()
	if err := s.storage.InsightStore().Save(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to toggle publish: %w", err)
	}

	s.logger.Info().
		Str("post_id", id).
		Str("status", post.Status).
		Msg("Toggled publish state")

	return post, nil
}

// DraftExcerpt asks the configured language model for a short excerpt
// summarizing the given article content.
func (s *Service) DraftExcerpt(ctx context.Context, title, content string) (string, error) {
	if s.gemini == nil || !s.gemini.IsConfigured() {
		return "", fmt.Errorf("excerpt drafting is not configured")
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("content is required")
	}

	prompt := fmt.Sprintf(`Write a single-sentence excerpt (at most 40 words) for a real-estate investment article.
The excerpt should hook a prospective investor without overselling. Return only the excerpt text.

Title: %s

Article:
%s`, title, content)

	excerpt, err := s.gemini.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to draft excerpt: %w", err)
	}
	return strings.TrimSpace(excerpt), nil
}

// applyStatus sets a post's status and maintains the published timestamp.
func applyStatus(post *models.InsightPost, status string) {
	if post.Status == status {
		return
	}
	post.Status = status
	if status == models.InsightStatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	} else {
		post.PublishedAt = nil
	}
}

func toStringSlice(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("non-string element")
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("not an array")
	}
}

// validatePost checks that a post has valid field values.
func validatePost(post *models.InsightPost) error {
	if strings.TrimSpace(post.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(post.Title) > 300 {
		return fmt.Errorf("title exceeds 300 characters")
	}
	if strings.TrimSpace(post.Content) == "" {
		return fmt.Errorf("content is required")
	}
	if strings.TrimSpace(post.Author) == "" {
		return fmt.Errorf("author is required")
	}
	if post.Status != "" && !models.ValidInsightStatuses[post.Status] {
		return fmt.Errorf("invalid status %q; must be draft or published", post.Status)
	}
	return nil
}
