package catalog

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

// Comparison cardinality bounds.
const (
	MinCompare = 2
	MaxCompare = 4
)

// Compile-time interface check
var _ interfaces.CatalogService = (*Service)(nil)

// Service implements CatalogService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new catalog service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// GetProperty retrieves a single listing.
func (s *Service) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	return s.storage.PropertyStore().Get(ctx, id)
}

// SaveProperty validates and stores a listing, assigning an ID and
// timestamps when absent.
func (s *Service) SaveProperty(ctx context.Context, property *models.Property) error {
	if err := validateProperty(property); err != nil {
		return err
	}

	now := time.Now()
	if property.ID == "" {
		property.ID = fmt.Sprintf("prop_%s", uuid.New().String()[:8])
		property.CreatedAt = now
	}
	if property.CreatedAt.IsZero() {
		property.CreatedAt = now
	}
	property.UpdatedAt = now
	if property.Status == "" {
		property.Status = models.PropertyStatusOpen
	}
	if property.Amenities == nil {
		property.Amenities = []string{}
	}

	if err := s.storage.PropertyStore().Save(ctx, property); err != nil {
		return fmt.Errorf("failed to save property: %w", err)
	}

	s.logger.Info().
		Str("property_id", property.ID).
		Str("title", property.Title).
		Float64("price", property.Price).
		Msg("Saved property")

	return nil
}

// DeleteProperty removes a listing.
func (s *Service) DeleteProperty(ctx context.Context, id string) error {
	if err := s.storage.PropertyStore().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete property %s: %w", id, err)
	}

	s.logger.Info().Str("property_id", id).Msg("Deleted property")
	return nil
}

// ListProperties returns a filtered, paginated page of the catalog.
func (s *Service) ListProperties(ctx context.Context, opts interfaces.PropertyListOptions) ([]*models.Property, int, error) {
	if opts.Status != "" && !models.ValidPropertyStatuses[opts.Status] {
		return nil, 0, fmt.Errorf("invalid status filter %q", opts.Status)
	}
	if opts.Type != "" && !models.ValidPropertyTypes[opts.Type] {
		return nil, 0, fmt.Errorf("invalid type filter %q", opts.Type)
	}
	return s.storage.PropertyStore().List(ctx, opts)
}

// Compare builds a side-by-side comparison over 2 to 4 property IDs.
func (s *Service) Compare(ctx context.Context, ids []string) (*models.Comparison, error) {
	if len(ids) < MinCompare || len(ids) > MaxCompare {
		return nil, fmt.Errorf("comparison requires %d to %d properties, got %d", MinCompare, MaxCompare, len(ids))
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("duplicate property id %s in comparison", id)
		}
		seen[id] = true
	}

	properties, err := s.storage.PropertyStore().GetBatch(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load comparison properties: %w", err)
	}

	return BuildComparison(properties), nil
}

// validateProperty checks that a listing has valid field values.
func validateProperty(property *models.Property) error {
	if strings.TrimSpace(property.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(property.Title) > 200 {
		return fmt.Errorf("title exceeds 200 characters")
	}
	if strings.TrimSpace(property.Location) == "" {
		return fmt.Errorf("location is required")
	}
	if property.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	if property.TargetAmount <= 0 {
		return fmt.Errorf("target amount must be positive")
	}
	if property.RaisedAmount < 0 {
		return fmt.Errorf("raised amount must not be negative")
	}
	if property.Investors < 0 {
		return fmt.Errorf("investors must not be negative")
	}
	if property.Status != "" && !models.ValidPropertyStatuses[property.Status] {
		return fmt.Errorf("invalid status %q; must be open, funding, funded, or exited", property.Status)
	}
	if property.Type != "" && !models.ValidPropertyTypes[property.Type] {
		return fmt.Errorf("invalid type %q; must be commercial, residential, warehouse, or retail", property.Type)
	}
	return nil
}
