// Package leads manages the prospect capture pipeline.
package leads

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
var _ interfaces.LeadService = (*Service)(nil)

// Service implements LeadService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new leads service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Submit validates and stores a new lead from the public site. New leads
// always enter the pipeline with status "new".
func (s *Service) Submit(ctx context.Context, lead *models.Lead) (*models.Lead, error) {
	if err := validateLead(lead); err != nil {
		return nil, err
	}

	now := time.Now()
	lead.ID = fmt.Sprintf("lead_%s", uuid.New().String()[:8])
	lead.Status = models.LeadStatusNew
	lead.CreatedAt = now
	lead.UpdatedAt = now
	if lead.Source == "" {
		lead.Source = "schedule-call"
	}

	if err := s.storage.LeadStore().Save(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to save lead: %w", err)
	}

	s.logger.Info().
		Str("lead_id", lead.ID).
		Str("source", lead.Source).
		Str("goal", lead.InvestmentGoal).
		Msg("Captured lead")

	return lead, nil
}

// Get retrieves a single lead.
func (s *Service) Get(ctx context.Context, id string) (*models.Lead, error) {
	return s.storage.LeadStore().Get(ctx, id)
}

// Update applies a partial update to a lead. Only known mutable fields are
// applied; unknown keys are rejected.
func (s *Service) Update(ctx context.Context, id string, updates map[string]any) (*models.Lead, error) {
	lead, err := s.storage.LeadStore().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for key, value := range updates {
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("field %q must be a string", key)
		}
		switch key {
		case "name":
			lead.Name = str
		case "email":
			lead.Email = str
		case "phone":
			lead.Phone = str
		case "investment_horizon":
			lead.InvestmentHorizon = str
		case "investment_goal":
			lead.InvestmentGoal = str
		case "preferred_date":
			lead.PreferredDate = str
		case "preferred_time":
			lead.PreferredTime = str
		case "notes":
			lead.Notes = str
		case "source":
			lead.Source = str
		case "status":
			if !models.ValidLeadStatuses[str] {
				return nil, fmt.Errorf("invalid status %q", str)
			}
			lead.Status = str
		default:
			return nil, fmt.Errorf("unknown field %q", key)
		}
	}

	if err := validateLead(lead); err != nil {
		return nil, err
	}

	lead.UpdatedAt = time.Now()
	if err := s.storage.LeadStore().Save(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	s.logger.Info().Str("lead_id", id).Msg("Updated lead")
	return lead, nil
}

// SetStatus moves a lead through the pipeline.
func (s *Service) SetStatus(ctx context.Context, id, status string) (*models.Lead, error) {
	if !models.ValidLeadStatuses[status] {
		return nil, fmt.Errorf("invalid status %q; must be new, in-progress, contacted, converted, or archived", status)
	}

	lead, err := s.storage.LeadStore().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	lead.Status = status
	lead.UpdatedAt = time.Now()
	if err := s.storage.LeadStore().Save(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}

	s.logger.Info().
		Str("lead_id", id).
		Str("status", status).
		Msg("Updated lead status")

	return lead, nil
}

// Delete removes a lead.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.storage.LeadStore().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete lead %s: %w", id, err)
	}

	s.logger.Info().Str("lead_id", id).Msg("Deleted lead")
	return nil
}

// List returns a filtered, paginated page of the pipeline.
func (s *Service) List(ctx context.Context, opts interfaces.LeadListOptions) ([]*models.Lead, int, error) {
	if opts.Status != "" && !models.ValidLeadStatuses[opts.Status] {
		return nil, 0, fmt.Errorf("invalid status filter %q", opts.Status)
	}
	return s.storage.LeadStore().List(ctx, opts)
}

// Stats returns aggregate pipeline counts.
func (s *Service) Stats(ctx context.Context) (*models.LeadStats, error) {
	return s.storage.LeadStore().Stats(ctx)
}

// validateLead checks that a lead has valid field values.
func validateLead(lead *models.Lead) error {
	if strings.TrimSpace(lead.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(lead.Name) > 200 {
		return fmt.Errorf("name exceeds 200 characters")
	}
	email := strings.TrimSpace(lead.Email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return fmt.Errorf("email is not valid")
	}
	if strings.TrimSpace(lead.Phone) == "" {
		return fmt.Errorf("phone is required")
	}
	if len(lead.Notes) > 2000 {
		return fmt.Errorf("notes exceeds 2000 characters")
	}
	return nil
}
