package roi

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/truassets/truassets-server/internal/common"
	"github.com/truassets/truassets-server/internal/interfaces"
	"github.com/truassets/truassets-server/internal/models"
)

// Compile-time interface check
var _ interfaces.RoiService = (*Service)(nil)

// Service implements RoiService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new roi service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Project computes a projection from the given assumptions.
func (s *Service) Project(assumptions models.AssumptionSet) (*models.Projection, error) {
	return Project(assumptions)
}

// ProjectScenario loads a stored scenario, applies its deltas to the given
// assumptions, and projects the result.
func (s *Service) ProjectScenario(ctx context.Context, assumptions models.AssumptionSet, scenarioID string) (*models.Projection, error) {
	scenario, err := s.storage.RoiStore().GetScenario(ctx, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("scenario %s not found: %w", scenarioID, err)
	}

	adjusted := ApplyScenario(assumptions, *scenario)
	projection, err := Project(adjusted)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("scenario_id", scenarioID).
		Str("scenario_name", scenario.Name).
		Int("holding_period", adjusted.HoldingPeriod).
		Msg("Projected with scenario")

	return projection, nil
}

// GetSettings returns the platform default assumptions, seeding defaults on
// first access.
func (s *Service) GetSettings(ctx context.Context) (*models.RoiSettings, error) {
	settings, err := s.storage.RoiStore().GetSettings(ctx)
	if err == nil {
		return settings, nil
	}

	defaults := models.DefaultRoiSettings()
	if saveErr := s.storage.RoiStore().SaveSettings(ctx, &defaults); saveErr != nil {
		return nil, fmt.Errorf("failed to seed default roi settings: %w", saveErr)
	}
	return &defaults, nil
}

// UpdateSettings replaces the platform default assumptions.
func (s *Service) UpdateSettings(ctx context.Context, settings *models.RoiSettings) error {
	if err := validateSettings(settings); err != nil {
		return err
	}
	if err := s.storage.RoiStore().SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save roi settings: %w", err)
	}

	s.logger.Info().
		Float64("default_investment", settings.DefaultInvestment).
		Int("holding_period", settings.HoldingPeriod).
		Msg("Updated roi settings")

	return nil
}

// ListScenarios returns all scenario presets, seeding the built-in set on
// first access.
func (s *Service) ListScenarios(ctx context.Context) ([]*models.RoiScenario, error) {
	scenarios, err := s.storage.RoiStore().ListScenarios(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	if len(scenarios) == 0 {
		for _, preset := range models.DefaultRoiScenarios() {
			p := preset
			if saveErr := s.storage.RoiStore().SaveScenario(ctx, &p); saveErr != nil {
				return nil, fmt.Errorf("failed to seed scenario %s: %w", p.ID, saveErr)
			}
			scenarios = append(scenarios, &p)
		}
		s.logger.Info().Int("count", len(scenarios)).Msg("Seeded default scenarios")
	}

	return scenarios, nil
}

// AddScenario stores a new scenario preset, assigning an ID when absent.
func (s *Service) AddScenario(ctx context.Context, scenario *models.RoiScenario) error {
	if err := validateScenario(scenario); err != nil {
		return err
	}
	if scenario.ID == "" {
		scenario.ID = "scenario-" + uuid.NewString()[:8]
	}
	if err := s.storage.RoiStore().SaveScenario(ctx, scenario); err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}

	s.logger.Info().
		Str("scenario_id", scenario.ID).
		Str("name", scenario.Name).
		Msg("Added scenario")

	return nil
}

// UpdateScenario replaces an existing scenario preset.
func (s *Service) UpdateScenario(ctx context.Context, scenario *models.RoiScenario) error {
	if scenario.ID == "" {
		return fmt.Errorf("scenario id is required")
	}
	if err := validateScenario(scenario); err != nil {
		return err
	}
	if _, err := s.storage.RoiStore().GetScenario(ctx, scenario.ID); err != nil {
		return fmt.Errorf("scenario %s not found: %w", scenario.ID, err)
	}
	if err := s.storage.RoiStore().SaveScenario(ctx, scenario); err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}

	s.logger.Info().
		Str("scenario_id", scenario.ID).
		Str("name", scenario.Name).
		Msg("Updated scenario")

	return nil
}

// DeleteScenario removes a scenario preset.
func (s *Service) DeleteScenario(ctx context.Context, id string) error {
	if err := s.storage.RoiStore().DeleteScenario(ctx, id); err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, err)
	}

	s.logger.Info().Str("scenario_id", id).Msg("Deleted scenario")
	return nil
}

// validateSettings checks that settings have usable field values.
func validateSettings(settings *models.RoiSettings) error {
	if settings.DefaultInvestment <= 0 {
		return fmt.Errorf("default investment must be positive")
	}
	if settings.HoldingPeriod < 1 {
		return fmt.Errorf("holding period must be at least 1 year")
	}
	if settings.RentalYield < 0 {
		return fmt.Errorf("rental yield must not be negative")
	}
	if settings.RentGrowth < 0 {
		return fmt.Errorf("rent growth must not be negative")
	}
	if settings.ExpenseRatio < 0 || settings.ExpenseRatio >= 1 {
		return fmt.Errorf("expense ratio must be in [0, 1)")
	}
	if settings.ExitCosts < 0 || settings.ExitCosts >= 1 {
		return fmt.Errorf("exit costs must be in [0, 1)")
	}
	return nil
}

// validateScenario checks that a scenario has valid field values.
func validateScenario(scenario *models.RoiScenario) error {
	if strings.TrimSpace(scenario.Name) == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(scenario.Name) > 100 {
		return fmt.Errorf("scenario name exceeds 100 characters")
	}
	if len(scenario.Notes) > 1000 {
		return fmt.Errorf("notes exceeds 1000 characters")
	}
	return nil
}
