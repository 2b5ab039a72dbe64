package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/truassets/truassets-server/internal/common"
	"github.com/truassets/truassets-server/internal/interfaces"
	"github.com/truassets/truassets-server/internal/models"
)

// roiSettingsKey is the singleton record ID for platform-wide settings.
const roiSettingsKey = "platform"

// scenarioSelectFields aliases scenario_id to id for struct mapping.
const scenarioSelectFields = `scenario_id as id, name, rental_yield_delta,
	appreciation_delta, holding_period_delta, notes`

// RoiStore implements interfaces.RoiStore using SurrealDB.
type RoiStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewRoiStore creates a new RoiStore.
func NewRoiStore(db *surrealdb.DB, logger *common.Logger) *RoiStore {
	return &RoiStore{db: db, logger: logger}
}

func (s *RoiStore) GetSettings(ctx context.Context) (*models.RoiSettings, error) {
	settings, err := surrealdb.Select[models.RoiSettings](ctx, s.db, surrealmodels.NewRecordID("roi_settings", roiSettingsKey))
	if err != nil || settings == nil {
		return nil, fmt.Errorf("roi settings not found")
	}
	return settings, nil
}

func (s *RoiStore) SaveSettings(ctx context.Context, settings *models.RoiSettings) error {
	sql := `UPSERT $rid SET
		default_investment = $default_investment, rental_yield = $rental_yield,
		appreciation = $appreciation, holding_period = $holding_period,
		rent_growth = $rent_growth, expense_ratio = $expense_ratio,
		exit_costs = $exit_costs`
	vars := map[string]any{
		"rid":                surrealmodels.NewRecordID("roi_settings", roiSettingsKey),
		"default_investment": settings.DefaultInvestment,
		"rental_yield":       settings.RentalYield,
		"appreciation":       settings.Appreciation,
		"holding_period":     settings.HoldingPeriod,
		"rent_growth":        settings.RentGrowth,
		"expense_ratio":      settings.ExpenseRatio,
		"exit_costs":         settings.ExitCosts,
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save roi settings: %w", err)
	}
	return nil
}

func (s *RoiStore) GetScenario(ctx context.Context, id string) (*models.RoiScenario, error) {
	sql := "SELECT " + scenarioSelectFields + " FROM $rid"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID("roi_scenario", id),
	}

	results, err := surrealdb.Query[[]models.RoiScenario](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("scenario %s not found", id)
		}
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("scenario %s not found", id)
	}
	return &(*results)[0].Result[0], nil
}

func (s *RoiStore) SaveScenario(ctx context.Context, scenario *models.RoiScenario) error {
	sql := `UPSERT $rid SET
		scenario_id = $scenario_id, name = $name,
		rental_yield_delta = $rental_yield_delta,
		appreciation_delta = $appreciation_delta,
		holding_period_delta = $holding_period_delta,
		notes = $notes`
	vars := map[string]any{
		"rid":                  surrealmodels.NewRecordID("roi_scenario", scenario.ID),
		"scenario_id":          scenario.ID,
		"name":                 scenario.Name,
		"rental_yield_delta":   scenario.RentalYieldDelta,
		"appreciation_delta":   scenario.AppreciationDelta,
		"holding_period_delta": scenario.HoldingPeriodDelta,
		"notes":                scenario.Notes,
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	return nil
}

func (s *RoiStore) DeleteScenario(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.RoiScenario](ctx, s.db, surrealmodels.NewRecordID("roi_scenario", id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	return nil
}

func (s *RoiStore) ListScenarios(ctx context.Context) ([]*models.RoiScenario, error) {
	sql := "SELECT " + scenarioSelectFields + " FROM roi_scenario ORDER BY scenario_id ASC"

	results, err := surrealdb.Query[[]models.RoiScenario](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	scenarios := make([]*models.RoiScenario, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			scenarios = append(scenarios, &(*results)[0].Result[i])
		}
	}
	return scenarios, nil
}

// Compile-time check
var _ interfaces.RoiStore = (*RoiStore)(nil)
