// Package interfaces defines service contracts for the TruAssets platform
package interfaces

import (
	"context"

	"github.com/truassets/truassets-server/internal/models"
)

// RoiService runs projections and manages calculator configuration
type RoiService interface {
	// Project computes a multi-year cash-flow schedule and summary metrics
	Project(assumptions models.AssumptionSet) (*models.Projection, error)

	// ProjectScenario applies a stored scenario delta before projecting
	ProjectScenario(ctx context.Context, assumptions models.AssumptionSet, scenarioID string) (*models.Projection, error)

	// RenderChart renders the cumulative cash-flow schedule as a PNG
	RenderChart(projection *models.Projection) ([]byte, error)

	// GetSettings retrieves the platform default assumptions
	GetSettings(ctx context.Context) (*models.RoiSettings, error)

	// UpdateSettings replaces the platform default assumptions
	UpdateSettings(ctx context.Context, settings *models.RoiSettings) error

	// ListScenarios returns all scenario presets
	ListScenarios(ctx context.Context) ([]*models.RoiScenario, error)

	// AddScenario stores a new scenario preset
	AddScenario(ctx context.Context, scenario *models.RoiScenario) error

	// UpdateScenario replaces an existing scenario preset
	UpdateScenario(ctx context.Context, scenario *models.RoiScenario) error

	// DeleteScenario removes a scenario preset
	DeleteScenario(ctx context.Context, id string) error
}

// CatalogService manages property listings and comparisons
type CatalogService interface {
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	SaveProperty(ctx context.Context, property *models.Property) error
	DeleteProperty(ctx context.Context, id string) error
	ListProperties(ctx context.Context, opts PropertyListOptions) ([]*models.Property, int, error)

	// Compare builds a side-by-side view over 2 to 4 property IDs
	Compare(ctx context.Context, ids []string) (*models.Comparison, error)
}

// LeadService manages the lead-capture pipeline
type LeadService interface {
	Submit(ctx context.Context, lead *models.Lead) (*models.Lead, error)
	Get(ctx context.Context, id string) (*models.Lead, error)
	Update(ctx context.Context, id string, updates map[string]any) (*models.Lead, error)
	SetStatus(ctx context.Context, id, status string) (*models.Lead, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts LeadListOptions) ([]*models.Lead, int, error)
	Stats(ctx context.Context) (*models.LeadStats, error)
}

// InsightService manages CMS articles
type InsightService interface {
	Get(ctx context.Context, id string) (*models.InsightPost, error)
	Create(ctx context.Context, post *models.InsightPost) (*models.InsightPost, error)
	Update(ctx context.Context, id string, updates map[string]any) (*models.InsightPost, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts InsightListOptions) ([]*models.InsightPost, int, error)

	// TogglePublish flips a post between draft and published, maintaining
	// the published timestamp
	TogglePublish(ctx context.Context, id string) (*models.InsightPost, error)

	// DraftExcerpt generates a short excerpt from post content via the
	// configured language model
	DraftExcerpt(ctx context.Context, title, content string) (string, error)
}
