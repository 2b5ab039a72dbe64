// Package interfaces defines service contracts for the TruAssets platform
package interfaces

import (
	"context"
	"time"

	"github.com/truassets/truassets-server/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	// Storage accessors
	UserStore() UserStore
	PropertyStore() PropertyStore
	LeadStore() LeadStore
	InsightStore() InsightStore
	RoiStore() RoiStore

	// System key-value (seed markers, operational flags)
	GetSystemKV(ctx context.Context, key string) (string, error)
	SetSystemKV(ctx context.Context, key, value string) error

	// Lifecycle
	Close() error
}

// UserStore manages platform accounts.
type UserStore interface {
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.User, error)
}

// PropertyStore manages the listed-opportunity catalog.
type PropertyStore interface {
	Get(ctx context.Context, id string) (*models.Property, error)
	Save(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts PropertyListOptions) ([]*models.Property, int, error) // items, total, error
	GetBatch(ctx context.Context, ids []string) ([]*models.Property, error)
}

// PropertyListOptions configures filtering and pagination for catalog queries.
type PropertyListOptions struct {
	Status  string
	Type    string
	Page    int
	PerPage int
	Sort    string // created_at_desc (default), created_at_asc, price_asc, price_desc
}

// LeadStore manages the lead-capture pipeline.
type LeadStore interface {
	Get(ctx context.Context, id string) (*models.Lead, error)
	Save(ctx context.Context, lead *models.Lead) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts LeadListOptions) ([]*models.Lead, int, error) // items, total, error
	Stats(ctx context.Context) (*models.LeadStats, error)
}

// LeadListOptions configures filtering and pagination for lead queries.
type LeadListOptions struct {
	Status  string
	Source  string
	Since   *time.Time
	Page    int
	PerPage int
	Sort    string // created_at_desc (default), created_at_asc
}

// InsightStore manages CMS articles.
type InsightStore interface {
	Get(ctx context.Context, id string) (*models.InsightPost, error)
	Save(ctx context.Context, post *models.InsightPost) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts InsightListOptions) ([]*models.InsightPost, int, error) // items, total, error
}

// InsightListOptions configures filtering and pagination for insight queries.
type InsightListOptions struct {
	Status  string
	Tag     string
	Page    int
	PerPage int
}

// RoiStore manages calculator settings and scenario presets.
type RoiStore interface {
	GetSettings(ctx context.Context) (*models.RoiSettings, error)
	SaveSettings(ctx context.Context, settings *models.RoiSettings) error

	GetScenario(ctx context.Context, id string) (*models.RoiScenario, error)
	SaveScenario(ctx context.Context, scenario *models.RoiScenario) error
	DeleteScenario(ctx context.Context, id string) error
	ListScenarios(ctx context.Context) ([]*models.RoiScenario, error)
}
