package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/truassets/truassets-server/internal/clients/gemini"
	"github.com/truassets/truassets-server/internal/common"
	"github.com/truassets/truassets-server/internal/interfaces"
	"github.com/truassets/truassets-server/internal/models"
	"github.com/truassets/truassets-server/internal/services/catalog"
	"github.com/truassets/truassets-server/internal/services/insights"
	"github.com/truassets/truassets-server/internal/services/leads"
	"github.com/truassets/truassets-server/internal/services/roi"
	"github.com/truassets/truassets-server/internal/storage"
)

// App holds all initialized services, clients, and storage.
// It is the shared core used by cmd/truassets-server and tests.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	Storage        interfaces.StorageManager
	GeminiClient   interfaces.GeminiClient
	RoiService     interfaces.RoiService
	CatalogService interfaces.CatalogService
	LeadService    interfaces.LeadService
	InsightService interfaces.InsightService
	StartupTime    time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Load configuration - check provided path, TRUASSETS_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("TRUASSETS_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "truassets.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/truassets.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(&config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ctx := context.Background()

	// Resolve Gemini key from config, then system KV
	geminiKey := config.Clients.Gemini.APIKey
	if geminiKey == "" {
		if val, err := storageManager.GetSystemKV(ctx, "gemini_api_key"); err == nil {
			geminiKey = val
		}
	}

	var geminiClient interfaces.GeminiClient
	if geminiKey != "" {
		client, err := gemini.NewClient(ctx, geminiKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client - excerpt drafting will be unavailable")
		} else {
			geminiClient = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - excerpt drafting will be unavailable")
	}

	roiService := roi.NewService(storageManager, logger)
	catalogService := catalog.NewService(storageManager, logger)
	leadService := leads.NewService(storageManager, logger)
	insightService := insights.NewService(storageManager, geminiClient, logger)

	a := &App{
		Config:         config,
		Logger:         logger,
		Storage:        storageManager,
		GeminiClient:   geminiClient,
		RoiService:     roiService,
		CatalogService: catalogService,
		LeadService:    leadService,
		InsightService: insightService,
		StartupTime:    startupStart,
	}

	if err := a.seedAdminUser(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed admin user")
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// seedAdminUser creates the bootstrap admin account on first start.
// In production the password must come from TRUASSETS_ADMIN_PASSWORD;
// in development a well-known default is used.
func (a *App) seedAdminUser(ctx context.Context) error {
	if seeded, _ := a.Storage.GetSystemKV(ctx, "admin_seeded"); seeded == "true" {
		return nil
	}

	users, err := a.Storage.UserStore().List(ctx)
	if err == nil && len(users) > 0 {
		return a.Storage.SetSystemKV(ctx, "admin_seeded", "true")
	}

	password := os.Getenv("TRUASSETS_ADMIN_PASSWORD")
	if password == "" {
		if a.Config.IsProduction() {
			a.Logger.Warn().Msg("No users exist and TRUASSETS_ADMIN_PASSWORD is not set - admin account not created")
			return nil
		}
		password = "truassets-dev"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		ID:           "user_admin",
		Email:        "admin@truassets.local",
		Name:         "Administrator",
		PasswordHash: string(hash),
		Role:         models.UserRoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := a.Storage.UserStore().Save(ctx, admin); err != nil {
		return fmt.Errorf("failed to save admin user: %w", err)
	}

	a.Logger.Info().Str("email", admin.Email).Msg("Seeded bootstrap admin account")
	return a.Storage.SetSystemKV(ctx, "admin_seeded", "true")
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
