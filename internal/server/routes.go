package server

import (
	"net/http"
	"strings"

	"github.com/truassets/truassets-server/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Auth
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/google", s.handleAuthGoogle)
	mux.HandleFunc("/api/auth/validate", s.handleAuthValidate)

	// Users
	mux.HandleFunc("/api/users/", s.routeUsers)
	mux.HandleFunc("/api/users", s.handleUsersRoot)

	// ROI calculator
	mux.HandleFunc("/api/roi/settings", s.handleRoiSettings)
	mux.HandleFunc("/api/roi/scenarios/", s.routeRoiScenarios)
	mux.HandleFunc("/api/roi/scenarios", s.handleRoiScenariosRoot)
	mux.HandleFunc("/api/roi/project", s.handleRoiProject)
	mux.HandleFunc("/api/roi/chart", s.handleRoiChart)

	// Property catalog
	mux.HandleFunc("/api/properties/", s.routeProperties)
	mux.HandleFunc("/api/properties", s.handlePropertiesRoot)

	// Leads
	mux.HandleFunc("/api/leads/", s.routeLeads)
	mux.HandleFunc("/api/leads", s.handleLeadsRoot)

	// Insights
	mux.HandleFunc("/api/insights/", s.routeInsights)
	mux.HandleFunc("/api/insights", s.handleInsightsRoot)
}

// routeRoiScenarios dispatches /api/roi/scenarios/{id} to the appropriate handler.
func (s *Server) routeRoiScenarios(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/roi/scenarios/")
	if id == "" {
		s.handleRoiScenariosRoot(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.handleRoiScenarioUpdate(w, r, id)
	case http.MethodDelete:
		s.handleRoiScenarioDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}

// routeProperties dispatches /api/properties/{id} and /api/properties/compare.
func (s *Server) routeProperties(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/properties/")
	if path == "" {
		s.handlePropertiesRoot(w, r)
		return
	}

	if path == "compare" {
		s.handlePropertyCompare(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handlePropertyGet(w, r, path)
	case http.MethodPut:
		s.handlePropertyUpdate(w, r, path)
	case http.MethodDelete:
		s.handlePropertyDelete(w, r, path)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// routeLeads dispatches /api/leads/stats and /api/leads/{id}.
func (s *Server) routeLeads(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/leads/")
	if path == "" {
		s.handleLeadsRoot(w, r)
		return
	}

	if path == "stats" {
		s.handleLeadStats(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleLeadGet(w, r, path)
	case http.MethodPatch:
		s.handleLeadUpdate(w, r, path)
	case http.MethodDelete:
		s.handleLeadDelete(w, r, path)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}

// routeInsights dispatches /api/insights/{id}, /{id}/publish, and /draft-excerpt.
func (s *Server) routeInsights(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/insights/")
	if path == "" {
		s.handleInsightsRoot(w, r)
		return
	}

	if path == "draft-excerpt" {
		s.handleInsightDraftExcerpt(w, r)
		return
	}

	if id, ok := strings.CutSuffix(path, "/publish"); ok {
		s.handleInsightPublish(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleInsightGet(w, r, path)
	case http.MethodPut:
		s.handleInsightUpdate(w, r, path)
	case http.MethodDelete:
		s.handleInsightDelete(w, r, path)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// requireAdmin enforces an authenticated admin identity on the request.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	uc := common.UserContextFromContext(r.Context())
	if uc == nil {
		WriteError(w, http.StatusUnauthorized, "Authentication required")
		return false
	}
	if uc.Role != "admin" {
		WriteError(w, http.StatusForbidden, "Admin access required")
		return false
	}
	return true
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":       s.app.Config.Environment,
		"storage_backend":   s.app.Config.Storage.Backend,
		"storage_namespace": s.app.Config.Storage.Namespace,
		"storage_database":  s.app.Config.Storage.Database,
		"logging_level":     s.app.Config.Logging.Level,
		"gemini_configured": s.app.GeminiClient != nil && s.app.GeminiClient.IsConfigured(),
		"gemini_model":      s.app.Config.Clients.Gemini.Model,
		"gemini_key":        maskSecret(s.app.Config.Clients.Gemini.APIKey),
	})
}
