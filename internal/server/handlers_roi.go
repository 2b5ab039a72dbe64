package server

import (
	"fmt"
	"net/http"

	"github.com/truassets/truassets-server/internal/models"
)

// handleRoiSettings dispatches GET (public) and PUT (admin) /api/roi/settings.
func (s *Server) handleRoiSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := s.app.RoiService.GetSettings(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Failed to get settings: "+err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, settings)

	case http.MethodPut:
		if !s.requireAdmin(w, r) {
			return
		}
		var settings models.RoiSettings
		if !DecodeJSON(w, r, &settings) {
			return
		}
		if err := s.app.RoiService.UpdateSettings(r.Context(), &settings); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, settings)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}

// handleRoiScenariosRoot dispatches GET (public) and POST (admin) /api/roi/scenarios.
func (s *Server) handleRoiScenariosRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		scenarios, err := s.app.RoiService.ListScenarios(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Failed to list scenarios: "+err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"items": scenarios,
			"total": len(scenarios),
		})

	case http.MethodPost:
		if !s.requireAdmin(w, r) {
			return
		}
		var scenario models.RoiScenario
		if !DecodeJSON(w, r, &scenario) {
			return
		}
		if err := s.app.RoiService.AddScenario(r.Context(), &scenario); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, scenario)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleRoiScenarioUpdate handles PUT /api/roi/scenarios/{id}.
func (s *Server) handleRoiScenarioUpdate(w http.ResponseWriter, r *http.Request, id string) {
	if !s.requireAdmin(w, r) {
		return
	}

	var scenario models.RoiScenario
	if !DecodeJSON(w, r, &scenario) {
		return
	}
	scenario.ID = id

	if err := s.app.RoiService.UpdateScenario(r.Context(), &scenario); err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("scenario '%s' not found", id))
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, scenario)
}

// handleRoiScenarioDelete handles DELETE /api/roi/scenarios/{id}.
func (s *Server) handleRoiScenarioDelete(w http.ResponseWriter, r *http.Request, id string) {
	if !s.requireAdmin(w, r) {
		return
	}

	if err := s.app.RoiService.DeleteScenario(r.Context(), id); err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("scenario '%s' not found", id))
			return
		}
		WriteError(w, http.StatusInternalServerError, "Failed to delete scenario: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// roiProjectRequest is the body for projection and chart requests.
// Assumption fields are flattened alongside an optional scenario reference.
type roiProjectRequest struct {
	models.AssumptionSet
	ScenarioID string `json:"scenario_id"`
}

// project runs a projection for the request, applying the scenario when set.
func (s *Server) project(r *http.Request, req roiProjectRequest) (*models.Projection, error) {
	if req.ScenarioID != "" {
		return s.app.RoiService.ProjectScenario(r.Context(), req.AssumptionSet, req.ScenarioID)
	}
	return s.app.RoiService.Project(req.AssumptionSet)
}

// handleRoiProject handles POST /api/roi/project.
func (s *Server) handleRoiProject(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req roiProjectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	projection, err := s.project(r, req)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, projection)
}

// handleRoiChart handles POST /api/roi/chart - render the projection as a PNG.
func (s *Server) handleRoiChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req roiProjectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	projection, err := s.project(r, req)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	png, err := s.app.RoiService.RenderChart(projection)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
