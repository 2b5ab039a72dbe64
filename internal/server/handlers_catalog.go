package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/truassets/truassets-server/internal/interfaces"
	"github.com/truassets/truassets-server/internal/models"
)

// handlePropertiesRoot dispatches GET /api/properties (list, public) and
// POST /api/properties (create, admin).
func (s *Server) handlePropertiesRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handlePropertyList(w, r)
	case http.MethodPost:
		s.handlePropertyCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handlePropertyList handles GET /api/properties.
func (s *Server) handlePropertyList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := interfaces.PropertyListOptions{
		Status: q.Get("status"),
		Type:   q.Get("type"),
		Sort:   q.Get("sort"),
	}

	opts.Page = 1
	if v := queryInt(r, "page", 1); v > 0 {
		opts.Page = v
	}
	opts.PerPage = 20
	if v := queryInt(r, "per_page", 20); v > 0 && v <= 100 {
		opts.PerPage = v
	}

	items, total, err := s.app.CatalogService.ListProperties(r.Context(), opts)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	pages := int(math.Ceil(float64(total) / float64(opts.PerPage)))

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":    items,
		"total":    total,
		"page":     opts.Page,
		"per_page": opts.PerPage,
		"pages":    pages,
	})
}

// handlePropertyCreate handles POST /api/properties.
func (s *Server) handlePropertyCreate(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	var property models.Property
	if !DecodeJSON(w, r, &property) {
		return
	}
	property.ID = ""

	if err := s.app.CatalogService.SaveProperty(r.Context(), &property); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, property)
}

// handlePropertyGet handles GET /api/properties/{id}.
func (s *Server) handlePropertyGet(w http.ResponseWriter, r *http.Request, id string) {
	property, err := s.app.CatalogService.GetProperty(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("property '%s' not found", id))
		return
	}

	WriteJSON(w, http.StatusOK, property)
}

// handlePropertyUpdate handles PUT /api/properties/{id}.
func (s *Server) handlePropertyUpdate(w http.ResponseWriter, r *http.Request, id string) {
	if !s.requireAdmin(w, r) {
		return
	}

	if _, err := s.app.CatalogService.GetProperty(r.Context(), id); err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("property '%s' not found", id))
		return
	}

	var property models.Property
	if !DecodeJSON(w, r, &property) {
		return
	}
	property.ID = id

	if err := s.app.CatalogService.SaveProperty(r.Context(), &property); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, property)
}

// handlePropertyDelete handles DELETE /api/properties/{id}.
func (s *Server) handlePropertyDelete(w http.ResponseWriter, r *http.Request, id string) {
	if !s.requireAdmin(w, r) {
		return
	}

	if _, err := s.app.CatalogService.GetProperty(r.Context(), id); err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("property '%s' not found", id))
		return
	}

	if err := s.app.CatalogService.DeleteProperty(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to delete property: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handlePropertyCompare handles POST /api/properties/compare.
func (s *Server) handlePropertyCompare(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		IDs []string `json:"ids"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	comparison, err := s.app.CatalogService.Compare(r.Context(), req.IDs)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, comparison)
}
