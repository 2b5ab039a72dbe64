package server

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/truassets/truassets-server/internal/interfaces"
	"github.com/truassets/truassets-server/internal/models"
)

// handleLeadsRoot dispatches POST /api/leads (public, rate-limited) and
// GET /api/leads (admin list).
func (s *Server) handleLeadsRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleLeadSubmit(w, r)
	case http.MethodGet:
		s.handleLeadList(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleLeadSubmit handles POST /api/leads.
func (s *Server) handleLeadSubmit(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	if !s.leadLimiter.Allow(ip) {
		s.logger.Warn().Str("ip", ip).Msg("Lead submission rate limit exceeded")
		WriteError(w, http.StatusTooManyRequests, "too many submissions, try again later")
		return
	}

	var lead models.Lead
	if !DecodeJSON(w, r, &lead) {
		return
	}
	lead.ID = ""
	lead.Status = ""

	saved, err := s.app.LeadService.Submit(r.Context(), &lead)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"accepted": true,
		"lead_id":  saved.ID,
	})
}

// handleLeadList handles GET /api/leads.
func (s *Server) handleLeadList(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	q := r.URL.Query()
	opts := interfaces.LeadListOptions{
		Status: q.Get("status"),
		Source: q.Get("source"),
		Sort:   q.Get("sort"),
	}

	if since := q.Get("since"); since != "" {
		if t, err := time.Parse(time.RFC3339, since); err == nil {
			opts.Since = &t
		}
	}

	opts.Page = 1
	if v := queryInt(r, "page", 1); v > 0 {
		opts.Page = v
	}
	opts.PerPage = 20
	if v := queryInt(r, "per_page", 20); v > 0 && v <= 100 {
		opts.PerPage = v
	}

	items, total, err := s.app.LeadService.List(r.Context(), opts)
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

// handleLeadStats handles GET /api/leads/stats.
func (s *Server) handleLeadStats(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}

	stats, err := s.app.LeadService.Stats(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to get lead stats: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

// handleLeadGet handles GET /api/leads/{id}.
func (s *Server) handleLeadGet(w http.ResponseWriter, r *http.Request, id string) {
	if !s.requireAdmin(w, r) {
		return
	}

	lead, err := s.app.LeadService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("lead '%s' not found", id))
		return
	}

	WriteJSON(w, http.StatusOK, lead)
}

// handleLeadUpdate handles PATCH /api/leads/{id} - partial field updates,
// including status transitions.
func (s *Server) handleLeadUpdate(w http.ResponseWriter, r *http.Request, id string) {
	if !s.requireAdmin(w, r) {
		return
	}

	var updates map[string]any
	if !DecodeJSON(w, r, &updates) {
		return
	}
	if len(updates) == 0 {
		WriteError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	lead, err := s.app.LeadService.Update(r.Context(), id, updates)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("lead '%s' not found", id))
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, lead)
}

// handleLeadDelete handles DELETE /api/leads/{id}.
func (s *Server) handleLeadDelete(w http.ResponseWriter, r *http.Request, id string) {
	if !s.requireAdmin(w, r) {
		return
	}

	if _, err := s.app.LeadService.Get(r.Context(), id); err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("lead '%s' not found", id))
		return
	}

	if err := s.app.LeadService.Delete(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to delete lead: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
