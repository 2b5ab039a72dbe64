package server

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/truassets/truassets-server/internal/common"
	"github.com/truassets/truassets-server/internal/interfaces"
	"github.com/truassets/truassets-server/internal/models"
)

// handleInsightsRoot dispatches GET /api/insights (list) and POST /api/insights
// (create, admin). Non-admin callers only see published posts.
func (s *Server) handleInsightsRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleInsightList(w, r)
	case http.MethodPost:
		s.handleInsightCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleInsightList handles GET /api/insights.
func (s *Server) handleInsightList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := interfaces.InsightListOptions{
		Status: q.Get("status"),
		Tag:    q.Get("tag"),
	}

	// Drafts are back-office only
	if !common.IsAdmin(r.Context()) {
		opts.Status = models.InsightStatusPublished
	}

	opts.Page = 1
	if v := queryInt(r, "page", 1); v > 0 {
		opts.Page = v
	}
	opts.PerPage = 20
	if v := queryInt(r, "per_page", 20); v > 0 && v <= 100 {
		opts.PerPage = v
	}

	items, total, err := s.app.InsightService.List(r.Context(), opts)
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

// handleInsightCreate handles POST /api/insights.
func (s *Server) handleInsightCreate(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	var post models.InsightPost
	if !DecodeJSON(w, r, &post) {
		return
	}
	post.ID = ""

	created, err := s.app.InsightService.Create(r.Context(), &post)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}

// handleInsightGet handles GET /api/insights/{id}. Draft posts are only
// visible to admins.
func (s *Server) handleInsightGet(w http.ResponseWriter, r *http.Request, id string) {
	post, err := s.app.InsightService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("insight post '%s' not found", id))
		return
	}

	if post.Status != models.InsightStatusPublished && !common.IsAdmin(r.Context()) {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("insight post '%s' not found", id))
		return
	}

	WriteJSON(w, http.StatusOK, post)
}

// handleInsightUpdate handles PUT /api/insights/{id}.
func (s *Server) handleInsightUpdate(w http.ResponseWriter, r *http.Request, id string) {
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

	post, err := s.app.InsightService.Update(r.Context(), id, updates)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("insight post '%s' not found", id))
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, post)
}

// handleInsightDelete handles DELETE /api/insights/{id}.
func (s *Server) handleInsightDelete(w http.ResponseWriter, r *http.Request, id string) {
	if !s.requireAdmin(w, r) {
		return
	}

	if _, err := s.app.InsightService.Get(r.Context(), id); err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("insight post '%s' not found", id))
		return
	}

	if err := s.app.InsightService.Delete(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to delete insight post: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleInsightPublish handles POST /api/insights/{id}/publish - toggle
// between draft and published.
func (s *Server) handleInsightPublish(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}

	post, err := s.app.InsightService.TogglePublish(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("insight post '%s' not found", id))
			return
		}
		WriteError(w, http.StatusInternalServerError, "Failed to toggle publish: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, post)
}

// handleInsightDraftExcerpt handles POST /api/insights/draft-excerpt.
func (s *Server) handleInsightDraftExcerpt(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	excerpt, err := s.app.InsightService.DraftExcerpt(r.Context(), req.Title, req.Content)
	if err != nil {
		if strings.Contains(err.Error(), "not configured") {
			WriteError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"excerpt": excerpt,
	})
}
