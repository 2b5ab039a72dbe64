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

// leadSelectFields aliases lead_id to id for struct mapping.
const leadSelectFields = `lead_id as id, name, email, phone,
	investment_horizon, investment_goal, preferred_date, preferred_time,
	notes, source, status, created_at, updated_at`

// LeadStore implements interfaces.LeadStore using SurrealDB.
type LeadStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewLeadStore creates a new LeadStore.
func NewLeadStore(db *surrealdb.DB, logger *common.Logger) *LeadStore {
	return &LeadStore{db: db, logger: logger}
}

func (s *LeadStore) Get(ctx context.Context, id string) (*models.Lead, error) {
	sql := "SELECT " + leadSelectFields + " FROM $rid"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID("lead", id),
	}

	results, err := surrealdb.Query[[]models.Lead](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("lead %s not found", id)
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("lead %s not found", id)
	}
	return &(*results)[0].Result[0], nil
}

func (s *LeadStore) Save(ctx context.Context, lead *models.Lead) error {
	sql := `UPSERT $rid SET
		lead_id = $lead_id, name = $name, email = $email, phone = $phone,
		investment_horizon = $investment_horizon, investment_goal = $investment_goal,
		preferred_date = $preferred_date, preferred_time = $preferred_time,
		notes = $notes, source = $source, status = $status,
		created_at = $created_at, updated_at = $updated_at`
	vars := map[string]any{
		"rid":                surrealmodels.NewRecordID("lead", lead.ID),
		"lead_id":            lead.ID,
		"name":               lead.Name,
		"email":              lead.Email,
		"phone":              lead.Phone,
		"investment_horizon": lead.InvestmentHorizon,
		"investment_goal":    lead.InvestmentGoal,
		"preferred_date":     lead.PreferredDate,
		"preferred_time":     lead.PreferredTime,
		"notes":              lead.Notes,
		"source":             lead.Source,
		"status":             lead.Status,
		"created_at":         lead.CreatedAt,
		"updated_at":         lead.UpdatedAt,
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save lead: %w", err)
	}
	return nil
}

func (s *LeadStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.Lead](ctx, s.db, surrealmodels.NewRecordID("lead", id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return nil
}

func (s *LeadStore) List(ctx context.Context, opts interfaces.LeadListOptions) ([]*models.Lead, int, error) {
	where := ""
	vars := map[string]any{}

	if opts.Status != "" {
		where += " AND status = $status"
		vars["status"] = opts.Status
	}
	if opts.Source != "" {
		where += " AND source = $source"
		vars["source"] = opts.Source
	}
	if opts.Since != nil {
		where += " AND created_at >= $since"
		vars["since"] = *opts.Since
	}

	whereClause := ""
	if where != "" {
		whereClause = " WHERE " + where[5:]
	}

	// lead_id as tiebreaker for deterministic ordering
	orderBy := "ORDER BY created_at DESC, lead_id DESC"
	if opts.Sort == "created_at_asc" {
		orderBy = "ORDER BY created_at ASC, lead_id ASC"
	}

	countSQL := "SELECT count() AS cnt FROM lead" + whereClause + " GROUP ALL"
	type countResult struct {
		Cnt int `json:"cnt"`
	}
	total := 0
	countResults, err := surrealdb.Query[[]countResult](ctx, s.db, countSQL, vars)
	if err == nil && countResults != nil && len(*countResults) > 0 && len((*countResults)[0].Result) > 0 {
		total = (*countResults)[0].Result[0].Cnt
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	offset := (page - 1) * perPage

	dataSQL := "SELECT " + leadSelectFields + " FROM lead" + whereClause + " " + orderBy + " LIMIT $limit START $start"
	vars["limit"] = perPage
	vars["start"] = offset

	results, err := surrealdb.Query[[]models.Lead](ctx, s.db, dataSQL, vars)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leads: %w", err)
	}

	items := make([]*models.Lead, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			items = append(items, &(*results)[0].Result[i])
		}
	}

	return items, total, nil
}

func (s *LeadStore) Stats(ctx context.Context) (*models.LeadStats, error) {
	stats := &models.LeadStats{}

	type groupResult struct {
		Group string `json:"group"`
		Cnt   int    `json:"cnt"`
	}
	sql := "SELECT status AS group, count() AS cnt FROM lead GROUP BY status"
	results, err := surrealdb.Query[[]groupResult](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compute lead stats: %w", err)
	}

	if results != nil && len(*results) > 0 {
		for _, r := range (*results)[0].Result {
			stats.Total += r.Cnt
			switch r.Group {
			case models.LeadStatusNew:
				stats.New = r.Cnt
			case models.LeadStatusInProgress:
				stats.InProgress = r.Cnt
			case models.LeadStatusContacted:
				stats.Contacted = r.Cnt
			case models.LeadStatusConverted:
				stats.Converted = r.Cnt
			case models.LeadStatusArchived:
				stats.Archived = r.Cnt
			}
		}
	}

	return stats, nil
}

// Compile-time check
var _ interfaces.LeadStore = (*LeadStore)(nil)
