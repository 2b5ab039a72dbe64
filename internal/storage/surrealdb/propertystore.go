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

// propertySelectFields aliases property_id to id for struct mapping.
const propertySelectFields = `property_id as id, title, location, price,
	target_amount, raised_amount, expected_return, tenure, investors,
	status, type, amenities, created_at, updated_at`

// PropertyStore implements interfaces.PropertyStore using SurrealDB.
type PropertyStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewPropertyStore creates a new PropertyStore.
func NewPropertyStore(db *surrealdb.DB, logger *common.Logger) *PropertyStore {
	return &PropertyStore{db: db, logger: logger}
}

func (s *PropertyStore) Get(ctx context.Context, id string) (*models.Property, error) {
	sql := "SELECT " + propertySelectFields + " FROM $rid"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID("property", id),
	}

	results, err := surrealdb.Query[[]models.Property](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("property %s not found", id)
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("property %s not found", id)
	}
	return &(*results)[0].Result[0], nil
}

func (s *PropertyStore) Save(ctx context.Context, property *models.Property) error {
	sql := `UPSERT $rid SET
		property_id = $property_id, title = $title, location = $location,
		price = $price, target_amount = $target_amount, raised_amount = $raised_amount,
		expected_return = $expected_return, tenure = $tenure, investors = $investors,
		status = $status, type = $type, amenities = $amenities,
		created_at = $created_at, updated_at = $updated_at`
	vars := map[string]any{
		"rid":             surrealmodels.NewRecordID("property", property.ID),
		"property_id":     property.ID,
		"title":           property.Title,
		"location":        property.Location,
		"price":           property.Price,
		"target_amount":   property.TargetAmount,
		"raised_amount":   property.RaisedAmount,
		"expected_return": property.ExpectedReturn,
		"tenure":          property.Tenure,
		"investors":       property.Investors,
		"status":          property.Status,
		"type":            property.Type,
		"amenities":       property.Amenities,
		"created_at":      property.CreatedAt,
		"updated_at":      property.UpdatedAt,
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save property: %w", err)
	}
	return nil
}

func (s *PropertyStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.Property](ctx, s.db, surrealmodels.NewRecordID("property", id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return nil
}

func (s *PropertyStore) List(ctx context.Context, opts interfaces.PropertyListOptions) ([]*models.Property, int, error) {
	where := ""
	vars := map[string]any{}

	if opts.Status != "" {
		where += " AND status = $status"
		vars["status"] = opts.Status
	}
	if opts.Type != "" {
		where += " AND type = $type"
		vars["type"] = opts.Type
	}

	whereClause := ""
	if where != "" {
		whereClause = " WHERE " + where[5:]
	}

	// property_id as tiebreaker for deterministic ordering
	orderBy := "ORDER BY created_at DESC, property_id DESC"
	switch opts.Sort {
	case "created_at_asc":
		orderBy = "ORDER BY created_at ASC, property_id ASC"
	case "price_asc":
		orderBy = "ORDER BY price ASC, property_id ASC"
	case "price_desc":
		orderBy = "ORDER BY price DESC, property_id DESC"
	}

	countSQL := "SELECT count() AS cnt FROM property" + whereClause + " GROUP ALL"
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

	dataSQL := "SELECT " + propertySelectFields + " FROM property" + whereClause + " " + orderBy + " LIMIT $limit START $start"
	vars["limit"] = perPage
	vars["start"] = offset

	results, err := surrealdb.Query[[]models.Property](ctx, s.db, dataSQL, vars)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list properties: %w", err)
	}

	items := make([]*models.Property, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			items = append(items, &(*results)[0].Result[i])
		}
	}

	return items, total, nil
}

func (s *PropertyStore) GetBatch(ctx context.Context, ids []string) ([]*models.Property, error) {
	items := make([]*models.Property, 0, len(ids))
	for _, id := range ids {
		property, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		items = append(items, property)
	}
	return items, nil
}

// Compile-time check
var _ interfaces.PropertyStore = (*PropertyStore)(nil)
