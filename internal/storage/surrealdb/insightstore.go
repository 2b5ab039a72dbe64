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

// insightSelectFields aliases post_id to id for struct mapping.
const insightSelectFields = `post_id as id, title, excerpt, content, author,
	hero_image, tags, status, published_at, updated_at`

// InsightStore implements interfaces.InsightStore using SurrealDB.
type InsightStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewInsightStore creates a new InsightStore.
func NewInsightStore(db *surrealdb.DB, logger *common.Logger) *InsightStore {
	return &InsightStore{db: db, logger: logger}
}

func (s *InsightStore) Get(ctx context.Context, id string) (*models.InsightPost, error) {
	sql := "SELECT " + insightSelectFields + " FROM $rid"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID("insight_post", id),
	}

	results, err := surrealdb.Query[[]models.InsightPost](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("insight post %s not found", id)
		}
		return nil, fmt.Errorf("failed to get insight post: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("insight post %s not found", id)
	}
	return &(*results)[0].Result[0], nil
}

func (s *InsightStore) Save(ctx context.Context, post *models.InsightPost) error {
	sql := `UPSERT $rid SET
		post_id = $post_id, title = $title, excerpt = $excerpt,
		content = $content, author = $author, hero_image = $hero_image,
		tags = $tags, status = $status,
		published_at = $published_at, updated_at = $updated_at`
	vars := map[string]any{
		"rid":          surrealmodels.NewRecordID("insight_post", post.ID),
		"post_id":      post.ID,
		"title":        post.Title,
		"excerpt":      post.Excerpt,
		"content":      post.Content,
		"author":       post.Author,
		"hero_image":   post.HeroImage,
		"tags":         post.Tags,
		"status":       post.Status,
		"published_at": post.PublishedAt,
		"updated_at":   post.UpdatedAt,
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save insight post: %w", err)
	}
	return nil
}

func (s *InsightStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.InsightPost](ctx, s.db, surrealmodels.NewRecordID("insight_post", id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete insight post: %w", err)
	}
	return nil
}

func (s *InsightStore) List(ctx context.Context, opts interfaces.InsightListOptions) ([]*models.InsightPost, int, error) {
	where := ""
	vars := map[string]any{}

	if opts.Status != "" {
		where += " AND status = $status"
		vars["status"] = opts.Status
	}
	if opts.Tag != "" {
		where += " AND $tag IN tags"
		vars["tag"] = opts.Tag
	}

	whereClause := ""
	if where != "" {
		whereClause = " WHERE " + where[5:]
	}

	// post_id as tiebreaker for deterministic ordering
	orderBy := "ORDER BY updated_at DESC, post_id DESC"

	countSQL := "SELECT count() AS cnt FROM insight_post" + whereClause + " GROUP ALL"
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

	dataSQL := "SELECT " + insightSelectFields + " FROM insight_post" + whereClause + " " + orderBy + " LIMIT $limit START $start"
	vars["limit"] = perPage
	vars["start"] = offset

	results, err := surrealdb.Query[[]models.InsightPost](ctx, s.db, dataSQL, vars)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list insight posts: %w", err)
	}

	items := make([]*models.InsightPost, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			items = append(items, &(*results)[0].Result[i])
		}
	}

	return items, total, nil
}

// Compile-time check
var _ interfaces.InsightStore = (*InsightStore)(nil)
