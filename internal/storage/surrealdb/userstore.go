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

// userSelectFields aliases user_id to id for struct mapping.
const userSelectFields = `user_id as id, email, name, password_hash, role,
	google_id, avatar_url, created_at, last_login_at`

// UserStore implements interfaces.UserStore using SurrealDB.
type UserStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *surrealdb.DB, logger *common.Logger) *UserStore {
	return &UserStore{db: db, logger: logger}
}

func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	sql := "SELECT " + userSelectFields + " FROM $rid"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID("user", id),
	}

	results, err := surrealdb.Query[[]models.User](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("user %s not found", id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("user %s not found", id)
	}
	return &(*results)[0].Result[0], nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sql := "SELECT " + userSelectFields + " FROM user WHERE email = $email LIMIT 1"
	vars := map[string]any{"email": email}

	results, err := surrealdb.Query[[]models.User](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("user with email %s not found", email)
	}
	return &(*results)[0].Result[0], nil
}

func (s *UserStore) Save(ctx context.Context, user *models.User) error {
	sql := `UPSERT $rid SET
		user_id = $user_id, email = $email, name = $name,
		password_hash = $password_hash, role = $role,
		google_id = $google_id, avatar_url = $avatar_url,
		created_at = $created_at, last_login_at = $last_login_at`
	vars := map[string]any{
		"rid":           surrealmodels.NewRecordID("user", user.ID),
		"user_id":       user.ID,
		"email":         user.Email,
		"name":          user.Name,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
		"google_id":     user.GoogleID,
		"avatar_url":    user.AvatarURL,
		"created_at":    user.CreatedAt,
		"last_login_at": user.LastLoginAt,
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.User](ctx, s.db, surrealmodels.NewRecordID("user", id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *UserStore) List(ctx context.Context) ([]*models.User, error) {
	sql := "SELECT " + userSelectFields + " FROM user ORDER BY created_at ASC"

	results, err := surrealdb.Query[[]models.User](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*models.User, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			users = append(users, &(*results)[0].Result[i])
		}
	}
	return users, nil
}

// Compile-time check
var _ interfaces.UserStore = (*UserStore)(nil)
