package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truassets/truassets-server/internal/models"
)

func TestUserLifecycle(t *testing.T) {
	mgr := testManager(t)
	store := mgr.UserStore()
	ctx := testContext()

	user := &models.User{
		ID:           "user_lc",
		Email:        "lifecycle@test.local",
		Name:         "Lifecycle User",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         models.UserRoleInvestor,
		CreatedAt:    time.Now().Truncate(time.Second),
	}

	// Create
	require.NoError(t, store.Save(ctx, user))

	// Get by ID
	got, err := store.Get(ctx, "user_lc")
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)

	// Get by email
	byEmail, err := store.GetByEmail(ctx, "lifecycle@test.local")
	require.NoError(t, err)
	assert.Equal(t, "user_lc", byEmail.ID)

	// Update
	user.Role = models.UserRoleAdmin
	user.LastLoginAt = time.Now().Truncate(time.Second)
	require.NoError(t, store.Save(ctx, user))

	updated, err := store.Get(ctx, "user_lc")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, updated.Role)
	assert.False(t, updated.LastLoginAt.IsZero())

	// Delete
	require.NoError(t, store.Delete(ctx, "user_lc"))
	_, err = store.Get(ctx, "user_lc")
	assert.Error(t, err)
}

func TestUserGetByEmailMissing(t *testing.T) {
	mgr := testManager(t)
	store := mgr.UserStore()

	_, err := store.GetByEmail(testContext(), "nobody@test.local")
	assert.Error(t, err)
}

func TestUserList(t *testing.T) {
	mgr := testManager(t)
	store := mgr.UserStore()
	ctx := testContext()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, email := range []string{"a@test.local", "b@test.local", "c@test.local"} {
		require.NoError(t, store.Save(ctx, &models.User{
			ID:        "user_list_" + string(rune('a'+i)),
			Email:     email,
			Role:      models.UserRoleInvestor,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	users, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	// Ordered oldest first
	assert.Equal(t, "a@test.local", users[0].Email)
	assert.Equal(t, "c@test.local", users[2].Email)
}

func TestUserGoogleFields(t *testing.T) {
	mgr := testManager(t)
	store := mgr.UserStore()
	ctx := testContext()

	user := &models.User{
		ID:        "user_google_gid99",
		Email:     "gsso@test.local",
		Name:      "G User",
		Role:      models.UserRoleInvestor,
		GoogleID:  "gid99",
		AvatarURL: "https://example.com/avatar.png",
		CreatedAt: time.Now().Truncate(time.Second),
	}
	require.NoError(t, store.Save(ctx, user))

	got, err := store.Get(ctx, "user_google_gid99")
	require.NoError(t, err)
	assert.Equal(t, "gid99", got.GoogleID)
	assert.Equal(t, "https://example.com/avatar.png", got.AvatarURL)
}
